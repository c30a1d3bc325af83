package severity

import "strings"

// Lemmatize reduces a single lowercase word to a canonical stem so that
// morphological variants compare equal (murdered and murder both reduce to
// "murder", raped and rape to "rap"). The reduction is applied to both the
// text and the keyword list, so only consistency matters, not linguistic
// correctness.
func Lemmatize(word string) string {
	w := strings.ToLower(word)

	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		w = w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "sses"):
		w = w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") &&
		!strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		w = w[:len(w)-1]
	}

	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ing"):
		w = undouble(w[:len(w)-3])
	case len(w) > 3 && strings.HasSuffix(w, "ed"):
		w = undouble(w[:len(w)-2])
	}

	if len(w) > 3 && strings.HasSuffix(w, "e") {
		w = w[:len(w)-1]
	}

	return w
}

// undouble collapses a doubled trailing consonant (kidnapp -> kidnap) unless
// it ends in l, s, or z, where the doubled form is the stem (kill, miss).
func undouble(w string) string {
	n := len(w)
	if n < 3 {
		return w
	}
	last := w[n-1]
	if last != w[n-2] {
		return w
	}
	if last == 'l' || last == 's' || last == 'z' || isVowel(last) {
		return w
	}
	return w[:n-1]
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// LemmatizePhrase lemmatizes every word in a phrase, preserving word order
// and single-space separation.
func LemmatizePhrase(phrase string) string {
	fields := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-'
	})
	for i, f := range fields {
		fields[i] = Lemmatize(f)
	}
	return strings.Join(fields, " ")
}
