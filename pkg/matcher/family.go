// Package matcher maps free-text fact summaries to statutory section
// identifiers using prioritized crime-family patterns. Exactly one family,
// the highest-priority one whose trigger matches, governs section selection
// per query; this prevents a sentence containing cues from two crime
// categories from pulling in both families' sections.
package matcher

import (
	"fmt"
	"regexp"
)

// CrimeFamily defines one cluster of related statutory sections sharing a
// trigger pattern.
type CrimeFamily struct {
	// Key identifies the family; extra-keyword extensions are merged by Key.
	Key string `yaml:"key" json:"key"`

	// Name is a short human label.
	Name string `yaml:"name" json:"name"`

	// Trigger is a regex evaluated against the lowercased fact text.
	Trigger string `yaml:"trigger" json:"trigger"`

	// Sections lists the target section identifiers in canonical preference
	// order; the order doubles as the tie-break order for results.
	Sections []string `yaml:"sections" json:"sections"`

	// Keywords are corroborating lexical cues counted per candidate chunk.
	Keywords []string `yaml:"keywords" json:"keywords"`

	// MaxResults caps the sections returned for this family.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// Priority orders competing families; only the single highest-priority
	// matching family is used per query.
	Priority int `yaml:"priority" json:"priority"`

	compiled *regexp.Regexp
}

// Compile compiles the trigger pattern. Returns an error if it fails to
// compile.
func (f *CrimeFamily) Compile() error {
	compiled, err := regexp.Compile(f.Trigger)
	if err != nil {
		return fmt.Errorf("compiling family %q trigger %q: %w", f.Key, f.Trigger, err)
	}
	f.compiled = compiled
	return nil
}

// IsCompiled returns true if the trigger has been compiled.
func (f *CrimeFamily) IsCompiled() bool {
	return f.compiled != nil
}

// Validate checks that the family has all required fields.
func (f *CrimeFamily) Validate() error {
	if f.Key == "" {
		return fmt.Errorf("family key is required")
	}
	if f.Trigger == "" {
		return fmt.Errorf("family %q: trigger pattern is required", f.Key)
	}
	if len(f.Sections) == 0 {
		return fmt.Errorf("family %q: at least one target section is required", f.Key)
	}
	if f.MaxResults <= 0 {
		return fmt.Errorf("family %q: max_results must be positive", f.Key)
	}
	return nil
}

// Matches reports whether the trigger matches the lowercased fact text.
func (f *CrimeFamily) Matches(issueLower string) bool {
	if f.compiled == nil {
		return false
	}
	return f.compiled.MatchString(issueLower)
}

// DefaultFamilies returns the built-in crime families, ordered by priority.
// Section numbers follow the Bhartiya Nyaya Sanhita 2023 numbering.
func DefaultFamilies() []*CrimeFamily {
	return []*CrimeFamily{
		{
			Key:        "69",
			Name:       "sexual intercourse by deceit",
			Trigger:    `(promise.*marry|marriage.*promise|lured.*marriage|deceit.*sexual|false.*marriage|sexual.*deceit)`,
			Sections:   []string{"69"},
			Keywords:   []string{"promise to marry", "deceitful means", "sexual intercourse", "employing deceitful", "deceitful"},
			MaxResults: 1,
			Priority:   100,
		},
		{
			Key:        "100-103",
			Name:       "murder",
			Trigger:    `(murder|killed|murdered|homicide|fatal|attacked)`,
			Sections:   []string{"100", "101", "102", "103"},
			Keywords:   []string{"murder", "punishment for murder", "culpable homicide", "causing death", "fatal"},
			MaxResults: 3,
			Priority:   95,
		},
		{
			Key:        "64-66",
			Name:       "rape",
			Trigger:    `(rape|sexual.*assault|forced.*sex|non-consensual|without consent|forced himself|ignoring refusal)`,
			Sections:   []string{"64", "65", "66"},
			Keywords:   []string{"rape", "sexual assault", "penetration", "without consent", "offence of rape", "forced", "refusal"},
			MaxResults: 2,
			Priority:   90,
		},
		{
			Key:        "137-139",
			Name:       "kidnapping",
			Trigger:    `(kidnap|abduct|taken.*without|without.*consent.*taken|unlawful confinement|wrongfully|forcibly|taken.*on)`,
			Sections:   []string{"137", "138", "139"},
			Keywords:   []string{"kidnapping", "abduction", "wrongfully concealing", "unlawful confinement", "child for purposes", "taken", "without consent"},
			MaxResults: 1,
			Priority:   85,
		},
		{
			Key:        "85-86",
			Name:       "dowry cruelty",
			Trigger:    `(dowry|cruelty.*wife|harassment.*marriage|bride.*burning|in-laws|sustained harassment)`,
			Sections:   []string{"85", "86"},
			Keywords:   []string{"dowry", "cruelty", "husband", "bride", "wife", "harassment", "in-laws", "sustained"},
			MaxResults: 1,
			Priority:   80,
		},
		{
			Key:        "351-355",
			Name:       "assault and hurt",
			Trigger:    `(assault|violence|hurt|injury|beating|attacked|struck.*with|struck.*rod|struck.*bottle)`,
			Sections:   []string{"353", "351", "352", "354", "355"},
			Keywords:   []string{"assault", "hurt", "grievous hurt", "causing injury", "violence", "intentional", "struck", "attacked"},
			MaxResults: 1,
			Priority:   70,
		},
		{
			Key:        "303-310",
			Name:       "theft and robbery",
			Trigger:    `(theft|robbery|dacoity|burglary|stolen|extortion|snatch|snatched|pickpocket|chain)`,
			Sections:   []string{"303", "309", "310", "305", "306", "307", "308"},
			Keywords:   []string{"theft", "robbery", "dacoity", "extortion", "stolen", "snatch", "snatched", "burglary", "pickpocket"},
			MaxResults: 2,
			Priority:   65,
		},
		{
			Key:        "318-320",
			Name:       "cheating and forgery",
			Trigger:    `(fraud|cheating|forgery|impersonation|dishonestly|forged.*document|impersonate)`,
			Sections:   []string{"318", "319", "320"},
			Keywords:   []string{"cheating", "fraud", "forgery", "false document", "dishonestly", "impersonation"},
			MaxResults: 2,
			Priority:   60,
		},
	}
}

// sectionNumberPatterns extract a bare section number from chunk text when
// the chunk carries no explicit section ID.
var sectionNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Section\s+(\d+)`),
	regexp.MustCompile(`^(\d+)\.`),
	regexp.MustCompile(`[\s.]\s*(\d+)\.`),
	regexp.MustCompile(`\b(\d+)\.\s+[A-Z]`),
	regexp.MustCompile(`Of\s+.*?\s+(\d+)\.`),
}

// ExtractSectionNumber returns the first section number recognizable in the
// text, or "" when none is found.
func ExtractSectionNumber(text string) string {
	for _, p := range sectionNumberPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
