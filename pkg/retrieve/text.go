package retrieve

import (
	"regexp"
	"strings"
)

// Statutory chunk text often comes from corrupted PDF extraction with words
// split mid-token ("S ANHITA", "be r") or run together. NormalizeText repairs
// the common artifacts before a chunk is quoted in a petition.
var (
	splitUpperRe   = regexp.MustCompile(`\b([A-Z])\s+([A-Z]{2,})\b`)
	splitLowerRe   = regexp.MustCompile(`\b([a-z]{1,3})\s+([a-z]{2,})\b`)
	camelSpaceRe   = regexp.MustCompile(`([a-z])([A-Z])`)
	punctSpaceRe   = regexp.MustCompile(`([.!?;:,])([A-Za-z])`)
	bracketSpaceRe = regexp.MustCompile(`([)\]])([A-Za-z0-9])`)
	digitSpaceRe   = regexp.MustCompile(`(\d)([A-Za-z])`)
	multiSpaceRe   = regexp.MustCompile(` +`)
)

var brokenWordFixes = [][2]string{
	{" IN ARY", "INARY"},
	{"f or med", "formed"},
	{"in tended", "intended"},
	{"the reto", "thereto"},
}

// NormalizeText fixes broken words first, then restores missing spacing.
func NormalizeText(text string) string {
	text = splitUpperRe.ReplaceAllString(text, "$1$2")
	text = splitLowerRe.ReplaceAllString(text, "$1$2")
	for _, fix := range brokenWordFixes {
		text = strings.ReplaceAll(text, fix[0], fix[1])
	}

	text = camelSpaceRe.ReplaceAllString(text, "$1 $2")
	text = punctSpaceRe.ReplaceAllString(text, "$1 $2")
	text = bracketSpaceRe.ReplaceAllString(text, "$1 $2")
	text = digitSpaceRe.ReplaceAllString(text, "$1 $2")

	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
