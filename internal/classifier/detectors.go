package classifier

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unicode word boundaries and whitespace. RE2's \b, \d and \s only know ASCII.
const (
	wordStart = `(?:^|[^\pL\pN_])`
	wordEnd   = `(?:$|[^\pL\pN_])`
	space     = `\s\p{Z}\x{85}\x{1c}-\x{1f}`
)

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(wordStart + `\p{Nd}{10}` + wordEnd),
		regexp.MustCompile(`(?:\+?\p{Nd}{1,3}[-` + space + `]?)?\p{Nd}{3}[-` + space + `]?\p{Nd}{3}[-` + space + `]?\p{Nd}{4}`),
		regexp.MustCompile(wordStart + `(?:\p{Nd}[` + space + `\-.\x{2011}]?){9,13}\p{Nd}` + wordEnd),
	}

	urlPattern       = regexp.MustCompile(`(https?://[^` + space + `]+|www\.[^` + space + `]+|[^` + space + `]+\.(com|in|net|org)` + wordEnd + `)`)
	wordPattern      = regexp.MustCompile(`[\pL\pN_]+`)
	promoWordPattern = regexp.MustCompile(wordStart + `(?:free|discount|promo)` + wordEnd)
	punctRunPattern  = regexp.MustCompile(`[!?.]{4,}`)
)

const repeatRunMinCount = 7

// spam score weights, in hundredths
const (
	spamWeightURL       = 50
	spamWeightPhrase    = 30
	spamWeightPromoWord = 20
	spamWeightRepeat    = 10
	spamWeightPunct     = 10
	spamScoreCap        = 100
	spamThreshold       = 35
)

type detector struct {
	label  Label
	detect func(text string) (reason string, ok bool)
}

// evaluation order is also the order of labels and reason sentences
var detectors = []detector{
	{LabelPhone, detectPhone},
	{LabelSpamLink, detectURL},
	{LabelAbusive, detectAbusive},
	{LabelSpam, detectSpam},
	{LabelExcessivePunct, detectPunct},
	{LabelRepeatedChars, detectRepeat},
}

func detectPhone(text string) (string, bool) {
	if !ContainsPhone(text) {
		return "", false
	}
	return "Contains phone number or numeric contact info.", true
}

func detectURL(text string) (string, bool) {
	if !ContainsURL(text) {
		return "", false
	}
	return "Contains a URL or domain link.", true
}

func detectAbusive(text string) (string, bool) {
	found := BlacklistedWords(text)
	if len(found) == 0 {
		return "", false
	}
	return "Contains abusive/offensive words: " + strings.Join(found, ", "), true
}

func detectSpam(text string) (string, bool) {
	score := spamScore(text)
	if score < spamThreshold {
		return "", false
	}
	return fmt.Sprintf("High spam-like content (score=%d.%02d).", score/100, score%100), true
}

func detectPunct(text string) (string, bool) {
	if !ExcessivePunctuation(text) {
		return "", false
	}
	return "Excessive punctuation found.", true
}

func detectRepeat(text string) (string, bool) {
	if !RepeatedChars(text) {
		return "", false
	}
	return "Contains elongated/repeated characters (possible spam/noise).", true
}

// ContainsPhone matches plain ten digit numbers, grouped numbers with an
// optional country code and digit runs broken up by single separators.
func ContainsPhone(text string) bool {
	for _, p := range phonePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func ContainsURL(text string) bool {
	return urlPattern.MatchString(lower(text))
}

// BlacklistedWords returns the sorted, distinct blacklist entries that occur
// as whole words in text.
func BlacklistedWords(text string) []string {
	var found []string
	for _, w := range wordPattern.FindAllString(lower(text), -1) {
		if _, ok := blacklist[w]; ok && !slices.Contains(found, w) {
			found = append(found, w)
		}
	}
	slices.Sort(found)
	return found
}

// SpamScore is the weighted spam likelihood of text in [0, 1].
func SpamScore(text string) float64 {
	return hundredths(spamScore(text))
}

func spamScore(text string) int {
	t := lower(text)
	score := 0
	if urlPattern.MatchString(t) {
		score += spamWeightURL
	}
	if slices.ContainsFunc(spamPhrases, func(p string) bool { return strings.Contains(t, p) }) {
		score += spamWeightPhrase
	}
	if promoWordPattern.MatchString(t) {
		score += spamWeightPromoWord
	}
	if RepeatedChars(t) {
		score += spamWeightRepeat
	}
	if ExcessivePunctuation(t) {
		score += spamWeightPunct
	}
	return min(spamScoreCap, score)
}

func ExcessivePunctuation(text string) bool {
	return punctRunPattern.MatchString(text)
}

// RepeatedChars reports a run of seven or more case-insensitively equal
// characters. Line breaks never count towards a run.
func RepeatedChars(text string) bool {
	var (
		prev rune
		run  int
	)
	for _, r := range text {
		switch {
		case r == '\n':
			run = 0
		case run > 0 && sameFold(prev, r):
			run++
		default:
			run = 1
		}
		if run >= repeatRunMinCount {
			return true
		}
		prev = r
	}
	return false
}

func sameFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

func lower(s string) string {
	// a Caser is stateful, so one per call
	return cases.Lower(language.Und).String(s)
}
