package classifier

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Label string

const (
	LabelPhone          Label = "phone"
	LabelSpamLink       Label = "spam_link"
	LabelAbusive        Label = "abusive"
	LabelSpam           Label = "spam"
	LabelExcessivePunct Label = "excessive_punct"
	LabelRepeatedChars  Label = "repeated_chars"
)

type Status string

const (
	StatusSafe          Status = "Safe"
	StatusAbusive       Status = "Abusive"
	StatusSpam          Status = "Spam"
	StatusPhoneDetected Status = "PhoneDetected"
	StatusMixed         Status = "Mixed"
	StatusFlagged       Status = "Flagged"
)

const (
	safeReason     = "No issues detected."
	safeConfidence = 95
	reasonSep      = " | "
)

type Result struct {
	Status     Status  `json:"status"`
	Reason     string  `json:"reason"`
	Labels     []Label `json:"labels"`
	Confidence float64 `json:"confidence"`
}

// Has reports whether l was emitted for the message.
func (r Result) Has(l Label) bool {
	return slices.Contains(r.Labels, l)
}

// Validate rejects results that do not satisfy the Safe/labels invariant.
func (r Result) Validate() error {
	if r.Status == "" {
		return errors.New("missing status")
	}
	if (len(r.Labels) == 0) != (r.Status == StatusSafe) {
		return fmt.Errorf("status %s inconsistent with %d labels", r.Status, len(r.Labels))
	}
	if r.Confidence < 0 || r.Confidence > 0.99 {
		return fmt.Errorf("confidence %.2f out of range", r.Confidence)
	}
	return nil
}

// Rule maps a label set to a status. Precedence is evaluated top-down and the
// first matching rule wins.
type Rule struct {
	Name   string
	Match  func(labels LabelSet) bool
	Status Status
}

type LabelSet map[Label]bool

func (s LabelSet) Any(ls ...Label) bool {
	for _, l := range ls {
		if s[l] {
			return true
		}
	}
	return false
}

var Precedence = []Rule{
	{
		Name:   "no-labels",
		Match:  func(s LabelSet) bool { return len(s) == 0 },
		Status: StatusSafe,
	},
	{
		Name:   "abusive",
		Match:  func(s LabelSet) bool { return s[LabelAbusive] },
		Status: StatusAbusive,
	},
	{
		Name:   "phone-and-spam",
		Match:  func(s LabelSet) bool { return s[LabelPhone] && s.Any(LabelSpam, LabelSpamLink) },
		Status: StatusMixed,
	},
	{
		Name:   "phone",
		Match:  func(s LabelSet) bool { return s[LabelPhone] },
		Status: StatusPhoneDetected,
	},
	{
		Name:   "spam",
		Match:  func(s LabelSet) bool { return s.Any(LabelSpam, LabelSpamLink) },
		Status: StatusSpam,
	},
	{
		Name:   "fallback",
		Match:  func(LabelSet) bool { return true },
		Status: StatusFlagged,
	},
}

func resolveStatus(s LabelSet) Status {
	for _, rule := range Precedence {
		if rule.Match(s) {
			return rule.Status
		}
	}
	return StatusFlagged
}

// confidence floors in hundredths, combined by max
var confidenceFloors = []struct {
	labels []Label
	floor  int
}{
	{[]Label{LabelAbusive}, 80},
	{[]Label{LabelPhone}, 70},
	{[]Label{LabelSpam, LabelSpamLink}, 60},
}

func confidence(s LabelSet) int {
	if len(s) == 0 {
		return safeConfidence
	}
	conf := 20
	for _, f := range confidenceFloors {
		if s.Any(f.labels...) {
			conf = max(conf, f.floor)
		}
	}
	return min(99, conf+5*(len(s)-1))
}

// Moderate runs every detector over text and folds the emitted labels into a
// single verdict. It is deterministic and keeps no state between calls.
func Moderate(text string) Result {
	t := strings.TrimSpace(text)

	var (
		labels  []Label
		reasons []string
	)
	for _, d := range detectors {
		if reason, ok := d.detect(t); ok {
			labels = append(labels, d.label)
			reasons = append(reasons, reason)
		}
	}

	if len(labels) == 0 {
		return Result{
			Status:     StatusSafe,
			Reason:     safeReason,
			Labels:     []Label{},
			Confidence: hundredths(safeConfidence),
		}
	}

	set := make(LabelSet, len(labels))
	for _, l := range labels {
		set[l] = true
	}

	return Result{
		Status:     resolveStatus(set),
		Reason:     strings.Join(reasons, reasonSep),
		Labels:     labels,
		Confidence: hundredths(confidence(set)),
	}
}

// ModerateValue coerces v to its textual form before moderating it.
func ModerateValue(v any) Result {
	switch x := v.(type) {
	case string:
		return Moderate(x)
	case nil:
		return Moderate("")
	case fmt.Stringer:
		return Moderate(x.String())
	default:
		return Moderate(fmt.Sprint(x))
	}
}

func hundredths(n int) float64 {
	return float64(n) / 100
}
