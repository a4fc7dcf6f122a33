// Package phone canonicalizes Uzbekistan phone numbers. The canonical form
// +998XXXXXXXXX is the account identifier, so every input spelling must be
// normalized before any uniqueness check.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidFormat means the input does not match the numbering-plan
	// grouping at all (wrong digit count, garbage characters).
	ErrInvalidFormat = errors.New("phone must match +998XXXXXXXXX")
	// ErrDisallowedPrefix means the number is well-formed but its two-digit
	// operator prefix is not a known mobile operator.
	ErrDisallowedPrefix = errors.New("unknown mobile operator prefix")
)

// Numbering-plan grouping: optional +998, then a 2-digit operator prefix,
// a 3-digit group, a 2-to-4-digit group and an optional trailing 2-digit
// group; spaces and hyphens allowed between groups.
var groupRe = regexp.MustCompile(`^(?:\+?998[\s-]*)?(\d{2})[\s-]*(\d{3})[\s-]*(\d{2,4})(?:[\s-]*(\d{2}))?$`)

// mobilePrefixes is the fixed list of valid mobile operator prefixes.
var mobilePrefixes = map[string]struct{}{
	"90": {}, "91": {}, "93": {}, "94": {}, "95": {}, "97": {},
	"98": {}, "99": {}, "33": {}, "88": {}, "50": {}, "77": {},
}

// Step is one stage of a validation pipeline: it either transforms its input
// or fails. Steps are pure and independently testable.
type Step func(string) (string, error)

// Pipeline applies steps in order, short-circuiting on the first failure.
func Pipeline(steps ...Step) Step {
	return func(s string) (string, error) {
		var err error
		for _, step := range steps {
			if s, err = step(s); err != nil {
				return "", err
			}
		}
		return s, nil
	}
}

// Normalize parses any accepted spelling of an Uzbekistan number and returns
// the canonical +998XXXXXXXXX form. The subscriber part must be exactly nine
// digits; anything else fails with ErrInvalidFormat rather than being
// truncated or guessed at. Normalize is idempotent on its own output.
func Normalize(raw string) (string, error) {
	m := groupRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", ErrInvalidFormat
	}
	var b strings.Builder
	for _, g := range m[1:] {
		b.WriteString(g)
	}
	digits := b.String()
	if len(digits) != 9 {
		return "", ErrInvalidFormat
	}
	return "+998" + digits, nil
}

// checkOperatorPrefix rejects canonical numbers whose operator prefix is not
// in the fixed mobile list. Input must already be canonical.
func checkOperatorPrefix(canonical string) (string, error) {
	if _, ok := mobilePrefixes[canonical[len("+998"):len("+998")+2]]; !ok {
		return "", ErrDisallowedPrefix
	}
	return canonical, nil
}

// ValidateMobile is the registration-grade pipeline: canonicalize, then
// enforce the operator prefix list. The two failure kinds stay distinct so
// callers can report them separately.
var ValidateMobile = Pipeline(Normalize, checkOperatorPrefix)
