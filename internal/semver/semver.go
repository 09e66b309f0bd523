// Package semver implements the three-part version numbering used for
// recipe versions.
//
// Version numbers are plain major.minor.patch triples ("1.2.3"). The
// pre-release and build-metadata grammar of full semantic versioning is
// deliberately not supported: recipe versions only ever advance by one
// component at a time.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat indicates a version string that does not match
// major.minor[.patch] with non-negative integer components.
var ErrInvalidFormat = errors.New("invalid version format")

// FormatError reports the offending input alongside ErrInvalidFormat.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid version format %q: want major.minor[.patch]", e.Input)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// Increment selects which component Bump and Next advance.
type Increment string

const (
	Patch Increment = "patch"
	Minor Increment = "minor"
	Major Increment = "major"
)

// ValidIncrements defines the allowed increment names.
var ValidIncrements = map[Increment]bool{
	Patch: true,
	Minor: true,
	Major: true,
}

// ParseIncrement converts a string to an Increment.
func ParseIncrement(s string) (Increment, error) {
	inc := Increment(strings.ToLower(strings.TrimSpace(s)))
	if !ValidIncrements[inc] {
		return "", fmt.Errorf("unknown increment %q: must be one of: patch, minor, major", s)
	}
	return inc, nil
}

// Version is a parsed major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses major.minor[.patch]; a missing patch component defaults
// to zero. Returns a FormatError (wrapping ErrInvalidFormat) for empty,
// non-numeric, negative, or wrongly delimited input.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	parts := strings.Split(trimmed, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, &FormatError{Input: s}
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, &FormatError{Input: s}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the canonical three-component form; "1.2" parses and
// renders back as "1.2.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1 if v < o, 0 if equal, +1 if v > o, comparing
// major, then minor, then patch.
func (v Version) Compare(o Version) int {
	if c := cmp(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp(v.Patch, o.Patch)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Bump returns v advanced by inc: patch increments the patch component;
// minor increments minor and resets patch; major increments major and
// resets minor and patch. Unrecognized increments bump the patch
// component, matching the most conservative advance.
func (v Version) Bump(inc Increment) Version {
	switch inc {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Next returns the version string following current when advanced by
// inc. Pure: no registry of issued numbers is consulted, so feeding
// results back yields monotone sequences (1.2.3 → 1.2.4 → 1.2.5).
func Next(current string, inc Increment) (string, error) {
	v, err := Parse(current)
	if err != nil {
		return "", err
	}
	return v.Bump(inc).String(), nil
}

// IsValid reports whether s parses as a version number.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
