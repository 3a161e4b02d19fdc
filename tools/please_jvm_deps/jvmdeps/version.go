package jvmdeps

import (
	"regexp"
	"strconv"
)

// A Version is a Maven-style version string. Its token sequence is derived
// from Raw whenever it is compared, so a Version stays comparable and can be
// part of a map key (as in MavenCoordinate). It is opaque beyond that: we
// never interpret it as a semver triple or a version range, only as an
// ordered sequence of tokens.
type Version struct {
	Raw string
}

// versionToken is one element of a tokenized version. Numeric tokens carry
// their parsed value; alphabetic tokens carry their raw text.
type versionToken struct {
	numeric bool
	num     int64
	str     string
}

var versionSegmentSplit = regexp.MustCompile(`[.\-]`)
var versionRunSplit = regexp.MustCompile(`\d+|\D+`)

// NewVersion wraps a version string; see tokens for how it is tokenized.
func NewVersion(s string) Version {
	return Version{Raw: s}
}

// tokens tokenizes the version string: split on `.` and `-` into segments,
// then split each segment into alternating maximal runs of digits and
// non-digits.
func (v Version) tokens() []versionToken {
	var tokens []versionToken
	for _, segment := range versionSegmentSplit.Split(v.Raw, -1) {
		for _, run := range versionRunSplit.FindAllString(segment, -1) {
			if n, err := strconv.ParseInt(run, 10, 64); err == nil {
				tokens = append(tokens, versionToken{numeric: true, num: n})
			} else {
				tokens = append(tokens, versionToken{str: run})
			}
		}
	}
	return tokens
}

// String implements fmt.Stringer, returning the original raw version text.
func (v Version) String() string {
	return v.Raw
}

// Equal reports whether two versions tokenize identically; equality holds
// only modulo tokenization, not raw string identity.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than
// other.
func (v Version) Compare(other Version) int {
	a, b := v.tokens(), other.tokens()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareToken(a[i], b[i]); c != 0 {
			return c
		}
	}
	if len(a) == len(b) {
		return 0
	}
	// One is a proper prefix of the other; consult the first extra token of
	// the longer side to decide which way the prefix rule swings.
	if len(a) < len(b) {
		// v is the shorter side here.
		return shorterVsLonger(b[len(a)])
	}
	// other is the shorter side; negate since shorterVsLonger assumes the
	// shorter side comes first.
	return -shorterVsLonger(a[len(b)])
}

// shorterVsLonger says how the *shorter* sequence compares to the *longer*
// one, given the longer side's first extra token: an alphabetic extra token
// means the shorter side is greater ("1.0" > "1.0-RC"); a numeric extra
// token means the shorter side is lesser ("1.0" < "1.0.1").
func shorterVsLonger(extra versionToken) int {
	if extra.numeric {
		return -1
	}
	return 1
}

// compareToken compares two tokens at the same position: numeric vs numeric
// by value, alphabetic vs alphabetic lexicographically, and numeric beats
// alphabetic at the same position (the pre-release convention).
func compareToken(a, b versionToken) int {
	if a.numeric && b.numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	if a.numeric != b.numeric {
		if a.numeric {
			return 1
		}
		return -1
	}
	switch {
	case a.str < b.str:
		return -1
	case a.str > b.str:
		return 1
	default:
		return 0
	}
}

// LessThan is a convenience wrapper around Compare, handy for sort.Slice.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// MaxVersion returns the greatest of a non-empty slice of versions, used by
// VersionConflictPolicy's Highest resolution.
func MaxVersion(versions []Version) Version {
	max := versions[0]
	for _, v := range versions[1:] {
		if v.Compare(max) > 0 {
			max = v
		}
	}
	return max
}
