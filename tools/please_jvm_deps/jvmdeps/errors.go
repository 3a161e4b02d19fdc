package jvmdeps

import (
	"fmt"
	"sort"
)

// A CoordinateShapeError reports a Maven coordinate string that didn't split
// into exactly three colon-delimited parts.
type CoordinateShapeError struct {
	Raw string
}

func (e *CoordinateShapeError) Error() string {
	return fmt.Sprintf("expected exactly three :, got %s", e.Raw)
}

// A VersionConflictError reports that a version-conflict policy couldn't
// resolve a set of competing versions for one coordinate.
type VersionConflictError struct {
	Policy VersionConflictPolicy
	Root   *Version
	Found  []Version
}

func (e *VersionConflictError) Error() string {
	sorted := sortedVersionStrings(e.Found)
	if e.Policy == PolicyFail {
		root := "none"
		if e.Root != nil {
			root = e.Root.Raw
		}
		return fmt.Sprintf("multiple versions found in Fail policy, root: %s, transitive: %v", root, sorted)
	}
	return fmt.Sprintf("fixed requires 1, or a declared version, found: %v", sorted)
}

func sortedVersionStrings(versions []Version) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.Raw
	}
	sort.Strings(out)
	return out
}

// A ReplacementCollisionError reports two conflicting ReplacementRecords
// declared for the same coordinate.
type ReplacementCollisionError struct {
	Coordinate UnversionedCoordinate
	A, B       ReplacementRecord
}

func (e *ReplacementCollisionError) Error() string {
	return fmt.Sprintf("in replacements combine: %s != %s", e.A, e.B)
}

// An UnsupportedScalaVersionError reports an invalid input to the Scala
// language constructor: a version that isn't of the form "2.X" or "2.X.Y"
// with X >= 10.
type UnsupportedScalaVersionError struct {
	Raw string
}

func (e *UnsupportedScalaVersionError) Error() string {
	return fmt.Sprintf("unsupported Scala version: %s", e.Raw)
}
