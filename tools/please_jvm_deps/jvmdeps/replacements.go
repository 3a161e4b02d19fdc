package jvmdeps

import "fmt"

// A BazelTarget identifies an in-repo build target, e.g. //third_party/jvm:guava.
// Modeled on Please's own BuildLabel, trimmed to what a replacement target
// needs: no subrepo concept is in scope here.
type BazelTarget struct {
	PackageName string
	Name        string
}

// String returns "//package:name".
func (t BazelTarget) String() string {
	return "//" + t.PackageName + ":" + t.Name
}

// A ReplacementRecord redirects a coordinate to a local build target under a
// given language.
type ReplacementRecord struct {
	Lang   Language
	Target BazelTarget
}

// String renders a ReplacementRecord for error messages.
func (r ReplacementRecord) String() string {
	return fmt.Sprintf("%s", r.Target)
}

// Equal reports structural equality: same language and same target.
func (r ReplacementRecord) Equal(other ReplacementRecord) bool {
	return r.Lang.Equal(other.Lang) && r.Target == other.Target
}

// Replacements is an immutable group->artifact->ReplacementRecord map
// redirecting Maven coordinates to local build targets.
type Replacements struct {
	records map[MavenGroup]map[string]ReplacementRecord
}

// NewReplacements builds a Replacements value from a group->artifact->record map.
func NewReplacements(records map[MavenGroup]map[string]ReplacementRecord) Replacements {
	return Replacements{records: records}
}

// Lookup returns the replacement record for an unversioned coordinate, if any.
func (r Replacements) Lookup(uv UnversionedCoordinate) (ReplacementRecord, bool) {
	artifacts, ok := r.records[uv.Group]
	if !ok {
		return ReplacementRecord{}, false
	}
	rec, ok := artifacts[string(uv.ArtifactId)]
	return rec, ok
}

// CombineReplacements pointwise-merges two Replacements maps. A collision
// (the same group+artifact declared on both sides) is only allowed when the
// two ReplacementRecords are structurally equal; every mismatching collision
// produces one accumulated ReplacementCollisionError. There is no
// language-aware reconciliation; all errors are accumulated, never
// short-circuited.
func CombineReplacements(a, b Replacements) (Replacements, []error) {
	merged := map[MavenGroup]map[string]ReplacementRecord{}
	var errs []error

	copyInto := func(src map[MavenGroup]map[string]ReplacementRecord) {
		for group, artifacts := range src {
			if merged[group] == nil {
				merged[group] = map[string]ReplacementRecord{}
			}
			for artifact, rec := range artifacts {
				merged[group][artifact] = rec
			}
		}
	}
	copyInto(a.records)

	for group, artifacts := range b.records {
		if merged[group] == nil {
			merged[group] = map[string]ReplacementRecord{}
		}
		for artifact, rec := range artifacts {
			if existing, present := merged[group][artifact]; present {
				if !existing.Equal(rec) {
					errs = append(errs, &ReplacementCollisionError{
						Coordinate: UnversionedCoordinate{Group: group, ArtifactId: MavenArtifactId(artifact)},
						A:          existing,
						B:          rec,
					})
				}
				continue
			}
			merged[group][artifact] = rec
		}
	}
	return Replacements{records: merged}, errs
}

// combineOptionalReplacements is the identity if one side is absent, a
// strict CombineReplacements otherwise.
func combineOptionalReplacements(a, b *Replacements) (*Replacements, []error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	merged, errs := CombineReplacements(*a, *b)
	return &merged, errs
}
