package jvmdeps

import (
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Dependencies is an immutable group->artifact->ProjectRecord map, together
// with derived indices recomputed whenever a new value is built:
// CoordToProj, UnversionedToProj, Roots and UnversionedRoots.
type Dependencies struct {
	groups            map[MavenGroup]map[ArtifactOrProject]ProjectRecord
	coordToProj       map[MavenCoordinate]ProjectRecord
	unversionedToProj map[UnversionedCoordinate]ProjectRecord
}

// NewDependencies builds a Dependencies value and its derived indices from a
// group->artifact->record map.
func NewDependencies(groups map[MavenGroup]map[ArtifactOrProject]ProjectRecord) Dependencies {
	d := Dependencies{
		groups:            groups,
		coordToProj:       map[MavenCoordinate]ProjectRecord{},
		unversionedToProj: map[UnversionedCoordinate]ProjectRecord{},
	}
	for g, artifacts := range groups {
		for ap, rec := range artifacts {
			for _, vc := range rec.VersionedDependencies(g, ap) {
				d.coordToProj[vc] = rec
			}
			for _, uv := range rec.AllDependencies(g, ap) {
				d.unversionedToProj[uv] = rec
			}
		}
	}
	return d
}

// Groups returns the raw, possibly-unflattened group->artifact->record map.
func (d Dependencies) Groups() map[MavenGroup]map[ArtifactOrProject]ProjectRecord {
	return d.groups
}

// CoordToProj is the derived index of every versioned coordinate this model
// declares to the record that declared it.
func (d Dependencies) CoordToProj() map[MavenCoordinate]ProjectRecord {
	return d.coordToProj
}

// UnversionedToProj is the derived index of every unversioned coordinate
// this model declares to the record that declared it.
func (d Dependencies) UnversionedToProj() map[UnversionedCoordinate]ProjectRecord {
	return d.unversionedToProj
}

// Roots is the key set of CoordToProj.
func (d Dependencies) Roots() []MavenCoordinate {
	out := make([]MavenCoordinate, 0, len(d.coordToProj))
	for c := range d.coordToProj {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// UnversionedRoots is the subset of UnversionedToProj's keys whose record
// has no declared version.
func (d Dependencies) UnversionedRoots() []UnversionedCoordinate {
	out := []UnversionedCoordinate{}
	for uv, rec := range d.unversionedToProj {
		if rec.Version == nil {
			out = append(out, uv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// FlattenAll expands every record with declared Modules into one record per
// module, exposed as its own operation so the renderer's re-fuse logic and
// idempotence tests can call it independently of Combine.
func (d Dependencies) FlattenAll() map[MavenGroup]map[ArtifactOrProject]ProjectRecord {
	out := make(map[MavenGroup]map[ArtifactOrProject]ProjectRecord, len(d.groups))
	for g, artifacts := range d.groups {
		flat := map[ArtifactOrProject]ProjectRecord{}
		for ap, rec := range artifacts {
			for _, fr := range rec.Flatten(ap) {
				flat[fr.Artifact] = fr.Record
			}
		}
		out[g] = flat
	}
	return out
}

// CombineDependencies merges a and b under the given version-conflict
// policy: flatten both sides, union the keys, merge per-artifact per the
// rules below, and accumulate (never short-circuit) every per-artifact error
// into a single returned error.
func CombineDependencies(policy VersionConflictPolicy, a, b Dependencies) (Dependencies, error) {
	flatA := a.FlattenAll()
	flatB := b.FlattenAll()
	merged := map[MavenGroup]map[ArtifactOrProject]ProjectRecord{}
	var errs *multierror.Error

	for _, g := range unionGroups(flatA, flatB) {
		artifactsA := flatA[g]
		artifactsB := flatB[g]
		mergedArtifacts := map[ArtifactOrProject]ProjectRecord{}
		for _, ap := range unionArtifacts(artifactsA, artifactsB) {
			ra, inA := artifactsA[ap]
			rb, inB := artifactsB[ap]
			switch {
			case inA && inB:
				rec, err := mergeRecords(policy, ra, rb)
				if err != nil {
					errs = multierror.Append(errs, err)
					continue
				}
				mergedArtifacts[ap] = rec
			case inA:
				mergedArtifacts[ap] = ra
			case inB:
				mergedArtifacts[ap] = rb
			}
		}
		merged[g] = mergedArtifacts
	}
	return NewDependencies(merged), errs.ErrorOrNil()
}

// mergeRecords implements the per-artifact merge rules used by CombineDependencies.
func mergeRecords(policy VersionConflictPolicy, a, b ProjectRecord) (ProjectRecord, error) {
	switch {
	case a.Version == nil && b.Version == nil:
		return b, nil // right wins
	case a.Version != nil && b.Version != nil:
		if a.Version.Equal(*b.Version) {
			return b, nil // right wins
		}
		resolved, err := policy.Resolve(nil, []Version{*a.Version, *b.Version})
		if err != nil {
			return ProjectRecord{}, err
		}
		if resolved.Equal(*a.Version) {
			rec := a
			rec.Version = &resolved
			return rec, nil
		}
		rec := b
		rec.Version = &resolved
		return rec, nil
	case a.Version != nil:
		return a, nil
	default:
		return b, nil
	}
}

func unionGroups(a, b map[MavenGroup]map[ArtifactOrProject]ProjectRecord) []MavenGroup {
	seen := map[MavenGroup]bool{}
	var out []MavenGroup
	for g := range a {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for g := range b {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func unionArtifacts(a, b map[ArtifactOrProject]ProjectRecord) []ArtifactOrProject {
	seen := map[ArtifactOrProject]bool{}
	var out []ArtifactOrProject
	for ap := range a {
		if !seen[ap] {
			seen[ap] = true
			out = append(out, ap)
		}
	}
	for ap := range b {
		if !seen[ap] {
			seen[ap] = true
			out = append(out, ap)
		}
	}
	return out
}

// UnversionedCoordinatesOf resolves artifact a under group g to a unique
// UnversionedCoordinate, if one is implied: the candidate set is the union
// of a itself keying a record, and every (project, subproject) split of a
// where project keys a record whose Modules contains subproject.
// Returns (_, false) on zero or multiple candidates (silently: see
// DESIGN.md's Open Question decision on this diagnostic).
func (d Dependencies) UnversionedCoordinatesOf(g MavenGroup, a ArtifactOrProject) (UnversionedCoordinate, bool) {
	artifacts := d.groups[g]
	candidates := map[UnversionedCoordinate]bool{}
	if rec, ok := artifacts[a]; ok {
		candidates[rec.Lang.Unversioned(g, a)] = true
	}
	for _, split := range a.SplitSubprojects() {
		if rec, ok := artifacts[split.Project]; ok && rec.Modules[split.Subproject] {
			candidates[rec.Lang.Unversioned(g, split.Project, split.Subproject)] = true
		}
	}
	if len(candidates) != 1 {
		return UnversionedCoordinate{}, false
	}
	for uv := range candidates {
		return uv, true
	}
	panic("unreachable")
}

// ExportedUnversioned resolves the exports declared for uv's record through
// UnversionedCoordinatesOf, falling back to replacements. If every export
// resolves, it returns the resolved coordinates and a nil error payload; if
// any export fails to resolve in either source, it returns nil and the full
// original export list as the error payload.
func (d Dependencies) ExportedUnversioned(uv UnversionedCoordinate, replacements Replacements) ([]UnversionedCoordinate, []GroupArtifact) {
	rec, ok := d.unversionedToProj[uv]
	if !ok || len(rec.Exports) == 0 {
		return nil, nil
	}
	resolved := make([]UnversionedCoordinate, 0, len(rec.Exports))
	for _, ga := range rec.Exports {
		if ruv, ok := d.UnversionedCoordinatesOf(ga.Group, ArtifactOrProject(ga.Artifact)); ok {
			resolved = append(resolved, ruv)
			continue
		}
		if replRec, ok := replacements.Lookup(UnversionedCoordinate{Group: ga.Group, ArtifactId: MavenArtifactId(ga.Artifact)}); ok {
			resolved = append(resolved, replRec.Lang.Unversioned(ga.Group, ArtifactOrProject(ga.Artifact)))
			continue
		}
		return nil, rec.Exports
	}
	return resolved, nil
}

// LanguageOf returns the language of uv's record, if declared.
func (d Dependencies) LanguageOf(uv UnversionedCoordinate) (Language, bool) {
	rec, ok := d.unversionedToProj[uv]
	if !ok {
		return Language{}, false
	}
	return rec.Lang, true
}

// Excludes resolves the exclude list of uv's record via
// UnversionedCoordinatesOf, defaulting to the unmangled
// UnversionedCoordinate(g, a) when unresolved.
func (d Dependencies) Excludes(uv UnversionedCoordinate) []UnversionedCoordinate {
	rec, ok := d.unversionedToProj[uv]
	if !ok {
		return nil
	}
	out := make([]UnversionedCoordinate, 0, len(rec.Exclude))
	for _, ga := range rec.Exclude {
		if resolved, ok := d.UnversionedCoordinatesOf(ga.Group, ArtifactOrProject(ga.Artifact)); ok {
			out = append(out, resolved)
			continue
		}
		out = append(out, UnversionedCoordinate{Group: ga.Group, ArtifactId: MavenArtifactId(ga.Artifact)})
	}
	return out
}
