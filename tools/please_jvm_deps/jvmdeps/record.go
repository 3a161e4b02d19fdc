package jvmdeps

// A GroupArtifact names a dependency by group+artifact string, as used in
// ProjectRecord's Exports/Exclude lists (these aren't yet resolved to a
// Language-mangled UnversionedCoordinate).
type GroupArtifact struct {
	Group    MavenGroup
	Artifact string
}

// A ProjectRecord is one declared dependency: its language, optional
// version, optional module set, and export/exclude lists.
type ProjectRecord struct {
	Lang    Language
	Version *Version
	Modules map[Subproject]bool // nil means "no modules", a single artifact
	Exports []GroupArtifact
	Exclude []GroupArtifact
}

// HasModules reports whether this record declares a module set.
func (r ProjectRecord) HasModules() bool {
	return r.Modules != nil
}

// flattenedRecord pairs an artifact string with the single-artifact record
// it denotes; returned by Flatten.
type flattenedRecord struct {
	Artifact ArtifactOrProject
	Record   ProjectRecord
}

// Flatten expands this record under artifact ap into one (artifact, record)
// pair per module, or a single pair if Modules is empty. Every returned
// record has Modules == nil, denoting a single artifact.
func (r ProjectRecord) Flatten(ap ArtifactOrProject) []flattenedRecord {
	if !r.HasModules() {
		return []flattenedRecord{{Artifact: ap, Record: r}}
	}
	out := make([]flattenedRecord, 0, len(r.Modules))
	for m := range r.Modules {
		clone := r
		clone.Modules = nil
		out = append(out, flattenedRecord{Artifact: ArtifactOrProject(string(ap) + "-" + string(m)), Record: clone})
	}
	return out
}

// WithModule returns a copy of r with module m added: if r currently has no
// modules, the result has exactly {m}; otherwise every existing module s is
// rewritten to "m-s" (r is being re-rooted one level up).
func (r ProjectRecord) WithModule(m Subproject) ProjectRecord {
	clone := r
	if !r.HasModules() {
		clone.Modules = map[Subproject]bool{m: true}
		return clone
	}
	rewritten := make(map[Subproject]bool, len(r.Modules))
	for s := range r.Modules {
		rewritten[Subproject(string(m)+"-"+string(s))] = true
	}
	clone.Modules = rewritten
	return clone
}

// getModules returns the module set to iterate for versionedDependencies /
// allDependencies: the declared modules, or {""} (the bare artifact
// sentinel) if none are declared.
func (r ProjectRecord) getModules() []Subproject {
	if !r.HasModules() {
		return []Subproject{""}
	}
	modules := make([]Subproject, 0, len(r.Modules))
	for m := range r.Modules {
		modules = append(modules, m)
	}
	return modules
}

// CombineModules attempts to fuse r and other into a single record sharing
// one module set: succeeds iff Lang, Exports and Exclude match and either
// both versions are absent or both equal. On success the merged module set
// is the union, adding the empty-subproject sentinel "" if exactly one side
// had no modules (preserving the bare-artifact member).
func (r ProjectRecord) CombineModules(other ProjectRecord) (ProjectRecord, bool) {
	if !r.Lang.Equal(other.Lang) {
		return ProjectRecord{}, false
	}
	if !sameGroupArtifacts(r.Exports, other.Exports) || !sameGroupArtifacts(r.Exclude, other.Exclude) {
		return ProjectRecord{}, false
	}
	if !sameVersion(r.Version, other.Version) {
		return ProjectRecord{}, false
	}
	merged := r
	modules := map[Subproject]bool{}
	for m := range r.Modules {
		modules[m] = true
	}
	for m := range other.Modules {
		modules[m] = true
	}
	if r.HasModules() != other.HasModules() {
		modules[""] = true
	}
	merged.Modules = modules
	return merged, true
}

func sameVersion(a, b *Version) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameGroupArtifacts(a, b []GroupArtifact) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[GroupArtifact]bool{}
	for _, ga := range a {
		seen[ga] = true
	}
	for _, ga := range b {
		if !seen[ga] {
			return false
		}
	}
	return true
}

// VersionedDependencies returns the MavenCoordinates this record denotes
// rooted at (group, ap): empty if Version is absent, else one coordinate
// per module (or the bare artifact if none declared).
func (r ProjectRecord) VersionedDependencies(g MavenGroup, ap ArtifactOrProject) []MavenCoordinate {
	if r.Version == nil {
		return nil
	}
	var out []MavenCoordinate
	for _, m := range r.getModules() {
		if m == "" {
			out = append(out, r.Lang.MavenCoord(g, ap, *r.Version))
		} else {
			out = append(out, r.Lang.MavenCoord(g, ap, *r.Version, m))
		}
	}
	return out
}

// AllDependencies returns the UnversionedCoordinates this record denotes;
// unlike VersionedDependencies this is always non-empty.
func (r ProjectRecord) AllDependencies(g MavenGroup, ap ArtifactOrProject) []UnversionedCoordinate {
	out := make([]UnversionedCoordinate, 0, len(r.getModules()))
	for _, m := range r.getModules() {
		if m == "" {
			out = append(out, r.Lang.Unversioned(g, ap))
		} else {
			out = append(out, r.Lang.Unversioned(g, ap, m))
		}
	}
	return out
}
