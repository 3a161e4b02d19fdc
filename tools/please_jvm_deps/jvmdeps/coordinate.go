package jvmdeps

import "strings"

// A MavenGroup is an opaque dotted Maven group identifier, e.g. "com.google.guava".
type MavenGroup string

// An ArtifactOrProject is an opaque artifact string that may carry a
// `-`-delimited suffix interpretable as a sub-project, e.g. "guava-testlib".
type ArtifactOrProject string

// A Subproject is an opaque module suffix, e.g. "testlib" in "guava-testlib".
type Subproject string

// A subprojectSplit is one candidate (project, subproject) decomposition of
// an ArtifactOrProject.
type subprojectSplit struct {
	Project    ArtifactOrProject
	Subproject Subproject
}

// SplitSubprojects returns every prefix/suffix split of a `-`-delimited
// artifact string. For "a-b-c-d" this yields {(a, b-c-d), (a-b, c-d), (a-b-c, d)}.
func (ap ArtifactOrProject) SplitSubprojects() []subprojectSplit {
	parts := strings.Split(string(ap), "-")
	splits := make([]subprojectSplit, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		splits = append(splits, subprojectSplit{
			Project:    ArtifactOrProject(strings.Join(parts[:i], "-")),
			Subproject: Subproject(strings.Join(parts[i:], "-")),
		})
	}
	return splits
}

// A MavenArtifactId is an opaque, possibly language-mangled artifact id.
type MavenArtifactId string

// NewMavenArtifactId joins an ArtifactOrProject with an optional Subproject,
// producing the un-mangled artifact id; language mangling is applied by the
// caller (normally via Language.Unversioned).
func NewMavenArtifactId(ap ArtifactOrProject, subproject Subproject) MavenArtifactId {
	if subproject == "" {
		return MavenArtifactId(ap)
	}
	return MavenArtifactId(string(ap) + "-" + string(subproject))
}

// An UnversionedCoordinate identifies an artifact without a version.
type UnversionedCoordinate struct {
	Group      MavenGroup
	ArtifactId MavenArtifactId
}

// String serializes as "group:artifactId".
func (u UnversionedCoordinate) String() string {
	return string(u.Group) + ":" + string(u.ArtifactId)
}

var repoNameSanitizer = strings.NewReplacer(".", "_", "-", "_", ":", "_")

// RepoName returns a sanitized Bazel-style repo name for this coordinate's
// string form, replacing `.`, `-` and `:` with `_`.
func (u UnversionedCoordinate) RepoName() string {
	return repoNameSanitizer.Replace(u.String())
}

// BindingName returns "jar/<group-with-dots-as-slashes>/<artifact>" with
// every `/`, `.` and `-` replaced by `_`, as used to bind a generated jar
// target to a Go-identifier-safe name.
func (u UnversionedCoordinate) BindingName() string {
	group := strings.ReplaceAll(string(u.Group), ".", "/")
	raw := "jar/" + group + "/" + string(u.ArtifactId)
	return strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(raw)
}

// A MavenCoordinate is a fully versioned artifact identity.
type MavenCoordinate struct {
	Group      MavenGroup
	ArtifactId MavenArtifactId
	Version    Version
}

// String serializes as "group:artifactId:version".
func (c MavenCoordinate) String() string {
	return string(c.Group) + ":" + string(c.ArtifactId) + ":" + c.Version.Raw
}

// Unversioned drops the version, returning this coordinate's UnversionedCoordinate.
func (c MavenCoordinate) Unversioned() UnversionedCoordinate {
	return UnversionedCoordinate{Group: c.Group, ArtifactId: c.ArtifactId}
}

// Less orders coordinates by (group, artifact, version), using Version's
// order for the version component. Used to keep serialization and test
// fixtures deterministic.
func (c MavenCoordinate) Less(other MavenCoordinate) bool {
	if c.Group != other.Group {
		return c.Group < other.Group
	}
	if c.ArtifactId != other.ArtifactId {
		return c.ArtifactId < other.ArtifactId
	}
	return c.Version.LessThan(other.Version)
}

// ParseMavenCoordinate parses "group:artifact:version". Exactly three colon-
// delimited parts are required; anything else is a CoordinateShapeError.
func ParseMavenCoordinate(s string) (MavenCoordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return MavenCoordinate{}, &CoordinateShapeError{Raw: s}
	}
	return MavenCoordinate{
		Group:      MavenGroup(parts[0]),
		ArtifactId: MavenArtifactId(parts[1]),
		Version:    NewVersion(parts[2]),
	}, nil
}
