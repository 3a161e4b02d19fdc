package jvmdeps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depsOf(groups map[MavenGroup]map[ArtifactOrProject]ProjectRecord) Dependencies {
	return NewDependencies(groups)
}

func TestDependenciesDerivedIndices(t *testing.T) {
	v := NewVersion("1.0")
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v}},
	})
	uv := UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"}
	coord := MavenCoordinate{Group: "com.g", ArtifactId: "bar", Version: v}
	_, ok := d.CoordToProj()[coord]
	assert.True(t, ok)
	_, ok = d.UnversionedToProj()[uv]
	assert.True(t, ok)
	assert.Equal(t, []MavenCoordinate{coord}, d.Roots())
	assert.Empty(t, d.UnversionedRoots())
}

func TestDependenciesUnversionedRootHasNoVersion(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava()}},
	})
	assert.Len(t, d.UnversionedRoots(), 1)
	assert.Empty(t, d.Roots())
}

func TestCombineDependenciesIdempotent(t *testing.T) {
	v := NewVersion("1.0")
	a := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v}},
	})
	merged, err := CombineDependencies(PolicyHighest, a, a)
	require.NoError(t, err)
	assert.Equal(t, a.FlattenAll(), merged.FlattenAll())
}

func TestCombineDependenciesHighestCommutative(t *testing.T) {
	v1, v2 := NewVersion("1.0"), NewVersion("2.0")
	a := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v1}},
	})
	b := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v2}},
	})
	ab, err := CombineDependencies(PolicyHighest, a, b)
	require.NoError(t, err)
	ba, err := CombineDependencies(PolicyHighest, b, a)
	require.NoError(t, err)
	assert.Equal(t, ab.FlattenAll(), ba.FlattenAll())
	rec := ab.FlattenAll()["com.g"]["bar"]
	assert.Equal(t, "2.0", rec.Version.Raw)
}

func TestCombineDependenciesFailPolicyReportsBothVersions(t *testing.T) {
	v1, v2 := NewVersion("1.0"), NewVersion("2.0")
	a := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v1}},
	})
	b := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v2}},
	})
	_, err := CombineDependencies(PolicyFail, a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.0")
	assert.Contains(t, err.Error(), "2.0")
}

func TestCombineDependenciesUnionsModulesAfterFlatten(t *testing.T) {
	v := NewVersion("1.0")
	a := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v, Modules: map[Subproject]bool{"x": true}}},
	})
	b := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v, Modules: map[Subproject]bool{"y": true}}},
	})
	merged, err := CombineDependencies(PolicyHighest, a, b)
	require.NoError(t, err)
	flat := merged.FlattenAll()["com.g"]
	_, hasX := flat["bar-x"]
	_, hasY := flat["bar-y"]
	assert.True(t, hasX)
	assert.True(t, hasY)
}

func TestCombineDependenciesOnlyOneSideVersioned(t *testing.T) {
	v := NewVersion("1.0")
	a := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Version: &v}},
	})
	b := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava()}},
	})
	merged, err := CombineDependencies(PolicyHighest, a, b)
	require.NoError(t, err)
	rec := merged.FlattenAll()["com.g"]["bar"]
	require.NotNil(t, rec.Version)
	assert.Equal(t, "1.0", rec.Version.Raw)
}

func TestUnversionedCoordinatesOfBareArtifact(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava()}},
	})
	uv, ok := d.UnversionedCoordinatesOf("com.g", "bar")
	assert.True(t, ok)
	assert.Equal(t, UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"}, uv)
}

func TestUnversionedCoordinatesOfModuleSplit(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Modules: map[Subproject]bool{"x": true}}},
	})
	uv, ok := d.UnversionedCoordinatesOf("com.g", "bar-x")
	assert.True(t, ok)
	assert.Equal(t, UnversionedCoordinate{Group: "com.g", ArtifactId: "bar-x"}, uv)
}

func TestUnversionedCoordinatesOfAmbiguousReturnsFalse(t *testing.T) {
	// bar{x} under mangled Scala implies bar-x_2.11, while the bare bar-x
	// record implies bar-x: two distinct candidates.
	scala, err := NewScala(NewVersion("2.11.11"), true)
	require.NoError(t, err)
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {
			"bar":   {Lang: scala, Modules: map[Subproject]bool{"x": true}},
			"bar-x": {Lang: NewJava()},
		},
	})
	_, ok := d.UnversionedCoordinatesOf("com.g", "bar-x")
	assert.False(t, ok)
}

func TestExportedUnversionedResolvesThroughRecords(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {
			"bar": {Lang: NewJava(), Exports: []GroupArtifact{{Group: "com.g", Artifact: "baz"}}},
			"baz": {Lang: NewJava()},
		},
	})
	resolved, unresolved := d.ExportedUnversioned(UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"}, Replacements{})
	assert.Nil(t, unresolved)
	assert.Equal(t, []UnversionedCoordinate{{Group: "com.g", ArtifactId: "baz"}}, resolved)
}

func TestExportedUnversionedFallsBackToReplacements(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Exports: []GroupArtifact{{Group: "com.g", Artifact: "baz"}}}},
	})
	repl := NewReplacements(map[MavenGroup]map[string]ReplacementRecord{
		"com.g": {"baz": {Lang: NewJava(), Target: BazelTarget{PackageName: "third_party/jvm", Name: "baz"}}},
	})
	resolved, unresolved := d.ExportedUnversioned(UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"}, repl)
	assert.Nil(t, unresolved)
	assert.Equal(t, []UnversionedCoordinate{{Group: "com.g", ArtifactId: "baz"}}, resolved)
}

func TestExportedUnversionedReturnsFullListWhenUnresolved(t *testing.T) {
	exports := []GroupArtifact{{Group: "com.g", Artifact: "baz"}, {Group: "com.g", Artifact: "missing"}}
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {
			"bar": {Lang: NewJava(), Exports: exports},
			"baz": {Lang: NewJava()},
		},
	})
	resolved, unresolved := d.ExportedUnversioned(UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"}, Replacements{})
	assert.Nil(t, resolved)
	assert.Equal(t, exports, unresolved)
}

func TestLanguageOfUnknownCoordinate(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{})
	_, ok := d.LanguageOf(UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"})
	assert.False(t, ok)
}

func TestExcludesFallsBackToUnmangledCoordinate(t *testing.T) {
	d := depsOf(map[MavenGroup]map[ArtifactOrProject]ProjectRecord{
		"com.g": {"bar": {Lang: NewJava(), Exclude: []GroupArtifact{{Group: "com.h", Artifact: "unknown"}}}},
	})
	excludes := d.Excludes(UnversionedCoordinate{Group: "com.g", ArtifactId: "bar"})
	assert.Equal(t, []UnversionedCoordinate{{Group: "com.h", ArtifactId: "unknown"}}, excludes)
}
