package jvmdeps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func v1() *Version {
	v := NewVersion("1.0")
	return &v
}

func TestFlattenNoModules(t *testing.T) {
	r := ProjectRecord{Lang: NewJava(), Version: v1()}
	flat := r.Flatten("bar")
	assert.Len(t, flat, 1)
	assert.Equal(t, ArtifactOrProject("bar"), flat[0].Artifact)
	assert.False(t, flat[0].Record.HasModules())
}

func TestFlattenWithModules(t *testing.T) {
	r := ProjectRecord{Lang: NewJava(), Version: v1(), Modules: map[Subproject]bool{"x": true, "y": true}}
	flat := r.Flatten("bar")
	assert.Len(t, flat, 2)
	artifacts := map[ArtifactOrProject]bool{}
	for _, f := range flat {
		artifacts[f.Artifact] = true
		assert.False(t, f.Record.HasModules())
	}
	assert.True(t, artifacts["bar-x"])
	assert.True(t, artifacts["bar-y"])
}

func TestWithModuleFromBare(t *testing.T) {
	r := ProjectRecord{Lang: NewJava()}
	r2 := r.WithModule("x")
	assert.True(t, r2.Modules["x"])
	assert.Len(t, r2.Modules, 1)
}

func TestWithModuleRewritesExisting(t *testing.T) {
	r := ProjectRecord{Lang: NewJava(), Modules: map[Subproject]bool{"y": true, "z": true}}
	r2 := r.WithModule("x")
	assert.True(t, r2.Modules["x-y"])
	assert.True(t, r2.Modules["x-z"])
	assert.Len(t, r2.Modules, 2)
}

func TestCombineModulesUnion(t *testing.T) {
	a := ProjectRecord{Lang: NewJava(), Version: v1(), Modules: map[Subproject]bool{"x": true, "y": true}}
	b := ProjectRecord{Lang: NewJava(), Version: v1(), Modules: map[Subproject]bool{"y": true, "z": true}}
	merged, ok := a.CombineModules(b)
	assert.True(t, ok)
	assert.Len(t, merged.Modules, 3)
	assert.True(t, merged.Modules["x"] && merged.Modules["y"] && merged.Modules["z"])
}

func TestCombineModulesBareSentinel(t *testing.T) {
	a := ProjectRecord{Lang: NewJava(), Version: v1()} // no modules: the bare artifact
	b := ProjectRecord{Lang: NewJava(), Version: v1(), Modules: map[Subproject]bool{"x": true}}
	merged, ok := a.CombineModules(b)
	assert.True(t, ok)
	assert.True(t, merged.Modules[""])
	assert.True(t, merged.Modules["x"])
	assert.Len(t, merged.Modules, 2)
}

func TestCombineModulesRejectsVersionMismatch(t *testing.T) {
	v2 := NewVersion("2.0")
	a := ProjectRecord{Lang: NewJava(), Version: v1()}
	b := ProjectRecord{Lang: NewJava(), Version: &v2}
	_, ok := a.CombineModules(b)
	assert.False(t, ok)
}

func TestCombineModulesRejectsLangMismatch(t *testing.T) {
	scala, err := NewScala(NewVersion("2.11.11"), true)
	assert.NoError(t, err)
	a := ProjectRecord{Lang: NewJava(), Version: v1()}
	b := ProjectRecord{Lang: scala, Version: v1()}
	_, ok := a.CombineModules(b)
	assert.False(t, ok)
}

func TestVersionedDependenciesEmptyWithoutVersion(t *testing.T) {
	r := ProjectRecord{Lang: NewJava()}
	assert.Empty(t, r.VersionedDependencies("g", "a"))
}

func TestVersionedDependenciesOneModule(t *testing.T) {
	r := ProjectRecord{Lang: NewJava(), Version: v1(), Modules: map[Subproject]bool{"x": true}}
	deps := r.VersionedDependencies("g", "a")
	assert.Equal(t, []MavenCoordinate{{Group: "g", ArtifactId: "a-x", Version: NewVersion("1.0")}}, deps)
}

func TestAllDependenciesAlwaysNonEmpty(t *testing.T) {
	r := ProjectRecord{Lang: NewJava()}
	assert.NotEmpty(t, r.AllDependencies("g", "a"))
}
