package jvmdeps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalaMangling(t *testing.T) {
	lang, err := NewScala(NewVersion("2.11.11"), true)
	assert.NoError(t, err)
	uv := lang.Unversioned("g", "a")
	assert.Equal(t, MavenArtifactId("a_2.11"), uv.ArtifactId)
}

func TestScalaRemoveSuffix(t *testing.T) {
	lang, err := NewScala(NewVersion("2.12.0"), true)
	assert.NoError(t, err)
	stripped, ok := lang.RemoveSuffix("foo_2.12")
	assert.True(t, ok)
	assert.Equal(t, "foo", stripped)

	_, ok = lang.RemoveSuffix("foo")
	assert.False(t, ok)
}

func TestScalaUnmangledWhenDisabled(t *testing.T) {
	lang, err := NewScala(NewVersion("2.11.11"), false)
	assert.NoError(t, err)
	uv := lang.Unversioned("g", "a")
	assert.Equal(t, MavenArtifactId("a"), uv.ArtifactId)
}

func TestUnsupportedScalaVersion(t *testing.T) {
	_, err := NewScala(NewVersion("2.9.3"), true)
	assert.Error(t, err)
	var target *UnsupportedScalaVersionError
	assert.ErrorAs(t, err, &target)

	_, err = NewScala(NewVersion("3.0.0"), true)
	assert.Error(t, err)
}

func TestJavaIdentityMangling(t *testing.T) {
	uv := NewJava().Unversioned("g", "a")
	assert.Equal(t, MavenArtifactId("a"), uv.ArtifactId)
}

func TestCoordinateStrings(t *testing.T) {
	c, err := ParseMavenCoordinate("a:b:c")
	assert.NoError(t, err)
	assert.Equal(t, "a:b:c", c.String())
}

func TestBazelRepoAndBindingNames(t *testing.T) {
	uv := UnversionedCoordinate{Group: "a.b", ArtifactId: "c-d"}
	assert.Equal(t, "a_b_c_d", uv.RepoName())
	assert.Equal(t, "jar_a_b_c_d", uv.BindingName())
}

func TestSplitSubprojects(t *testing.T) {
	splits := ArtifactOrProject("a-b-c-d").SplitSubprojects()
	assert.Equal(t, []subprojectSplit{
		{Project: "a", Subproject: "b-c-d"},
		{Project: "a-b", Subproject: "c-d"},
		{Project: "a-b-c", Subproject: "d"},
	}, splits)
}
