package jvmdeps

import (
	"regexp"
	"strconv"
	"strings"
)

// LanguageKind is the closed set of language variants a ProjectRecord can
// declare: a sealed enum with behaviour dispatched by small functions
// rather than virtual methods.
type LanguageKind int

const (
	// Java is the identity mangling: artifact ids are used verbatim.
	Java LanguageKind = iota
	// Scala appends a `_<major>` suffix to the artifact id when Mangle is set.
	Scala
)

// A Language is either Java or a Scala variant carrying the Scala compiler
// version used to derive the mangled suffix.
type Language struct {
	Kind   LanguageKind
	Ver    Version // only meaningful when Kind == Scala
	Mangle bool    // only meaningful when Kind == Scala
}

// NewJava returns the Java language variant.
func NewJava() Language {
	return Language{Kind: Java}
}

var scalaMajorPattern = regexp.MustCompile(`^2\.(\d+)(\.\d+)?$`)

// NewScala constructs a Scala language variant, validating that ver is of
// the form "2.X" or "2.X.Y" with X >= 10; anything else is an
// UnsupportedScalaVersionError.
func NewScala(ver Version, mangle bool) (Language, error) {
	if _, err := scalaMajor(ver); err != nil {
		return Language{}, err
	}
	return Language{Kind: Scala, Ver: ver, Mangle: mangle}, nil
}

// scalaMajor derives "2.X" from any "2.X" or "2.X.Y" input with X >= 10.
func scalaMajor(ver Version) (string, error) {
	m := scalaMajorPattern.FindStringSubmatch(ver.Raw)
	if m == nil {
		return "", &UnsupportedScalaVersionError{Raw: ver.Raw}
	}
	minor, err := strconv.Atoi(m[1])
	if err != nil || minor < 10 {
		return "", &UnsupportedScalaVersionError{Raw: ver.Raw}
	}
	return "2." + m[1], nil
}

// scalaSuffix returns "_2.X" for the language's Scala major version. Panics
// if called on a non-Scala language or an invalid one; callers only ever
// invoke this on a Language successfully built by NewScala.
func (l Language) scalaSuffix() string {
	major, err := scalaMajor(l.Ver)
	if err != nil {
		panic(err)
	}
	return "_" + major
}

// mangleArtifact applies this language's name mangling to a bare artifact id.
func (l Language) mangleArtifact(id MavenArtifactId) MavenArtifactId {
	if l.Kind == Scala && l.Mangle {
		return id + MavenArtifactId(l.scalaSuffix())
	}
	return id
}

// Unversioned builds the UnversionedCoordinate for (group, project[,
// subproject]) under this language's mangling.
func (l Language) Unversioned(group MavenGroup, ap ArtifactOrProject, subproject ...Subproject) UnversionedCoordinate {
	sp := Subproject("")
	if len(subproject) > 0 {
		sp = subproject[0]
	}
	return UnversionedCoordinate{
		Group:      group,
		ArtifactId: l.mangleArtifact(NewMavenArtifactId(ap, sp)),
	}
}

// MavenCoord builds the fully versioned MavenCoordinate for (group,
// project[, subproject], version) under this language's mangling.
func (l Language) MavenCoord(group MavenGroup, ap ArtifactOrProject, version Version, subproject ...Subproject) MavenCoordinate {
	uv := l.Unversioned(group, ap, subproject...)
	return MavenCoordinate{Group: uv.Group, ArtifactId: uv.ArtifactId, Version: version}
}

// RemoveSuffix strips this language's `_<major>` suffix from artifact if
// present, returning the bare artifact id and true; returns (artifact,
// false) if the suffix isn't present. Only meaningful for Scala.
func (l Language) RemoveSuffix(artifact string) (string, bool) {
	if l.Kind != Scala {
		return artifact, false
	}
	suffix := l.scalaSuffix()
	if strings.HasSuffix(artifact, suffix) {
		return strings.TrimSuffix(artifact, suffix), true
	}
	return artifact, false
}

// EndsWithScalaVersion reports whether the unversioned coordinate's artifact
// id already ends with this language's Scala suffix.
func (l Language) EndsWithScalaVersion(uv UnversionedCoordinate) bool {
	if l.Kind != Scala {
		return false
	}
	return strings.HasSuffix(string(uv.ArtifactId), l.scalaSuffix())
}

// Equal reports whether two languages denote the same variant and, for
// Scala, the same compiler version and mangling choice.
func (l Language) Equal(other Language) bool {
	if l.Kind != other.Kind {
		return false
	}
	if l.Kind == Java {
		return true
	}
	return l.Ver.Equal(other.Ver) && l.Mangle == other.Mangle
}
