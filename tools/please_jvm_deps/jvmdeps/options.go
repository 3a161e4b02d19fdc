package jvmdeps

// VersionConflictPolicy is a closed variant describing how to resolve
// multiple declared versions of the same coordinate. It forms a commutative
// bounded semilattice with identity PolicyHighest, ordered by strictness
// Highest ≺ Fixed ≺ Fail; Combine picks the stricter of two policies.
type VersionConflictPolicy int

const (
	// PolicyHighest is the identity of the semilattice: pick the highest
	// declared version under Version's order.
	PolicyHighest VersionConflictPolicy = iota
	// PolicyFixed requires a single declared version (or an explicit root).
	PolicyFixed
	// PolicyFail refuses to resolve any conflict at all.
	PolicyFail
)

// CombinePolicy returns the stricter of two policies.
func CombinePolicy(a, b VersionConflictPolicy) VersionConflictPolicy {
	if a > b {
		return a
	}
	return b
}

// Resolve picks a version for the given policy, optionally pinned by root
// (a version imposed by some other part of the build), from the non-empty
// set of declared versions found.
func (p VersionConflictPolicy) Resolve(root *Version, found []Version) (Version, error) {
	switch p {
	case PolicyFail:
		if len(found) == 1 && (root == nil || root.Equal(found[0])) {
			if root != nil {
				return *root, nil
			}
			return found[0], nil
		}
		return Version{}, &VersionConflictError{Policy: p, Root: root, Found: found}
	case PolicyFixed:
		if root != nil {
			return *root, nil
		}
		if len(found) == 1 {
			return found[0], nil
		}
		return Version{}, &VersionConflictError{Policy: p, Root: root, Found: found}
	default: // PolicyHighest
		if root != nil {
			return *root, nil
		}
		return MaxVersion(found), nil
	}
}

// Transitivity governs whether a dependency's own exports are propagated.
// It is a commutative monoid with identity RuntimeDeps; Exports always wins
// when combined with anything.
type Transitivity int

const (
	// RuntimeDeps is the identity: dependencies aren't re-exported transitively.
	RuntimeDeps Transitivity = iota
	// Exports re-exports a dependency's own declared exports transitively.
	Exports
)

// CombineTransitivity implements the monoid: Exports wins over RuntimeDeps.
func CombineTransitivity(a, b Transitivity) Transitivity {
	if a == Exports || b == Exports {
		return Exports
	}
	return RuntimeDeps
}

// A DirectoryName is an opaque third-party-directory path; combining two
// simply keeps the right-hand one.
type DirectoryName string

// A Resolver describes a Maven server to fetch artifacts from.
type Resolver struct {
	ID   string
	Type string
	URL  string
}

// Options carries the global, all-optional settings of a Model. Every field
// is a pointer/nil-slice so "unset" is distinguishable from "set to the zero
// value"; defaults are applied by DefaultOptions, never baked into a zero
// Options value.
type Options struct {
	VersionConflictPolicy *VersionConflictPolicy
	ThirdPartyDirectory   *DirectoryName
	Languages             []Language
	Resolvers             []Resolver
	Transitivity          *Transitivity
	BuildHeader           *string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	policy := PolicyHighest
	dir := DirectoryName("3rdparty/jvm")
	transitivity := Exports
	header := ""
	scala, _ := NewScala(NewVersion("2.11.11"), true)
	return Options{
		VersionConflictPolicy: &policy,
		ThirdPartyDirectory:   &dir,
		Languages:             []Language{NewJava(), scala},
		Resolvers: []Resolver{
			{ID: "central", Type: "default", URL: "http://central.maven.org/maven2/"},
		},
		Transitivity: &transitivity,
		BuildHeader:  &header,
	}
}

// Policy returns the effective VersionConflictPolicy, defaulting to
// PolicyHighest if unset.
func (o Options) Policy() VersionConflictPolicy {
	if o.VersionConflictPolicy != nil {
		return *o.VersionConflictPolicy
	}
	return PolicyHighest
}

// Combine implements the per-field monoidal combine: right wins for
// ThirdPartyDirectory and BuildHeader, stricter wins for
// VersionConflictPolicy, Transitivity combines per its monoid, and
// Resolvers/Languages are concatenated then deduplicated preserving first
// occurrence. Absent fields on either side fall through to the other side
// untouched.
func (a Options) Combine(b Options) Options {
	return Options{
		VersionConflictPolicy: combinePolicyField(a.VersionConflictPolicy, b.VersionConflictPolicy),
		ThirdPartyDirectory:   combineRightWins(a.ThirdPartyDirectory, b.ThirdPartyDirectory),
		Languages:             dedupLanguages(append(append([]Language{}, a.Languages...), b.Languages...)),
		Resolvers:             dedupResolvers(append(append([]Resolver{}, a.Resolvers...), b.Resolvers...)),
		Transitivity:          combineTransitivityField(a.Transitivity, b.Transitivity),
		BuildHeader:           combineRightWins(a.BuildHeader, b.BuildHeader),
	}
}

func combinePolicyField(a, b *VersionConflictPolicy) *VersionConflictPolicy {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	p := CombinePolicy(*a, *b)
	return &p
}

func combineTransitivityField(a, b *Transitivity) *Transitivity {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	t := CombineTransitivity(*a, *b)
	return &t
}

func combineRightWins[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

func dedupResolvers(resolvers []Resolver) []Resolver {
	if len(resolvers) == 0 {
		return nil
	}
	seen := map[Resolver]bool{}
	out := make([]Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func dedupLanguages(languages []Language) []Language {
	if len(languages) == 0 {
		return nil
	}
	var out []Language
	for _, l := range languages {
		dup := false
		for _, existing := range out {
			if existing.Equal(l) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}
