package jvmdeps

import (
	"fmt"
	"sort"
	"strings"
)

// Render produces the deterministic, YAML-like canonical document: top-level
// sections in order (options, dependencies, replacements), omitting any that
// are absent from the model, separated by two blank lines. Used for fixtures
// and round-trip tests; never parsed back by this package (parsing is an
// external collaborator's job).
func (m Model) Render() string {
	var sections []string
	if m.Options != nil {
		sections = append(sections, "options:\n"+renderOptions(*m.Options))
	}
	sections = append(sections, "dependencies:\n"+renderDependencies(m.Dependencies))
	if m.Replacements != nil {
		sections = append(sections, "replacements:\n"+renderReplacements(*m.Replacements))
	}
	return strings.Join(sections, "\n\n\n")
}

// quoteString renders s as a double-quoted string literal, escaping only
// `\` and `"`.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// renderList renders a pre-sorted list of already-quoted/rendered items
// either inline (`[ a, b, … ]`) when short, or vertically with `- `
// prefixes; empty lists/maps render as `"{}"`.
func renderList(items []string, indent string) string {
	if len(items) == 0 {
		return "{}"
	}
	joined := strings.Join(items, ", ")
	if len(joined) <= 60 && !strings.Contains(joined, "\n") {
		return "[ " + joined + " ]"
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

func renderLanguage(l Language) string {
	if l.Kind == Java {
		return quoteString("java")
	}
	mangle := "false"
	if l.Mangle {
		mangle = "true"
	}
	return quoteString(fmt.Sprintf("scala:%s:%s", l.Ver.Raw, mangle))
}

func groupArtifactStrings(items []GroupArtifact) []string {
	strs := make([]string, len(items))
	for i, ga := range items {
		strs[i] = quoteString(string(ga.Group) + ":" + ga.Artifact)
	}
	sort.Strings(strs)
	return strs
}

func sortedModuleStrings(modules map[Subproject]bool) []string {
	strs := make([]string, 0, len(modules))
	for m := range modules {
		strs = append(strs, quoteString(string(m)))
	}
	sort.Strings(strs)
	return strs
}

// renderRecord renders one (artifact, record) entry's fields sorted by
// field name: exclude, exports, lang, modules, version.
func renderRecord(ap ArtifactOrProject, rec ProjectRecord) string {
	indent := "    "
	var b strings.Builder
	fmt.Fprintf(&b, "  %s:\n", ap)
	if len(rec.Exclude) > 0 {
		fmt.Fprintf(&b, "%sexclude: %s\n", indent, renderList(groupArtifactStrings(rec.Exclude), indent+"  "))
	}
	if len(rec.Exports) > 0 {
		fmt.Fprintf(&b, "%sexports: %s\n", indent, renderList(groupArtifactStrings(rec.Exports), indent+"  "))
	}
	fmt.Fprintf(&b, "%slang: %s\n", indent, renderLanguage(rec.Lang))
	if rec.HasModules() {
		fmt.Fprintf(&b, "%smodules: %s\n", indent, renderList(sortedModuleStrings(rec.Modules), indent+"  "))
	}
	if rec.Version != nil {
		fmt.Fprintf(&b, "%sversion: %s\n", indent, quoteString(rec.Version.Raw))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderItem is one (possibly fused) entry kept for display within a group.
type renderItem struct {
	Artifact ArtifactOrProject
	Record   ProjectRecord
}

// fuseGroup re-compacts a flattened group's artifacts for serialization
// only: walking artifacts in sorted order, each entry is fused into the
// immediately preceding kept item when a shared stem (found via
// splitSubprojects, longest stem first; the preceding item's artifact is
// either that stem or stem-suffix) makes combineModules succeed; the
// check against only the immediately preceding item avoids re-fusing across
// an already-closed boundary.
func fuseGroup(flat map[ArtifactOrProject]ProjectRecord) []renderItem {
	keys := make([]ArtifactOrProject, 0, len(flat))
	for ap := range flat {
		keys = append(keys, ap)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var out []renderItem
	for _, ap := range keys {
		rec := flat[ap]
		if len(out) > 0 {
			if fused, ok := tryFuse(out[len(out)-1], ap, rec); ok {
				out[len(out)-1] = fused
				continue
			}
		}
		out = append(out, renderItem{Artifact: ap, Record: rec})
	}
	return out
}

// tryFuse attempts to fuse (ap, rec) into last, trying the longest stem
// first among ap's splitSubprojects candidates. If last's artifact is the
// stem itself it is combined as-is; if it is stem-suffix, it is first
// re-moduled under the stem the same way as (ap, rec).
func tryFuse(last renderItem, ap ArtifactOrProject, rec ProjectRecord) (renderItem, bool) {
	splits := ap.SplitSubprojects()
	for i := len(splits) - 1; i >= 0; i-- {
		split := splits[i]
		lastRec := last.Record
		if split.Project != last.Artifact {
			prefix := string(split.Project) + "-"
			if !strings.HasPrefix(string(last.Artifact), prefix) {
				continue
			}
			lastRec = lastRec.WithModule(Subproject(strings.TrimPrefix(string(last.Artifact), prefix)))
		}
		candidate := rec.WithModule(split.Subproject)
		if merged, ok := lastRec.CombineModules(candidate); ok {
			return renderItem{Artifact: split.Project, Record: merged}, true
		}
	}
	return renderItem{}, false
}

func renderDependencies(d Dependencies) string {
	flat := d.FlattenAll()
	groups := make([]MavenGroup, 0, len(flat))
	for g := range flat {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	if len(groups) == 0 {
		return "  {}"
	}

	var blocks []string
	for _, g := range groups {
		items := fuseGroup(flat[g])
		var b strings.Builder
		fmt.Fprintf(&b, "  %s:\n", g)
		recs := make([]string, len(items))
		for i, item := range items {
			recs[i] = renderRecord(item.Artifact, item.Record)
		}
		b.WriteString(strings.Join(recs, "\n"))
		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderReplacements(r Replacements) string {
	groups := make([]MavenGroup, 0, len(r.records))
	for g := range r.records {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	if len(groups) == 0 {
		return "  {}"
	}

	var blocks []string
	for _, g := range groups {
		artifacts := make([]string, 0, len(r.records[g]))
		for a := range r.records[g] {
			artifacts = append(artifacts, a)
		}
		sort.Strings(artifacts)

		var b strings.Builder
		fmt.Fprintf(&b, "  %s:\n", g)
		for _, a := range artifacts {
			rec := r.records[g][a]
			fmt.Fprintf(&b, "  %s:\n", a)
			fmt.Fprintf(&b, "    lang: %s\n", renderLanguage(rec.Lang))
			fmt.Fprintf(&b, "    target: %s\n", quoteString(rec.Target.String()))
		}
		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// renderOptions renders an Options block with fields sorted alphabetically:
// buildHeader, languages, resolvers, thirdPartyDirectory, transitivity,
// versionConflictPolicy.
func renderOptions(o Options) string {
	var b strings.Builder
	if o.BuildHeader != nil {
		fmt.Fprintf(&b, "  buildHeader: %s\n", quoteString(*o.BuildHeader))
	}
	if len(o.Languages) > 0 {
		langs := make([]string, len(o.Languages))
		for i, l := range o.Languages {
			langs[i] = renderLanguage(l)
		}
		fmt.Fprintf(&b, "  languages: %s\n", renderList(langs, "    "))
	}
	if len(o.Resolvers) > 0 {
		resolvers := make([]string, len(o.Resolvers))
		for i, r := range o.Resolvers {
			resolvers[i] = quoteString(fmt.Sprintf("%s:%s:%s", r.ID, r.Type, r.URL))
		}
		fmt.Fprintf(&b, "  resolvers: %s\n", renderList(resolvers, "    "))
	}
	if o.ThirdPartyDirectory != nil {
		fmt.Fprintf(&b, "  thirdPartyDirectory: %s\n", quoteString(string(*o.ThirdPartyDirectory)))
	}
	if o.Transitivity != nil {
		name := "runtimeDeps"
		if *o.Transitivity == Exports {
			name = "exports"
		}
		fmt.Fprintf(&b, "  transitivity: %s\n", quoteString(name))
	}
	if o.VersionConflictPolicy != nil {
		name := map[VersionConflictPolicy]string{PolicyHighest: "highest", PolicyFixed: "fixed", PolicyFail: "fail"}[*o.VersionConflictPolicy]
		fmt.Fprintf(&b, "  versionConflictPolicy: %s\n", quoteString(name))
	}
	return strings.TrimRight(b.String(), "\n")
}
