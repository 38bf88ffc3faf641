package markup

import (
	"strconv"
	"strings"

	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/locref"
	"github.com/xindygo/xindy/style"
)

// texPreambleMarker is the substring a style's index.open template
// carries to select the TeX backend instead of the plain-text default
// (§4.7: "triggered when the style's index-markup open contains a LaTeX
// preamble marker"). Both backends share the same template-resolution
// machinery; the marker only changes which literal strings the style
// declared, never the renderer's own logic.
const texPreambleMarker = "\\documentclass"

// Render walks idx, producing the fully formatted output string driven
// by state's markup options. Never errors (§7: RenderError is never
// raised); missing options resolve to defaults: the empty string for
// templates, ", " for the locref and crossref separators, and crossrefs
// enabled.
func Render(state *style.State, idx *index.Index) string {
	mo := state.MarkupOptions

	var b strings.Builder

	b.WriteString(str(mo, "index", nil, "open"))

	nonEmpty := make([]index.LetterGroup, 0, len(idx.Groups))

	for _, g := range idx.Groups {
		if len(g.Nodes) > 0 {
			nonEmpty = append(nonEmpty, g)
		}
	}

	if len(nonEmpty) > 0 {
		b.WriteString(str(mo, "letter-group-list", nil, "open"))

		sep := str(mo, "letter-group-list", nil, "sep")

		for i, g := range nonEmpty {
			if i > 0 {
				b.WriteString(sep)
			}

			renderGroup(&b, state, g)
		}

		b.WriteString(str(mo, "letter-group-list", nil, "close"))
	}

	b.WriteString(str(mo, "index", nil, "close"))

	return b.String()
}

// IsTeX reports whether state's declared index.open template selects the
// TeX backend, for callers that need to pick an output file extension.
func IsTeX(state *style.State) bool {
	return strings.Contains(str(state.MarkupOptions, "index", nil, "open"), texPreambleMarker)
}

func renderGroup(b *strings.Builder, state *style.State, g index.LetterGroup) {
	mo := state.MarkupOptions

	label := g.Label
	if boolOpt(mo, "letter-group", nil, "capitalize", false) {
		label = strings.ToUpper(label)
	}

	openHead := str(mo, "letter-group", nil, "open-head")
	closeHead := str(mo, "letter-group", nil, "close-head")

	b.WriteString(openHead)
	b.WriteString(label)
	b.WriteString(closeHead)

	for _, node := range g.Nodes {
		renderNode(b, state, node, 0)
	}
}

func renderNode(b *strings.Builder, state *style.State, node *index.Node, depth int) {
	mo := state.MarkupOptions
	depthQ := quals{"depth": strconv.Itoa(depth)}

	indent := str(mo, "indexentry", depthQ, "indent")
	locrefs := renderAttributes(mo, state, node, depth)

	content := indent + node.Display
	if locrefs != "" {
		content += " " + locrefs
	}

	b.WriteString(str(mo, "indexentry", depthQ, "open"))
	b.WriteString(content)
	b.WriteString(str(mo, "indexentry", depthQ, "close"))

	if boolOpt(mo, "indexentry", depthQ, "enable-crossrefs", true) {
		renderCrossrefs(b, state, node, depth)
	}

	maxDepth := intOpt(mo, "index", nil, "max-depth", 0)
	if len(node.Children) == 0 || (maxDepth > 0 && depth+1 > maxDepth) {
		return
	}

	childQ := quals{"depth": strconv.Itoa(depth + 1)}

	b.WriteString(str(mo, "indexentry-list", childQ, "open"))

	for _, child := range node.Children {
		renderNode(b, state, child, depth+1)
	}

	b.WriteString(str(mo, "indexentry-list", childQ, "close"))
}

// renderAttributes composes the full locrefs segment for node: every
// attribute group in declared order, ordinal priority-drop applied
// within each group, wrapped by attribute-group-list/attribute-group
// templates (§4.7 "Attribute ordering").
func renderAttributes(mo style.MarkupOptions, state *style.State, node *index.Node, depth int) string {
	groups := attributeGroups(state)

	var groupOutputs []string

	for _, group := range groups {
		claimed := make(map[int]bool)

		var attrSegs []string

		for _, attr := range group {
			seg := renderAttributeSegment(mo, node, attr, depth, claimed)
			if seg == "" {
				continue
			}

			attrQ := quals{"attr": attr}
			attrSegs = append(attrSegs, str(mo, "attribute-group", attrQ, "open")+seg+str(mo, "attribute-group", attrQ, "close"))
		}

		if len(attrSegs) > 0 {
			groupOutputs = append(groupOutputs, strings.Join(attrSegs, ""))
		}
	}

	if len(groupOutputs) == 0 {
		return ""
	}

	sep := str(mo, "attribute-group-list", nil, "sep")

	return str(mo, "attribute-group-list", nil, "open") + strings.Join(groupOutputs, sep) + str(mo, "attribute-group-list", nil, "close")
}

func renderCrossrefs(b *strings.Builder, state *style.State, node *index.Node, depth int) {
	var targets []string

	var unverified bool

	for _, ref := range node.Locrefs {
		xref, ok := ref.(*locref.CrossrefLocationReference)
		if !ok {
			continue
		}

		targets = append(targets, xref.Target)

		if cls, ok := state.CrossrefClasses[xref.Class().Name]; ok && !cls.Verified {
			unverified = true
		}
	}

	if len(targets) == 0 {
		return
	}

	mo := state.MarkupOptions

	sep := str(mo, "crossref-layer-list", nil, "sep")
	if sep == "" {
		sep = ", "
	}

	body := strings.Join(targets, sep)
	if unverified {
		body += str(mo, "crossref", nil, "unverified-suffix")
	}

	b.WriteString(str(mo, "crossref-list", nil, "open"))
	b.WriteString(body)
	b.WriteString(str(mo, "crossref-list", nil, "close"))
}
