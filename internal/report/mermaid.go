package report

import (
	"fmt"
	"regexp"
	"strings"

	"specview/internal/graph"
)

var mermaidIDRe = regexp.MustCompile(`[^a-z0-9_]`)

// Mermaid draws the mapping graph of the given calls as a flowchart, one
// subgraph per call instance. An empty call list draws every call in the graph.
func Mermaid(g *graph.Graph, calls ...string) string {
	wanted := map[string]bool{}
	for _, c := range calls {
		wanted[c] = true
	}
	include := func(n *graph.Node) bool {
		return len(wanted) == 0 || wanted[n.Call]
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("graph LR\n")

	ids := map[string]string{}
	current := ""
	for _, n := range g.OrderedNodes() {
		if !include(n) {
			continue
		}
		if n.Scope != current {
			if current != "" {
				sb.WriteString("    end\n")
			}
			current = n.Scope
			sb.WriteString(fmt.Sprintf("    subgraph %s[%q]\n", sanitizeMermaidID(n.Scope), n.Call))
		}
		id := sanitizeMermaidID(fmt.Sprintf("n%d_%s", len(ids), n.Name))
		ids[n.ID] = id
		sb.WriteString(fmt.Sprintf("        %s%s\n", id, nodeShape(n)))
	}
	if current != "" {
		sb.WriteString("    end\n")
	}

	for _, e := range g.Edges {
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if !okFrom || !okTo {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", from, e.Kind, to))
	}

	sb.WriteString("```\n")
	return sb.String()
}

func nodeShape(n *graph.Node) string {
	switch n.Kind {
	case graph.KindAnalysis:
		return fmt.Sprintf("[%q]", n.Name)
	case graph.KindOperation:
		return fmt.Sprintf("([%q])", n.Name)
	default:
		return fmt.Sprintf("((%q))", n.Name)
	}
}

func sanitizeMermaidID(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "node"
	}
	v = mermaidIDRe.ReplaceAllString(strings.ReplaceAll(v, "-", "_"), "_")
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}
