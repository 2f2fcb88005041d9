package chatmd

import (
	"regexp"
	"strings"
)

type inlineRule struct {
	re   *regexp.Regexp
	kind Kind
}

// Applied in order. Later rules see the text inside nodes made by earlier
// rules, never the nodes themselves.
var inlineRules = []inlineRule{
	{re: regexp.MustCompile(`\*\*(.*?)\*\*`), kind: KindStrong},
	{re: regexp.MustCompile(`\*(.*?)\*`), kind: KindEmphasis},
	{re: regexp.MustCompile("`(.*?)`"), kind: KindCode},
}

func expandMarkup(s string) []Node {
	if s == "" {
		return nil
	}
	nodes := []Node{{Kind: KindText, Text: s}}
	for _, rule := range inlineRules {
		nodes = rule.apply(nodes)
	}
	return breakLines(nodes)
}

func (r inlineRule) apply(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			out = append(out, r.split(n.Text)...)
		case KindStrong, KindEmphasis, KindCode:
			n.Children = r.apply(n.Children)
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}

func (r inlineRule) split(text string) []Node {
	locs := r.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return textNode(text)
	}
	var out []Node
	last := 0
	for _, loc := range locs {
		out = append(out, textNode(text[last:loc[0]])...)
		out = append(out, Node{Kind: r.kind, Children: textNode(text[loc[2]:loc[3]])})
		last = loc[1]
	}
	return append(out, textNode(text[last:])...)
}

func textNode(s string) []Node {
	if s == "" {
		return nil
	}
	return []Node{{Kind: KindText, Text: s}}
}

// breakLines replaces newlines in text nodes with line-break nodes.
func breakLines(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			if !strings.Contains(n.Text, "\n") {
				out = append(out, n)
				continue
			}
			for i, line := range strings.Split(n.Text, "\n") {
				if i > 0 {
					out = append(out, Node{Kind: KindLineBreak})
				}
				out = append(out, textNode(line)...)
			}
		case KindStrong, KindEmphasis, KindCode:
			n.Children = breakLines(n.Children)
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}
