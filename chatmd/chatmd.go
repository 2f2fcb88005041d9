// Package chatmd converts assistant reply text into renderable content.
//
// Replies use a small markup dialect (**bold**, *italic*, `code`, newlines)
// and carry video suggestions as text patterns:
//
//	📹 **Video guide:** Title - Description 🔗 https://www.youtube.com/watch?v=XXXXXXXXXXX
//
// Convert splits the text into a node stream. Structural matchers run first and
// claim their spans (rich video card, simple video card, external link); markup
// is then expanded only inside the spans nobody claimed. Nodes are inert, so no
// rule ever re-reads output produced by an earlier one.
//
// Nesting is best effort: each markup rule is a single global, non-greedy
// substitution and overlapping spans are not reconciled.
package chatmd

import "strings"

// Kind identifies the type of a content node.
type Kind int

const (
	KindText Kind = iota
	KindStrong
	KindEmphasis
	KindCode
	KindLineBreak
	KindVideo
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindStrong:
		return "strong"
	case KindEmphasis:
		return "emphasis"
	case KindCode:
		return "code"
	case KindLineBreak:
		return "linebreak"
	case KindVideo:
		return "video"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Node is one element of formatted content.
type Node struct {
	Kind     Kind
	Text     string        // literal text for KindText, target URL for KindLink
	Children []Node        // KindStrong, KindEmphasis, KindCode
	Video    *VideoPreview // KindVideo
}

// Content is the ordered node stream produced by Convert.
type Content []Node

// Videos returns every video preview in the content, in order.
func (c Content) Videos() []VideoPreview {
	var out []VideoPreview
	for _, n := range c {
		if n.Kind == KindVideo && n.Video != nil {
			out = append(out, *n.Video)
		}
	}
	return out
}

// PlainText returns the visible text of the content without styling.
func (c Content) PlainText() string {
	var b strings.Builder
	writePlain(&b, c)
	return b.String()
}

func writePlain(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(n.Text)
		case KindLineBreak:
			b.WriteByte('\n')
		case KindStrong, KindEmphasis, KindCode:
			writePlain(b, n.Children)
		case KindLink:
			b.WriteString(linkMarker + " " + n.Text)
		case KindVideo:
			if n.Video == nil {
				continue
			}
			if n.Video.Title != "" {
				b.WriteString(n.Video.Title)
				b.WriteString(" - ")
			}
			if n.Video.Description != "" {
				b.WriteString(n.Video.Description)
				b.WriteByte(' ')
			}
			b.WriteString(n.Video.URL)
		}
	}
}

// Plain wraps raw text as literal content with no markup expansion.
// User messages are rendered this way so they are shown verbatim.
func Plain(raw string) Content {
	if raw == "" {
		return nil
	}
	return Content{{Kind: KindText, Text: raw}}
}

// Convert formats raw assistant text. It never fails: anything that does not
// match a rule is kept as literal text.
func Convert(raw string) Content {
	spans := []span{{text: raw}}
	for _, m := range structuralMatchers {
		spans = apply(spans, m)
	}

	var out Content
	for _, s := range spans {
		if s.node != nil {
			out = append(out, *s.node)
			continue
		}
		out = append(out, expandMarkup(s.text)...)
	}
	return out
}
