package chatmd

import (
	"fmt"
	"strings"
)

// Labels holds the user-facing strings of rendered preview cards.
type Labels struct {
	Watch    string // watch action text
	VideoAlt string // thumbnail alt text for simple previews
	Play     string // glyph over the thumbnail
}

// DefaultLabels returns the built-in card labels.
func DefaultLabels() Labels {
	return Labels{
		Watch:    "▶ Watch video",
		VideoAlt: "Video",
		Play:     "▶",
	}
}

const externalAttrs = `target="_blank" rel="noopener noreferrer"`

// EscapeHTML escapes text for use in HTML element content and quoted
// attribute values.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RenderHTML renders content as an HTML fragment. All text and attribute
// values are escaped and no script attributes are emitted.
func RenderHTML(c Content, labels Labels) string {
	var b strings.Builder
	writeHTML(&b, c, labels)
	return b.String()
}

func writeHTML(b *strings.Builder, nodes []Node, labels Labels) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(EscapeHTML(n.Text))
		case KindLineBreak:
			b.WriteString("<br>")
		case KindStrong:
			b.WriteString("<strong>")
			writeHTML(b, n.Children, labels)
			b.WriteString("</strong>")
		case KindEmphasis:
			b.WriteString("<em>")
			writeHTML(b, n.Children, labels)
			b.WriteString("</em>")
		case KindCode:
			b.WriteString("<code>")
			writeHTML(b, n.Children, labels)
			b.WriteString("</code>")
		case KindLink:
			url := EscapeHTML(n.Text)
			fmt.Fprintf(b, `<a href="%s" %s>%s %s</a>`, url, externalAttrs, linkMarker, url)
		case KindVideo:
			if n.Video != nil {
				writeVideoCard(b, *n.Video, labels)
			}
		}
	}
}

func writeVideoCard(b *strings.Builder, v VideoPreview, labels Labels) {
	url := EscapeHTML(v.URL)
	alt := labels.VideoAlt
	class := "video-preview-card"
	if v.Variant == Simple {
		class += " simple"
	} else {
		alt = v.Title
	}

	fmt.Fprintf(b, `<div class="%s">`, class)
	fmt.Fprintf(b, `<div class="video-thumbnail-container"><a class="video-play-overlay" href="%s" %s>`, url, externalAttrs)
	fmt.Fprintf(b, `<img class="video-thumbnail" src="%s" alt="%s">`, EscapeHTML(v.ThumbnailURL()), EscapeHTML(alt))
	fmt.Fprintf(b, `<span class="play-button">%s</span></a></div>`, EscapeHTML(labels.Play))
	b.WriteString(`<div class="video-info">`)
	if v.Variant == Rich {
		fmt.Fprintf(b, `<div class="video-title"><a href="%s" %s>%s</a></div>`, url, externalAttrs, EscapeHTML(v.Title))
		fmt.Fprintf(b, `<div class="video-description">%s</div>`, EscapeHTML(v.Description))
	}
	fmt.Fprintf(b, `<a class="watch-button" href="%s" %s>%s</a>`, url, externalAttrs, EscapeHTML(labels.Watch))
	b.WriteString(`</div></div>`)
}
