package chatmd

import (
	"fmt"
	"regexp"
)

const (
	linkMarker    = "🔗"
	videoIDLength = 11
	thumbnailURL  = "https://img.youtube.com/vi/%s/mqdefault.jpg"
)

// Variant selects how a video preview is rendered.
type Variant int

const (
	// Rich previews carry a title and description next to the thumbnail.
	Rich Variant = iota
	// Simple previews only show the thumbnail and the watch action.
	Simple
)

func (v Variant) String() string {
	if v == Simple {
		return "simple"
	}
	return "rich"
}

// VideoPreview describes a video reference extracted from reply text.
type VideoPreview struct {
	URL         string
	VideoID     string
	Title       string
	Description string
	Variant     Variant
}

// ThumbnailURL returns the medium-quality thumbnail for the video.
func (v VideoPreview) ThumbnailURL() string {
	return fmt.Sprintf(thumbnailURL, v.VideoID)
}

// watchURL captures the full URL (group 1) and the video id (group 2).
const watchURL = `(https://(?:www\.)?youtube\.com/watch\?v=([A-Za-z0-9_-]+))`

var (
	// 📹 **Label:** title - description [-] 🔗 url
	richVideoRe = regexp.MustCompile(
		`📹[ \t]*\*\*[^*\n]+?:\*\*[ \t]*([^🔗\n]*?)[ \t]+-[ \t]+([^🔗\n]*?)[ \t]*(?:-[ \t]*)?🔗[ \t]*` + watchURL)
	simpleVideoRe = regexp.MustCompile(`🔗[ \t]*` + watchURL)
	linkRe        = regexp.MustCompile(`🔗[ \t]*(https?://[^\s]+)`)
)

// span is a piece of the input that is either still raw text or already
// claimed by a structural matcher.
type span struct {
	text string
	node *Node
}

// matcher turns the submatches of one regexp hit into a node, or reports
// that the hit should be left alone.
type matcher struct {
	re    *regexp.Regexp
	build func(text string, loc []int) (*Node, bool)
}

var structuralMatchers = []matcher{
	{re: richVideoRe, build: buildRichVideo},
	{re: simpleVideoRe, build: buildSimpleVideo},
	{re: linkRe, build: buildLink},
}

func apply(spans []span, m matcher) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.node != nil {
			out = append(out, s)
			continue
		}
		out = append(out, m.split(s.text)...)
	}
	return out
}

func (m matcher) split(text string) []span {
	locs := m.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []span{{text: text}}
	}

	var out []span
	last := 0
	for _, loc := range locs {
		node, ok := m.build(text, loc)
		if !ok {
			continue
		}
		if loc[0] > last {
			out = append(out, span{text: text[last:loc[0]]})
		}
		out = append(out, span{node: node})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, span{text: text[last:]})
	}
	if len(out) == 0 {
		return []span{{text: text}}
	}
	return out
}

func group(text string, loc []int, n int) string {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}

func validVideoID(id string) bool {
	return len(id) == videoIDLength
}

func buildRichVideo(text string, loc []int) (*Node, bool) {
	id := group(text, loc, 4)
	if !validVideoID(id) {
		return nil, false
	}
	return &Node{Kind: KindVideo, Video: &VideoPreview{
		URL:         group(text, loc, 3),
		VideoID:     id,
		Title:       group(text, loc, 1),
		Description: group(text, loc, 2),
		Variant:     Rich,
	}}, true
}

func buildSimpleVideo(text string, loc []int) (*Node, bool) {
	id := group(text, loc, 2)
	if !validVideoID(id) {
		return nil, false
	}
	return &Node{Kind: KindVideo, Video: &VideoPreview{
		URL:     group(text, loc, 1),
		VideoID: id,
		Variant: Simple,
	}}, true
}

func buildLink(text string, loc []int) (*Node, bool) {
	return &Node{Kind: KindLink, Text: group(text, loc, 1)}, true
}
