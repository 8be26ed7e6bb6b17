// Package markdown converts between a constrained Markdown dialect and
// Notion content blocks. The dialect covers three heading levels, bullet
// and numbered list items, blockquotes, paragraphs, bold and italic
// emphasis, and links; everything else passes through as plain text or
// renders as an opaque placeholder.
package markdown

import (
	"strings"

	"github.com/agentplexus/mcp-notion/notion"
)

// ParseInline scans a plain string left to right for inline markup and
// returns the corresponding rich text runs. At each position a link
// ([text](url)) is tried first, then bold (**text**), then italic
// (*text*), so ** is never misparsed as two italics. Matches do not
// nest. Input with no markup yields exactly one plain run, even when
// empty.
func ParseInline(text string) []notion.RichText {
	var runs []notion.RichText
	plainStart := 0

	i := 0
	for i < len(text) {
		run, end, ok := matchInline(text, i)
		if !ok {
			i++
			continue
		}
		if i > plainStart {
			runs = append(runs, notion.NewText(text[plainStart:i]))
		}
		runs = append(runs, run)
		i = end
		plainStart = end
	}

	if plainStart < len(text) {
		runs = append(runs, notion.NewText(text[plainStart:]))
	}
	if len(runs) == 0 {
		return []notion.RichText{notion.NewText(text)}
	}
	return runs
}

// matchInline tries to match a styled run starting at position i.
// It returns the run and the position just past the match.
func matchInline(text string, i int) (notion.RichText, int, bool) {
	if run, end, ok := matchLink(text, i); ok {
		return run, end, true
	}
	if run, end, ok := matchBold(text, i); ok {
		return run, end, true
	}
	return matchItalic(text, i)
}

// matchLink matches [text](url) with a non-empty label containing no
// "]" and a non-empty url containing no ")".
func matchLink(text string, i int) (notion.RichText, int, bool) {
	if text[i] != '[' {
		return notion.RichText{}, 0, false
	}
	close1 := strings.IndexByte(text[i+1:], ']')
	if close1 < 1 {
		return notion.RichText{}, 0, false
	}
	j := i + 1 + close1
	if j+1 >= len(text) || text[j+1] != '(' {
		return notion.RichText{}, 0, false
	}
	close2 := strings.IndexByte(text[j+2:], ')')
	if close2 < 1 {
		return notion.RichText{}, 0, false
	}
	k := j + 2 + close2
	return notion.NewLink(text[i+1:j], text[j+2:k]), k + 1, true
}

// matchBold matches **text** with non-empty content; the closing
// marker is the first ** at least one character past the opener.
func matchBold(text string, i int) (notion.RichText, int, bool) {
	if !strings.HasPrefix(text[i:], "**") {
		return notion.RichText{}, 0, false
	}
	if i+3 > len(text) {
		return notion.RichText{}, 0, false
	}
	rel := strings.Index(text[i+3:], "**")
	if rel < 0 {
		return notion.RichText{}, 0, false
	}
	j := i + 3 + rel
	return notion.NewBold(text[i+2 : j]), j + 2, true
}

// matchItalic matches *text* with non-empty content; the closing
// marker is the first * at least two characters past the opener, so an
// unclosed ** falls back to an italic whose content starts with *.
func matchItalic(text string, i int) (notion.RichText, int, bool) {
	if text[i] != '*' || i+3 > len(text) {
		return notion.RichText{}, 0, false
	}
	rel := strings.IndexByte(text[i+2:], '*')
	if rel < 0 {
		return notion.RichText{}, 0, false
	}
	j := i + 2 + rel
	return notion.NewItalic(text[i+1 : j]), j + 1, true
}

// RenderInline renders rich text runs back to inline Markdown. The link
// bracket form wraps the innermost content; bold and italic markers
// wrap outside it, so an italic link renders as *[text](url)*.
func RenderInline(runs []notion.RichText) string {
	var b strings.Builder
	for _, rt := range runs {
		content := rt.Text.Content
		if rt.Text.Link != nil {
			content = "[" + content + "](" + rt.Text.Link.URL + ")"
		}
		if rt.Bold() {
			content = "**" + content + "**"
		}
		if rt.Italic() {
			content = "*" + content + "*"
		}
		b.WriteString(content)
	}
	return b.String()
}
