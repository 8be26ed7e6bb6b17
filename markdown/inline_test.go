package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentplexus/mcp-notion/notion"
)

func TestParseInlinePlain(t *testing.T) {
	runs := ParseInline("Hello world")
	require.Len(t, runs, 1)
	assert.Equal(t, "Hello world", runs[0].Text.Content)
	assert.Nil(t, runs[0].Annotations)
	assert.Nil(t, runs[0].Text.Link)
}

func TestParseInlineEmpty(t *testing.T) {
	runs := ParseInline("")
	require.Len(t, runs, 1)
	assert.Equal(t, "", runs[0].Text.Content)
}

func TestParseInlineBold(t *testing.T) {
	runs := ParseInline("This is **bold** text")
	require.Len(t, runs, 3)
	assert.Equal(t, "This is ", runs[0].Text.Content)
	assert.Equal(t, "bold", runs[1].Text.Content)
	assert.True(t, runs[1].Bold())
	assert.Equal(t, " text", runs[2].Text.Content)
}

func TestParseInlineItalic(t *testing.T) {
	runs := ParseInline("This is *italic* text")
	require.Len(t, runs, 3)
	assert.Equal(t, "italic", runs[1].Text.Content)
	assert.True(t, runs[1].Italic())
	assert.False(t, runs[1].Bold())
}

func TestParseInlineLink(t *testing.T) {
	runs := ParseInline("Click [here](https://example.com) now")
	require.Len(t, runs, 3)
	assert.Equal(t, "here", runs[1].Text.Content)
	require.NotNil(t, runs[1].Text.Link)
	assert.Equal(t, "https://example.com", runs[1].Text.Link.URL)
}

func TestParseInlineMixed(t *testing.T) {
	runs := ParseInline("**bold** and *italic*")
	require.Len(t, runs, 3)
	assert.True(t, runs[0].Bold())
	assert.Equal(t, " and ", runs[1].Text.Content)
	assert.True(t, runs[2].Italic())
}

func TestParseInlineEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []notion.RichText
	}{
		{
			name: "bold not misread as two italics",
			in:   "**text**",
			want: []notion.RichText{notion.NewBold("text")},
		},
		{
			name: "unclosed bold stays plain",
			in:   "**oops",
			want: []notion.RichText{notion.NewText("**oops")},
		},
		{
			name: "unclosed bold falls back to italic",
			in:   "**a*",
			want: []notion.RichText{notion.NewItalic("*a")},
		},
		{
			name: "bold with leading star in content",
			in:   "***a***",
			want: []notion.RichText{notion.NewBold("*a"), notion.NewText("*")},
		},
		{
			name: "link takes precedence at its position",
			in:   "[a*b](u)*",
			want: []notion.RichText{notion.NewLink("a*b", "u"), notion.NewText("*")},
		},
		{
			name: "empty link label is plain",
			in:   "[](url)",
			want: []notion.RichText{notion.NewText("[](url)")},
		},
		{
			name: "empty url is plain",
			in:   "[text]()",
			want: []notion.RichText{notion.NewText("[text]()")},
		},
		{
			name: "no nesting inside emphasis",
			in:   "*[x](y)*",
			want: []notion.RichText{notion.NewItalic("[x](y)")},
		},
		{
			name: "lone asterisk stays plain",
			in:   "a * b",
			want: []notion.RichText{notion.NewText("a * b")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInline(tt.in))
		})
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		runs []notion.RichText
		want string
	}{
		{
			name: "plain",
			runs: []notion.RichText{notion.NewText("hello")},
			want: "hello",
		},
		{
			name: "bold",
			runs: []notion.RichText{notion.NewBold("loud")},
			want: "**loud**",
		},
		{
			name: "italic",
			runs: []notion.RichText{notion.NewItalic("soft")},
			want: "*soft*",
		},
		{
			name: "link",
			runs: []notion.RichText{notion.NewLink("here", "https://example.com")},
			want: "[here](https://example.com)",
		},
		{
			name: "styling wraps link syntax",
			runs: []notion.RichText{{
				Type:        "text",
				Text:        notion.Text{Content: "x", Link: &notion.Link{URL: "u"}},
				Annotations: &notion.Annotations{Italic: true},
			}},
			want: "*[x](u)*",
		},
		{
			name: "concatenation preserves order",
			runs: []notion.RichText{
				notion.NewText("Some "),
				notion.NewBold("bold"),
				notion.NewText(" text"),
			},
			want: "Some **bold** text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderInline(tt.runs))
		})
	}
}

func TestInlineRoundTrip(t *testing.T) {
	inputs := []string{
		"plain text with no markup",
		"a **bold** word",
		"an *italic* word",
		"a [link](https://example.com) here",
		"**bold** then *italic* then [l](u)",
		"",
	}
	for _, in := range inputs {
		runs := ParseInline(in)
		assert.Equal(t, in, RenderInline(runs), "round trip of %q", in)
	}
}
