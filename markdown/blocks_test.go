package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentplexus/mcp-notion/notion"
)

func TestToBlocksClassification(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantType notion.BlockType
		wantText string
	}{
		{"heading 1", "# Title", notion.BlockHeading1, "Title"},
		{"heading 2", "## Section", notion.BlockHeading2, "Section"},
		{"heading 3", "### Sub", notion.BlockHeading3, "Sub"},
		{"quote", "> Wise words", notion.BlockQuote, "Wise words"},
		{"bulleted item", "- Item", notion.BlockBulletedItem, "Item"},
		{"numbered item", "1. First", notion.BlockNumberedItem, "First"},
		{"numbered item large ordinal", "42. Answer", notion.BlockNumberedItem, "Answer"},
		{"paragraph", "Just text", notion.BlockParagraph, "Just text"},
		{"hash without space is paragraph", "#hashtag", notion.BlockParagraph, "#hashtag"},
		{"digits without dot is paragraph", "1990 was a year", notion.BlockParagraph, "1990 was a year"},
		{"dot without space is paragraph", "3.14 is pi", notion.BlockParagraph, "3.14 is pi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := ToBlocks(tt.line)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.wantType, blocks[0].Type)
			assert.Equal(t, tt.wantText, RenderInline(blocks[0].RichText))
		})
	}
}

func TestToBlocksSkipsBlankLines(t *testing.T) {
	blocks := ToBlocks("first\n\n   \n\nsecond")
	require.Len(t, blocks, 2)
	assert.Equal(t, notion.BlockParagraph, blocks[0].Type)
	assert.Equal(t, notion.BlockParagraph, blocks[1].Type)
}

func TestToBlocksDocument(t *testing.T) {
	blocks := ToBlocks("# Title\n\nSome **bold** text\n\n- Item")
	require.Len(t, blocks, 3)

	assert.Equal(t, notion.BlockHeading1, blocks[0].Type)
	assert.Equal(t, "Title", blocks[0].RichText[0].Text.Content)

	assert.Equal(t, notion.BlockParagraph, blocks[1].Type)
	require.Len(t, blocks[1].RichText, 3)
	assert.Equal(t, "Some ", blocks[1].RichText[0].Text.Content)
	assert.Equal(t, "bold", blocks[1].RichText[1].Text.Content)
	assert.True(t, blocks[1].RichText[1].Bold())
	assert.Equal(t, " text", blocks[1].RichText[2].Text.Content)

	assert.Equal(t, notion.BlockBulletedItem, blocks[2].Type)
	assert.Equal(t, "Item", blocks[2].RichText[0].Text.Content)
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		block notion.Block
		want  string
	}{
		{"heading 1", notion.NewBlock(notion.BlockHeading1, []notion.RichText{notion.NewText("Title")}), "# Title"},
		{"heading 2", notion.NewBlock(notion.BlockHeading2, []notion.RichText{notion.NewText("Section")}), "## Section"},
		{"heading 3", notion.NewBlock(notion.BlockHeading3, []notion.RichText{notion.NewText("Sub")}), "### Sub"},
		{"paragraph", notion.NewBlock(notion.BlockParagraph, []notion.RichText{notion.NewText("text")}), "text"},
		{"bulleted item", notion.NewBlock(notion.BlockBulletedItem, []notion.RichText{notion.NewText("Item")}), "- Item"},
		{"numbered item renders literal 1.", notion.NewBlock(notion.BlockNumberedItem, []notion.RichText{notion.NewText("Any")}), "1. Any"},
		{"quote", notion.NewBlock(notion.BlockQuote, []notion.RichText{notion.NewText("Wise")}), "> Wise"},
		{"divider", notion.Block{Type: notion.BlockDivider}, "---"},
		{
			"code with language",
			notion.Block{Type: notion.BlockCode, RichText: []notion.RichText{notion.NewText("x := 1")}, Language: "go"},
			"```go\nx := 1\n```",
		},
		{"unsupported type renders placeholder", notion.Block{Type: "child_database"}, "[child_database block]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMarkdown([]notion.Block{tt.block}))
		})
	}
}

func TestToMarkdownJoinsLines(t *testing.T) {
	blocks := []notion.Block{
		notion.NewBlock(notion.BlockHeading1, []notion.RichText{notion.NewText("Title")}),
		notion.NewBlock(notion.BlockParagraph, []notion.RichText{notion.NewText("Body")}),
	}
	assert.Equal(t, "# Title\nBody", ToMarkdown(blocks))
}

func TestBlocksRoundTrip(t *testing.T) {
	md := "# Title\n## Section\n### Sub\nA paragraph with **bold** and *italic* and [a link](https://example.com)\n- one\n- two\n1. first\n> quoted"
	blocks := ToBlocks(md)
	require.Len(t, blocks, 8)

	again := ToBlocks(ToMarkdown(blocks))
	assert.Equal(t, blocks, again)
}

func TestBlocksRoundTripCollapsesOrdinals(t *testing.T) {
	blocks := ToBlocks("3. third\n7. seventh")
	out := ToMarkdown(blocks)
	assert.Equal(t, "1. third\n1. seventh", out)
}
