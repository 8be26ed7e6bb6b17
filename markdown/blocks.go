package markdown

import (
	"strings"

	"github.com/agentplexus/mcp-notion/notion"
)

// ToBlocks converts Markdown to Notion content blocks. The input is
// split on line breaks; blank lines produce no block and every other
// line becomes exactly one block, classified by its leading marker.
func ToBlocks(md string) []notion.Block {
	var blocks []notion.Block
	for _, line := range strings.Split(md, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, parseLine(line))
	}
	return blocks
}

// parseLine classifies a single non-blank line. Marker prefixes are
// tested longest-heading first so "### " is never read as "# ".
func parseLine(line string) notion.Block {
	switch {
	case strings.HasPrefix(line, "### "):
		return notion.NewBlock(notion.BlockHeading3, ParseInline(line[4:]))
	case strings.HasPrefix(line, "## "):
		return notion.NewBlock(notion.BlockHeading2, ParseInline(line[3:]))
	case strings.HasPrefix(line, "# "):
		return notion.NewBlock(notion.BlockHeading1, ParseInline(line[2:]))
	case strings.HasPrefix(line, "> "):
		return notion.NewBlock(notion.BlockQuote, ParseInline(line[2:]))
	case strings.HasPrefix(line, "- "):
		return notion.NewBlock(notion.BlockBulletedItem, ParseInline(line[2:]))
	}
	if rest, ok := stripOrdinal(line); ok {
		return notion.NewBlock(notion.BlockNumberedItem, ParseInline(rest))
	}
	return notion.NewBlock(notion.BlockParagraph, ParseInline(line))
}

// stripOrdinal removes a leading "<digits>. " marker. The literal
// ordinal is discarded: numbered items are independent of it.
func stripOrdinal(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(line) || line[i] != '.' {
		return "", false
	}
	if c := line[i+1]; c != ' ' && c != '\t' {
		return "", false
	}
	return line[i+2:], true
}

// ToMarkdown converts Notion content blocks to Markdown. Each block
// renders in input order; unsupported block types render as an opaque
// bracketed placeholder instead of failing the whole conversion.
func ToMarkdown(blocks []notion.Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, renderBlock(b))
	}
	return strings.Join(lines, "\n")
}

func renderBlock(b notion.Block) string {
	text := RenderInline(b.RichText)
	switch b.Type {
	case notion.BlockHeading1:
		return "# " + text
	case notion.BlockHeading2:
		return "## " + text
	case notion.BlockHeading3:
		return "### " + text
	case notion.BlockParagraph:
		return text
	case notion.BlockBulletedItem:
		return "- " + text
	case notion.BlockNumberedItem:
		// Ordinals are not reconstructed; renderers that auto-number
		// display the right sequence anyway.
		return "1. " + text
	case notion.BlockQuote:
		return "> " + text
	case notion.BlockDivider:
		return "---"
	case notion.BlockCode:
		return "```" + b.Language + "\n" + text + "\n```"
	default:
		return "[" + string(b.Type) + " block]"
	}
}
