// Package notion provides a client for the Notion REST API and the wire
// types it exchanges: rich text runs, content blocks, and typed property
// values. Blocks and property values are discriminated unions on the wire
// ({"type": t, t: {...}}); the types here carry the discriminant explicitly
// and handle the envelope in their JSON methods.
package notion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BlockType identifies a content block's kind.
type BlockType string

// Supported block types. Anything else round-trips as an opaque
// placeholder when rendered to Markdown.
const (
	BlockHeading1     BlockType = "heading_1"
	BlockHeading2     BlockType = "heading_2"
	BlockHeading3     BlockType = "heading_3"
	BlockParagraph    BlockType = "paragraph"
	BlockBulletedItem BlockType = "bulleted_list_item"
	BlockNumberedItem BlockType = "numbered_list_item"
	BlockQuote        BlockType = "quote"
	BlockDivider      BlockType = "divider"
	BlockCode         BlockType = "code"
)

// Link is a rich text link target.
type Link struct {
	URL string `json:"url"`
}

// Text is the content payload of a rich text run.
type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Annotations carries the style flags of a rich text run.
type Annotations struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
}

// RichText is a single styled text run.
type RichText struct {
	Type        string       `json:"type,omitempty"`
	Text        Text         `json:"text"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
}

// NewText creates a plain text run.
func NewText(content string) RichText {
	return RichText{Type: "text", Text: Text{Content: content}}
}

// NewLink creates a text run linking to url.
func NewLink(content, url string) RichText {
	return RichText{Type: "text", Text: Text{Content: content, Link: &Link{URL: url}}}
}

// NewBold creates a bold text run.
func NewBold(content string) RichText {
	return RichText{Type: "text", Text: Text{Content: content}, Annotations: &Annotations{Bold: true}}
}

// NewItalic creates an italic text run.
func NewItalic(content string) RichText {
	return RichText{Type: "text", Text: Text{Content: content}, Annotations: &Annotations{Italic: true}}
}

// Bold reports whether the run is bold.
func (rt RichText) Bold() bool {
	return rt.Annotations != nil && rt.Annotations.Bold
}

// Italic reports whether the run is italic.
func (rt RichText) Italic() bool {
	return rt.Annotations != nil && rt.Annotations.Italic
}

// PlainText concatenates the plain text content of a run sequence.
func PlainText(runs []RichText) string {
	var b strings.Builder
	for _, rt := range runs {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}

// Block is a single content block. On the wire a block is an envelope
// keyed by its type ({"type": "quote", "quote": {"rich_text": [...]}});
// Block flattens that to the discriminant plus the payloads every
// supported type shares.
type Block struct {
	Type     BlockType
	RichText []RichText
	// Language is set for code blocks only.
	Language string
}

// NewBlock creates a block of the given type with the given runs.
func NewBlock(t BlockType, rt []RichText) Block {
	return Block{Type: t, RichText: rt}
}

// blockPayload is the per-type object inside the block envelope.
type blockPayload struct {
	RichText []RichText `json:"rich_text,omitempty"`
	Language string     `json:"language,omitempty"`
}

// MarshalJSON writes the {"type": t, t: {...}} envelope.
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Type == "" {
		return nil, fmt.Errorf("block has no type")
	}
	env := map[string]any{"type": string(b.Type)}
	switch b.Type {
	case BlockDivider:
		env[string(b.Type)] = struct{}{}
	case BlockCode:
		env[string(b.Type)] = blockPayload{RichText: b.RichText, Language: b.Language}
	default:
		env[string(b.Type)] = blockPayload{RichText: b.RichText}
	}
	return json.Marshal(env)
}

// UnmarshalJSON reads the block envelope. Unknown types keep their
// discriminant and carry no runs.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.Type = BlockType(env.Type)
	b.RichText = nil
	b.Language = ""
	if env.Type == "" || env.Type == string(BlockDivider) {
		return nil
	}

	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}
	raw, ok := outer[env.Type]
	if !ok {
		return nil
	}
	var payload blockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Unknown types may carry payloads this struct does not model.
		return nil
	}
	b.RichText = payload.RichText
	b.Language = payload.Language
	return nil
}

// SelectOption is a select/multi_select/status option.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is a date property payload.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// PropertyValue is a typed property value as returned by the API.
// The payload field matching Type is populated; pointer scalars
// distinguish "absent" from zero values.
type PropertyValue struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Email       *string        `json:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
}

// PropertySchema is a single entry of a database schema: a property
// name's declared type.
type PropertySchema struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// Page is a Notion page object.
type Page struct {
	Object     string                   `json:"object"`
	ID         string                   `json:"id"`
	URL        string                   `json:"url"`
	Properties map[string]PropertyValue `json:"properties"`
}

// SearchResult is a single result from the search endpoint. Pages carry
// Properties; databases and data sources carry a top-level Title.
type SearchResult struct {
	Object     string                   `json:"object"`
	ID         string                   `json:"id"`
	URL        string                   `json:"url"`
	Title      []RichText               `json:"title,omitempty"`
	Properties map[string]PropertyValue `json:"properties,omitempty"`
}

// DataSource is a database's data source: the object that owns the
// property schema.
type DataSource struct {
	Object     string                    `json:"object"`
	ID         string                    `json:"id"`
	Title      []RichText                `json:"title,omitempty"`
	Properties map[string]PropertySchema `json:"properties"`
}

// DataSourceRef is a database's reference to one of its data sources.
type DataSourceRef struct {
	ID string `json:"id"`
}

// Database is the container object holding one or more data sources.
type Database struct {
	Object      string          `json:"object"`
	ID          string          `json:"id"`
	DataSources []DataSourceRef `json:"data_sources"`
}
