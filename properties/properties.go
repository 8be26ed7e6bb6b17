// Package properties maps between Notion's typed property values and
// flat scalar/list values used at the tool boundary. Simplify flattens
// typed values for display; Expand formats user-supplied values into
// typed payloads using a database schema. Both directions are driven by
// the same Kind enumeration so the supported set cannot drift between
// them.
package properties

import (
	"fmt"
	"strconv"

	"github.com/agentplexus/mcp-notion/notion"
)

// Kind is a property type discriminant.
type Kind string

// The eleven supported property kinds. Values outside this set are not
// mapped: they simplify to a bracketed placeholder and are skipped on
// write.
const (
	KindTitle       Kind = "title"
	KindRichText    Kind = "rich_text"
	KindNumber      Kind = "number"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multi_select"
	KindDate        Kind = "date"
	KindCheckbox    Kind = "checkbox"
	KindURL         Kind = "url"
	KindEmail       Kind = "email"
	KindPhoneNumber Kind = "phone_number"
	KindStatus      Kind = "status"
)

// Simplify flattens typed property values to plain scalars and lists.
// Unknown kinds become a "[<kind>]" placeholder rather than being
// dropped.
func Simplify(props map[string]notion.PropertyValue) map[string]any {
	result := make(map[string]any, len(props))
	for name, prop := range props {
		result[name] = simplifyValue(prop)
	}
	return result
}

func simplifyValue(p notion.PropertyValue) any {
	switch Kind(p.Type) {
	case KindTitle:
		return notion.PlainText(p.Title)
	case KindRichText:
		return notion.PlainText(p.RichText)
	case KindNumber:
		if p.Number == nil {
			return nil
		}
		return *p.Number
	case KindSelect:
		if p.Select == nil {
			return nil
		}
		return p.Select.Name
	case KindStatus:
		if p.Status == nil {
			return nil
		}
		return p.Status.Name
	case KindMultiSelect:
		names := make([]string, len(p.MultiSelect))
		for i, opt := range p.MultiSelect {
			names[i] = opt.Name
		}
		return names
	case KindDate:
		if p.Date == nil {
			return nil
		}
		return p.Date.Start
	case KindCheckbox:
		if p.Checkbox == nil {
			return nil
		}
		return *p.Checkbox
	case KindURL:
		return derefString(p.URL)
	case KindEmail:
		return derefString(p.Email)
	case KindPhoneNumber:
		return derefString(p.PhoneNumber)
	default:
		return "[" + p.Type + "]"
	}
}

func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// Expand formats flat user-supplied values into typed property payloads
// according to the schema. The schema's title property, when present,
// is always set from the explicit title argument — deliberately
// overwriting any value the flat map supplies under the same key.
// Properties absent from the schema are dropped; values already keyed
// by their schema kind pass through untouched; schema entries of an
// unsupported kind are skipped.
func Expand(flat map[string]any, schema map[string]notion.PropertySchema, title string) map[string]any {
	formatted := make(map[string]any)

	titleName := ""
	for name, def := range schema {
		if Kind(def.Type) == KindTitle {
			titleName = name
			break
		}
	}
	if titleName != "" {
		formatted[titleName] = formatters[KindTitle](title)
	}

	for name, value := range flat {
		if name == titleName {
			continue
		}
		def, ok := schema[name]
		if !ok {
			continue
		}
		kind := Kind(def.Type)

		// Callers may supply values already in the API shape.
		if m, ok := value.(map[string]any); ok {
			if _, ok := m[string(kind)]; ok {
				formatted[name] = value
				continue
			}
		}

		if format, ok := formatters[kind]; ok {
			formatted[name] = format(value)
		}
	}

	return formatted
}

// formatters maps each kind to its write-path formatter. The map and
// the Simplify switch must cover the same kinds.
var formatters = map[Kind]func(any) any{
	KindTitle:       formatTitle,
	KindRichText:    formatRichText,
	KindNumber:      formatNumber,
	KindSelect:      formatOption("select"),
	KindStatus:      formatOption("status"),
	KindMultiSelect: formatMultiSelect,
	KindDate:        formatDate,
	KindCheckbox:    formatCheckbox,
	KindURL:         formatString("url"),
	KindEmail:       formatString("email"),
	KindPhoneNumber: formatString("phone_number"),
}

func formatTitle(value any) any {
	return map[string]any{
		"title": []map[string]any{
			{"text": map[string]string{"content": stringify(value)}},
		},
	}
}

func formatRichText(value any) any {
	return map[string]any{
		"rich_text": []map[string]any{
			{"text": map[string]string{"content": stringify(value)}},
		},
	}
}

func formatNumber(value any) any {
	return map[string]any{"number": toNumber(value)}
}

func formatOption(key string) func(any) any {
	return func(value any) any {
		if !truthy(value) {
			return map[string]any{key: nil}
		}
		return map[string]any{key: map[string]string{"name": stringify(value)}}
	}
}

func formatMultiSelect(value any) any {
	values, ok := value.([]any)
	if !ok {
		values = []any{value}
	}
	options := make([]map[string]string, len(values))
	for i, v := range values {
		options[i] = map[string]string{"name": stringify(v)}
	}
	return map[string]any{"multi_select": options}
}

func formatDate(value any) any {
	if !truthy(value) {
		return map[string]any{"date": nil}
	}
	return map[string]any{"date": map[string]string{"start": stringify(value)}}
}

func formatCheckbox(value any) any {
	return map[string]any{"checkbox": truthy(value)}
}

func formatString(key string) func(any) any {
	return func(value any) any {
		if !truthy(value) {
			return map[string]any{key: nil}
		}
		return map[string]any{key: stringify(value)}
	}
}

// stringify renders a flat value as a string the way it arrived in
// JSON: strings verbatim, numbers without a trailing .0 when integral.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// toNumber casts a flat value to a float, or nil when absent or not
// numeric.
func toNumber(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v {
			return float64(1)
		}
		return float64(0)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

// truthy reports whether a flat value counts as present: nil, empty
// strings, zero numbers, false, and empty collections do not.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
