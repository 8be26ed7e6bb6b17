package markdown

import "github.com/agentplexus/mcp-notion/notion"

// titlePropertyNames are the conventional title property names, tried
// in order before falling back to a scan of the whole property map.
var titlePropertyNames = []string{"title", "Title", "Name", "name"}

// DefaultTitle is returned when a page has no usable title property.
const DefaultTitle = "Untitled"

// ExtractTitle returns a page's title from its property map. The
// conventional names are checked first; failing those, any property of
// kind title with non-empty content wins (map order, so unspecified
// when several exist). Pages without a title yield DefaultTitle.
func ExtractTitle(properties map[string]notion.PropertyValue) string {
	for _, name := range titlePropertyNames {
		if prop, ok := properties[name]; ok {
			if title := titleFromProperty(prop); title != "" {
				return title
			}
		}
	}
	for _, prop := range properties {
		if title := titleFromProperty(prop); title != "" {
			return title
		}
	}
	return DefaultTitle
}

func titleFromProperty(prop notion.PropertyValue) string {
	if prop.Type != "title" {
		return ""
	}
	return notion.PlainText(prop.Title)
}
