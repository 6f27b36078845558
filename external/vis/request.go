package vis

import (
	"sort"
	"strings"
)

// Request describes one call to the VIS XmlRequest endpoint. Attribute names
// are PascalCase on the wire (Type, Fields, No, Filter, Phase, ...).
type Request struct {
	Type   string
	Fields string
	// Attributes on the <Request> element (Filter expression, No, Phase, ...).
	Attributes map[string]string
	// Filter rendered as a <Filter .../> child element. Some operations
	// (GetEventList) only accept the filter this way.
	FilterAttributes map[string]string
}

// encode renders the request envelope. wrap adds the legacy <Requests> outer
// element required by some operations.
func (r Request) encode(wrap bool) string {
	var buf strings.Builder
	buf.WriteString("<Request Type=\"")
	buf.WriteString(escapeXMLAttr(r.Type))
	buf.WriteString("\"")

	if r.Fields != "" {
		buf.WriteString(" Fields=\"")
		buf.WriteString(escapeXMLAttr(r.Fields))
		buf.WriteString("\"")
	}

	for _, key := range sortedKeys(r.Attributes) {
		value := r.Attributes[key]
		if value == "" {
			continue
		}
		buf.WriteString(" ")
		buf.WriteString(key)
		buf.WriteString("=\"")
		buf.WriteString(escapeXMLAttr(value))
		buf.WriteString("\"")
	}

	if len(r.FilterAttributes) == 0 {
		buf.WriteString(" />")
	} else {
		buf.WriteString("><Filter")
		for _, key := range sortedKeys(r.FilterAttributes) {
			value := r.FilterAttributes[key]
			if value == "" {
				continue
			}
			buf.WriteString(" ")
			buf.WriteString(key)
			buf.WriteString("=\"")
			buf.WriteString(escapeXMLAttr(value))
			buf.WriteString("\"")
		}
		buf.WriteString(" /></Request>")
	}

	if wrap {
		return "<Requests>" + buf.String() + "</Requests>"
	}
	return buf.String()
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func escapeXMLAttr(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
	)
	return replacer.Replace(value)
}
