package vis

import (
	"encoding/xml"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Record is one flat item of a VIS response: field name to primitive value,
// or to the attribute map of a nested child element. Keys are PascalCase
// regardless of the wire shape.
type Record map[string]any

// IsErrorRecord reports whether a record is a VIS error payload rather than
// data. The service embeds these inline instead of using an HTTP status.
func IsErrorRecord(rec Record) bool {
	if rec == nil {
		return false
	}
	_, ok := rec["Errors"]
	return ok
}

type parseOutcome struct {
	records []Record
	// errorText carries the message of a VIS <Error> payload, used by
	// callers that must tell "not applicable" apart from "no data".
	errorText string
}

func parseResponse(body []byte, contentType, nodePath string) (parseOutcome, error) {
	if strings.Contains(contentType, "json") {
		return parseJSONResponse(body)
	}
	return parseXMLResponse(body, nodePath)
}

// parseJSONResponse handles the compact keyed-array shape. VIS returns
// {"data": [...]} with camelCase keys; keys are normalized to PascalCase so
// both wire shapes feed the normalizer with one naming scheme.
func parseJSONResponse(body []byte) (parseOutcome, error) {
	var decoded any
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return parseOutcome{}, err
	}

	switch value := decoded.(type) {
	case []any:
		return parseOutcome{records: jsonRecords(value)}, nil
	case map[string]any:
		if payload, ok := value["data"]; ok {
			switch data := payload.(type) {
			case []any:
				return parseOutcome{records: jsonRecords(data)}, nil
			case map[string]any:
				return parseOutcome{records: []Record{pascalRecord(data)}}, nil
			}
		}
		for _, v := range value {
			switch data := v.(type) {
			case []any:
				return parseOutcome{records: jsonRecords(data)}, nil
			case map[string]any:
				return parseOutcome{records: []Record{pascalRecord(data)}}, nil
			}
		}
		return parseOutcome{}, nil
	default:
		return parseOutcome{}, nil
	}
}

func jsonRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, pascalRecord(m))
		}
	}
	return out
}

func pascalRecord(m map[string]any) Record {
	rec := make(Record, len(m))
	for key, value := range m {
		rec[pascalKey(key)] = value
	}
	return rec
}

// pascalKey turns camelCase into PascalCase (countryCode -> CountryCode).
func pascalKey(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// xmlNode is a generic element tree; xml.Name.Local drops any namespace so
// element paths match regardless of the root's xmlns.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

// parseXMLResponse handles the verbose tree shape: each repeated nodePath
// element becomes one record with its attributes as fields; leaf children
// contribute their text, non-leaf children their attribute map.
func parseXMLResponse(body []byte, nodePath string) (parseOutcome, error) {
	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return parseOutcome{}, err
	}

	target := strings.TrimPrefix(nodePath, "//")
	out := parseOutcome{}
	collectXMLRecords(root, target, &out.records)
	if len(out.records) == 0 {
		out.errorText = findXMLError(root)
	}
	return out, nil
}

func collectXMLRecords(node xmlNode, target string, out *[]Record) {
	if node.XMLName.Local == target {
		*out = append(*out, xmlRecord(node))
	}
	for _, child := range node.Children {
		collectXMLRecords(child, target, out)
	}
}

func xmlRecord(node xmlNode) Record {
	rec := make(Record, len(node.Attrs)+len(node.Children))
	for _, attr := range node.Attrs {
		rec[attr.Name.Local] = attr.Value
	}
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			if text := strings.TrimSpace(child.Text); text != "" {
				rec[child.XMLName.Local] = text
				continue
			}
		}
		if len(child.Attrs) > 0 {
			attrs := make(map[string]any, len(child.Attrs))
			for _, attr := range child.Attrs {
				attrs[attr.Name.Local] = attr.Value
			}
			rec[child.XMLName.Local] = attrs
		}
	}
	if len(node.Children) == 0 {
		if text := strings.TrimSpace(node.Text); text != "" {
			rec["_text"] = text
		}
	}
	return rec
}

func findXMLError(node xmlNode) string {
	if node.XMLName.Local == "Error" || node.XMLName.Local == "Errors" {
		if text := strings.TrimSpace(node.Text); text != "" {
			return text
		}
		for _, attr := range node.Attrs {
			if attr.Name.Local == "Message" || attr.Name.Local == "Text" {
				return attr.Value
			}
		}
		return node.XMLName.Local
	}
	for _, child := range node.Children {
		if msg := findXMLError(child); msg != "" {
			return msg
		}
	}
	return ""
}
