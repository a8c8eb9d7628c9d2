// Package document models the exchange format: a YAML front-matter header
// followed by a Markdown body, and batches of such documents.
package document

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/property"
)

// Header is the front matter of a document. url, created_time and
// last_edited_time are informational and ignored on write. Unknown keys are
// kept in Extra and never interpreted.
type Header struct {
	ID             string         `yaml:"id,omitempty"`
	URL            string         `yaml:"url,omitempty"`
	Title          string         `yaml:"title,omitempty"`
	Icon           string         `yaml:"icon,omitempty"`
	Cover          string         `yaml:"cover,omitempty"`
	Parent         string         `yaml:"parent,omitempty"`
	Database       string         `yaml:"database,omitempty"`
	Properties     Properties     `yaml:"properties,omitempty"`
	CreatedTime    string         `yaml:"created_time,omitempty"`
	LastEditedTime string         `yaml:"last_edited_time,omitempty"`
	Extra          map[string]any `yaml:",inline"`
}

// Properties is the header's property map in document order.
type Properties []property.Entry

// MarshalYAML emits the entries as a mapping in order.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range p {
		var key, value yaml.Node
		if err := key.Encode(e.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("property %q: %w", e.Key, err)
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping and keeps its key order.
func (p *Properties) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", n.Line)
	}
	out := make(Properties, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var key string
		if err := n.Content[i].Decode(&key); err != nil {
			return err
		}
		var value any
		if err := n.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		out = append(out, property.Entry{Key: key, Value: plainTimes(value)})
	}
	*p = out
	return nil
}

// plainTimes turns YAML timestamps back into the strings they were written
// as, so dates survive a parse and compose unchanged.
func plainTimes(v any) any {
	switch x := v.(type) {
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case map[string]any:
		for k, item := range x {
			x[k] = plainTimes(item)
		}
	case []any:
		for i, item := range x {
			x[i] = plainTimes(item)
		}
	}
	return v
}

// IconObject interprets the icon field: a URL is an external image, anything else
// an emoji.
func (h *Header) IconObject() *notion.Icon {
	icon := strings.TrimSpace(h.Icon)
	switch {
	case icon == "":
		return nil
	case isURL(icon):
		return notion.ExternalIcon(icon)
	default:
		return notion.EmojiIcon(icon)
	}
}

// CoverObject returns the cover as an external file, or nil when unset.
func (h *Header) CoverObject() *notion.FileObject {
	cover := strings.TrimSpace(h.Cover)
	if cover == "" {
		return nil
	}
	return notion.ExternalCover(cover)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
