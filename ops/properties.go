package ops

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/property"
)

// UpdatePropertiesRequest sets property values on a page without touching
// its content. Values use the same forms as the document header.
type UpdatePropertiesRequest struct {
	Page       string         `json:"page"`
	Properties map[string]any `json:"properties"`
}

// UpdateProperties writes property values against the page's schema.
func (s *Service) UpdateProperties(ctx context.Context, req UpdatePropertiesRequest) (string, error) {
	if req.Page == "" {
		return "", invalid("missing_page", "page is required", "Pass a page ID, URL or exact title.")
	}
	if len(req.Properties) == 0 {
		return "", invalid("missing_properties", "properties is empty", "Pass an object of property name to value.")
	}

	page, err := s.resolvePage(ctx, req.Page)
	if err != nil {
		return "", err
	}
	schema, err := s.schemaFor(ctx, page.Parent)
	if err != nil {
		return "", err
	}
	if schema == nil {
		return "", invalid("no_schema", "the page is not in a database, so it only has a title",
			"Use notion_write with a title in the header to rename it.")
	}

	props, dropped := property.Translate(schema, "", sortedEntries(req.Properties))
	if len(props) == 0 {
		return "", invalid("no_writable_properties",
			fmt.Sprintf("none of %s can be written", strings.Join(dropped, ", ")),
			"Writable properties: "+strings.Join(writableNames(schema), ", "))
	}

	updated, err := s.api.UpdatePage(ctx, page.ID, notion.UpdatePageRequest{Properties: props})
	if err != nil {
		return "", fmt.Errorf("update %q: %w", req.Page, err)
	}

	msg := fmt.Sprintf("Updated %d propert%s on %q (%s)", len(props), plural(len(props), "y", "ies"), titleOrUntitled(updated.Title()), updated.ID)
	if len(dropped) > 0 {
		msg += "\nIgnored (unknown or read-only): " + strings.Join(dropped, ", ")
	}
	return msg, nil
}

// sortedEntries orders a property map by key.
func sortedEntries(m map[string]any) []property.Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]property.Entry, len(keys))
	for i, k := range keys {
		entries[i] = property.Entry{Key: k, Value: m[k]}
	}
	return entries
}

func writableNames(schema *property.Schema) []string {
	var names []string
	for _, f := range schema.Fields() {
		if !f.Type.ReadOnly() {
			names = append(names, f.Name)
		}
	}
	return names
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
