package markdown

import (
	"fmt"

	"github.com/vthunder/notion-docs-mcp/notion"
)

// Encode converts blocks into API block payloads for create and append.
// Variants the API cannot create are skipped; layout containers are
// flattened into their content.
func Encode(blocks []Block) []map[string]any {
	out := []map[string]any{}
	for _, blk := range blocks {
		out = append(out, encodeBlock(blk)...)
	}
	return out
}

func apiBlock(typ string, data map[string]any, children []Block) map[string]any {
	if len(children) > 0 {
		data["children"] = Encode(children)
	}
	return map[string]any{"object": "block", "type": typ, typ: data}
}

func encodeBlock(blk Block) []map[string]any {
	one := func(m map[string]any) []map[string]any { return []map[string]any{m} }

	switch v := blk.(type) {
	case Heading:
		typ := fmt.Sprintf("heading_%d", min(max(v.Level, 1), 3))
		return one(apiBlock(typ, map[string]any{"rich_text": encodeRichText(v.Text)}, nil))
	case Paragraph:
		return one(apiBlock("paragraph", map[string]any{"rich_text": encodeRichText(v.Text)}, v.Children))
	case BulletedItem:
		return one(apiBlock("bulleted_list_item", map[string]any{"rich_text": encodeRichText(v.Text)}, v.Children))
	case NumberedItem:
		return one(apiBlock("numbered_list_item", map[string]any{"rich_text": encodeRichText(v.Text)}, v.Children))
	case ToDo:
		return one(apiBlock("to_do", map[string]any{"rich_text": encodeRichText(v.Text), "checked": v.Checked}, v.Children))
	case Quote:
		return one(apiBlock("quote", map[string]any{"rich_text": encodeRichText(v.Text)}, v.Children))
	case Callout:
		data := map[string]any{"rich_text": encodeRichText(v.Text)}
		if v.Icon != "" {
			data["icon"] = map[string]any{"type": "emoji", "emoji": v.Icon}
		}
		return one(apiBlock("callout", data, v.Children))
	case Toggle:
		return one(apiBlock("toggle", map[string]any{"rich_text": encodeRichText(v.Text)}, v.Children))
	case Code:
		return one(apiBlock("code", map[string]any{
			"rich_text": notion.TextContent(v.Text),
			"language":  NotionLanguage(v.Language),
		}, nil))
	case Divider:
		return one(apiBlock("divider", map[string]any{}, nil))
	case Table:
		return one(encodeTable(v))
	case LinkToPage:
		return one(apiBlock("link_to_page", map[string]any{"type": "page_id", "page_id": v.ID}, nil))
	case Media:
		caption := encodeRichText(v.Caption)
		switch v.Kind {
		case "bookmark", "embed":
			return one(apiBlock(v.Kind, map[string]any{"url": v.URL, "caption": caption}, nil))
		case "image", "video", "audio", "file", "pdf":
			return one(apiBlock(v.Kind, map[string]any{
				"type":     "external",
				"external": map[string]any{"url": v.URL},
				"caption":  caption,
			}, nil))
		}
	case Equation:
		return one(apiBlock("equation", map[string]any{"expression": v.Expression}, nil))
	case Container:
		return Encode(v.Children)
	case Omitted:
		if v.Kind == "table_of_contents" || v.Kind == "breadcrumb" {
			return one(apiBlock(v.Kind, map[string]any{}, nil))
		}
	}
	// ChildPage and Unsupported have no create form.
	return nil
}

func encodeTable(t Table) map[string]any {
	width := 0
	if len(t.Rows) > 0 {
		width = len(t.Rows[0])
	}
	rows := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([][]map[string]any, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = encodeRichText(row[j])
			} else {
				cells[j] = []map[string]any{}
			}
		}
		rows = append(rows, map[string]any{
			"object":    "block",
			"type":      "table_row",
			"table_row": map[string]any{"cells": cells},
		})
	}
	return map[string]any{
		"object": "block",
		"type":   "table",
		"table": map[string]any{
			"table_width":       width,
			"has_column_header": t.HasHeader,
			"has_row_header":    false,
			"children":          rows,
		},
	}
}

// Decode converts a fetched block tree into blocks.
func Decode(blocks []notion.Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, decodeBlock(b))
	}
	return out
}

func decodeBlock(b notion.Block) Block {
	text := decodeRichText(b.Data["rich_text"])
	children := Decode(b.Children)

	switch b.Type {
	case "heading_1", "heading_2", "heading_3":
		return Heading{Level: int(b.Type[len(b.Type)-1] - '0'), Text: text}
	case "paragraph":
		return Paragraph{Text: text, Children: children}
	case "bulleted_list_item":
		return BulletedItem{Text: text, Children: children}
	case "numbered_list_item":
		return NumberedItem{Text: text, Children: children}
	case "to_do":
		checked, _ := b.Data["checked"].(bool)
		return ToDo{Text: text, Checked: checked, Children: children}
	case "quote":
		return Quote{Text: text, Children: children}
	case "callout":
		return Callout{Icon: emoji(b.Data["icon"]), Text: text, Children: children}
	case "toggle":
		return Toggle{Text: text, Children: children}
	case "code":
		lang, _ := b.Data["language"].(string)
		return Code{Language: lang, Text: text.Plain()}
	case "divider":
		return Divider{}
	case "table":
		hasHeader, _ := b.Data["has_column_header"].(bool)
		t := Table{HasHeader: hasHeader}
		for _, row := range b.Children {
			if row.Type != "table_row" {
				continue
			}
			cells, _ := row.Data["cells"].([]any)
			rt := make([]RichText, len(cells))
			for j, c := range cells {
				rt[j] = decodeRichText(c)
			}
			t.Rows = append(t.Rows, rt)
		}
		return t
	case "child_page":
		title, _ := b.Data["title"].(string)
		return ChildPage{ID: b.ID, Title: title}
	case "link_to_page":
		typ, _ := b.Data["type"].(string)
		id, _ := b.Data[typ].(string)
		return LinkToPage{ID: id}
	case "image", "video", "audio", "file", "pdf":
		typ, _ := b.Data["type"].(string)
		src, _ := b.Data[typ].(map[string]any)
		url, _ := src["url"].(string)
		return Media{Kind: b.Type, URL: url, Caption: decodeRichText(b.Data["caption"])}
	case "bookmark", "embed", "link_preview":
		url, _ := b.Data["url"].(string)
		return Media{Kind: b.Type, URL: url, Caption: decodeRichText(b.Data["caption"])}
	case "equation":
		expr, _ := b.Data["expression"].(string)
		return Equation{Expression: expr}
	case "column_list", "column", "synced_block":
		return Container{Kind: b.Type, Children: children}
	case "table_of_contents", "breadcrumb":
		return Omitted{Kind: b.Type}
	case "child_database", "unsupported":
		return Unsupported{Kind: b.Type}
	}
	if len(text) > 0 {
		return Paragraph{Text: text, Children: children}
	}
	return Unsupported{Kind: b.Type}
}

func emoji(raw any) string {
	m, ok := raw.(map[string]any)
	if !ok {
		return ""
	}
	e, _ := m["emoji"].(string)
	return e
}
