package markdown

import (
	"fmt"
	"strings"
)

// toggleMarker prefixes a toggle's summary line.
const toggleMarker = "▶ "

// Render converts blocks into a document body. Blocks without a textual
// form render as nothing; blocks that cannot be represented render as an
// [Unsupported: <type>] placeholder.
func Render(blocks []Block) string {
	var b strings.Builder
	renderBlocks(&b, blocks, "")
	return b.String()
}

// listKind groups list items; a change of kind ends the list.
func listKind(blk Block) string {
	switch blk.(type) {
	case BulletedItem:
		return "bulleted"
	case NumberedItem:
		return "numbered"
	case ToDo:
		return "to_do"
	}
	return ""
}

func renderBlocks(w *strings.Builder, blocks []Block, prefix string) {
	listNum := 0
	for i, blk := range blocks {
		if _, ok := blk.(NumberedItem); !ok {
			listNum = 0
		}
		if i > 0 && listKind(blocks[i-1]) != "" && listKind(blocks[i-1]) != listKind(blk) {
			w.WriteString("\n")
		}

		switch v := blk.(type) {
		case Heading:
			fmt.Fprintf(w, "%s%s %s\n\n", prefix, strings.Repeat("#", v.Level), v.Text)
		case Paragraph:
			w.WriteString(prefix + v.Text.String() + "\n")
			renderChildren(w, v.Children, prefix)
			w.WriteString("\n")
		case BulletedItem:
			w.WriteString(prefix + "- " + v.Text.String() + "\n")
			renderChildren(w, v.Children, prefix)
		case NumberedItem:
			listNum++
			fmt.Fprintf(w, "%s%d. %s\n", prefix, listNum, v.Text)
			renderChildren(w, v.Children, prefix)
		case ToDo:
			check := " "
			if v.Checked {
				check = "x"
			}
			fmt.Fprintf(w, "%s- [%s] %s\n", prefix, check, v.Text)
			renderChildren(w, v.Children, prefix)
		case Quote:
			writeQuoted(w, prefix, v.Text.String())
			renderChildren(w, v.Children, prefix)
			w.WriteString("\n")
		case Callout:
			text := v.Text.String()
			if v.Icon != "" {
				text = v.Icon + " " + text
			}
			writeQuoted(w, prefix, text)
			renderChildren(w, v.Children, prefix)
			w.WriteString("\n")
		case Toggle:
			w.WriteString(prefix + toggleMarker + v.Text.String() + "\n")
			renderChildren(w, v.Children, prefix)
			w.WriteString("\n")
		case Code:
			lang := v.Language
			if lang == "plain text" {
				lang = ""
			}
			w.WriteString(prefix + "```" + lang + "\n")
			for _, line := range strings.Split(v.Text, "\n") {
				w.WriteString(prefix + line + "\n")
			}
			w.WriteString(prefix + "```\n\n")
		case Divider:
			w.WriteString(prefix + "---\n\n")
		case Table:
			renderTable(w, v, prefix)
			w.WriteString("\n")
		case ChildPage:
			title := v.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(w, "%s<!-- child_page: %s %s -->\n\n", prefix, v.ID, title)
		case LinkToPage:
			w.WriteString(prefix + Span{Text: "Linked page", PageID: v.ID}.markdown() + "\n\n")
		case Media:
			label := v.Caption.Plain()
			if v.Kind == "image" {
				fmt.Fprintf(w, "%s![%s](%s)\n\n", prefix, label, v.URL)
				continue
			}
			if label == "" {
				label = v.Kind
			}
			fmt.Fprintf(w, "%s[%s](%s)\n\n", prefix, label, v.URL)
		case Equation:
			fmt.Fprintf(w, "%s$$%s$$\n\n", prefix, v.Expression)
		case Container:
			renderBlocks(w, v.Children, prefix)
		case Omitted:
		case Unsupported:
			fmt.Fprintf(w, "%s[Unsupported: %s]\n\n", prefix, v.Kind)
		}
	}
}

func renderChildren(w *strings.Builder, children []Block, prefix string) {
	if len(children) == 0 {
		return
	}
	var nested strings.Builder
	renderBlocks(&nested, children, prefix+indent)
	w.WriteString(strings.TrimRight(nested.String(), "\n") + "\n")
}

func writeQuoted(w *strings.Builder, prefix, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			w.WriteString(prefix + ">\n")
			continue
		}
		w.WriteString(prefix + "> " + line + "\n")
	}
}

func renderTable(w *strings.Builder, t Table, prefix string) {
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.String()
		}
		w.WriteString(prefix + "| " + strings.Join(cells, " | ") + " |\n")
		if i == 0 && t.HasHeader {
			sep := make([]string, len(row))
			for j := range sep {
				sep[j] = "---"
			}
			w.WriteString(prefix + "| " + strings.Join(sep, " | ") + " |\n")
		}
	}
}
