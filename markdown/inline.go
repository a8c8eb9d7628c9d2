package markdown

import (
	"strings"
)

const mentionScheme = "notion://"

// Span is a run of text with uniform formatting. PageID marks a page mention.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Strike bool
	Code   bool
	Link   string
	PageID string
}

// RichText is a sequence of spans.
type RichText []Span

// Plain returns the text without formatting.
func (rt RichText) Plain() string {
	var b strings.Builder
	for _, s := range rt {
		b.WriteString(s.Text)
	}
	return b.String()
}

// String renders the rich text as inline markdown.
func (rt RichText) String() string {
	var b strings.Builder
	for _, s := range rt {
		b.WriteString(s.markdown())
	}
	return b.String()
}

func (s Span) markdown() string {
	if s.PageID != "" {
		title := s.Text
		if title == "" {
			title = "Page"
		}
		return "[@" + title + "](" + mentionScheme + s.PageID + ")"
	}
	content := s.Text
	if content == "" {
		return ""
	}
	if s.Code {
		content = "`" + content + "`"
	}
	if s.Bold {
		content = "**" + content + "**"
	}
	if s.Italic {
		content = "*" + content + "*"
	}
	if s.Strike {
		content = "~~" + content + "~~"
	}
	if s.Link != "" {
		content = "[" + content + "](" + s.Link + ")"
	}
	return content
}

// ParseInline splits inline markdown into spans. Markers may nest, as
// Render writes them for spans with several annotations. Unclosed markers
// are kept as literal text.
func ParseInline(text string) RichText {
	return parseInline(text, Span{})
}

// parseInline parses text whose spans all carry base's formatting.
func parseInline(text string, base Span) RichText {
	var out RichText
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			s := base
			s.Text = plain.String()
			out = append(out, s)
			plain.Reset()
		}
	}
	nested := func(inner string, mark func(*Span)) {
		flush()
		s := base
		mark(&s)
		out = append(out, parseInline(inner, s)...)
	}

	i := 0
	for i < len(text) {
		rest := text[i:]
		// ***bold italic***
		if strings.HasPrefix(rest, "***") {
			if end := strings.Index(rest[3:], "***"); end > 0 {
				nested(rest[3:3+end], func(s *Span) { s.Bold, s.Italic = true, true })
				i += end + 6
				continue
			}
		}
		// **bold**
		if strings.HasPrefix(rest, "**") {
			if end := strings.Index(rest[2:], "**"); end > 0 {
				nested(rest[2:2+end], func(s *Span) { s.Bold = true })
				i += end + 4
				continue
			}
		}
		// ~~strike~~
		if strings.HasPrefix(rest, "~~") {
			if end := strings.Index(rest[2:], "~~"); end > 0 {
				nested(rest[2:2+end], func(s *Span) { s.Strike = true })
				i += end + 4
				continue
			}
		}
		// *italic*
		if rest[0] == '*' {
			if end := strings.IndexByte(rest[1:], '*'); end > 0 {
				nested(rest[1:1+end], func(s *Span) { s.Italic = true })
				i += end + 2
				continue
			}
		}
		// `code` is literal inside.
		if rest[0] == '`' {
			if end := strings.IndexByte(rest[1:], '`'); end > 0 {
				flush()
				s := base
				s.Text, s.Code = rest[1:1+end], true
				out = append(out, s)
				i += end + 2
				continue
			}
		}
		// [text](url) or [@Title](notion://id)
		if rest[0] == '[' {
			if label, url, n, ok := splitLink(rest); ok {
				flush()
				if strings.HasPrefix(url, mentionScheme) && strings.HasPrefix(label, "@") {
					out = append(out, Span{Text: label[1:], PageID: strings.TrimPrefix(url, mentionScheme)})
				} else {
					s := base
					s.Link = url
					out = append(out, parseInline(label, s)...)
				}
				i += n
				continue
			}
		}
		plain.WriteByte(rest[0])
		i++
	}
	flush()
	return out
}

// splitLink reads "[label](url)" at the start of text and returns its
// length.
func splitLink(text string) (label, url string, n int, ok bool) {
	closeBracket := strings.IndexByte(text, ']')
	if closeBracket < 1 || closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(text[closeBracket+2:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	return text[1:closeBracket], text[closeBracket+2 : closeBracket+2+closeParen], closeBracket + 3 + closeParen, true
}

// encodeRichText builds the API rich text array. Text longer than the API's
// per-object limit is split across objects with the same formatting.
func encodeRichText(rt RichText) []map[string]any {
	const maxLen = 2000
	out := []map[string]any{}
	for _, s := range rt {
		if s.PageID != "" {
			out = append(out, map[string]any{
				"type":    "mention",
				"mention": map[string]any{"type": "page", "page": map[string]any{"id": s.PageID}},
			})
			continue
		}
		runes := []rune(s.Text)
		for len(runes) > 0 {
			n := min(len(runes), maxLen)
			text := map[string]any{"content": string(runes[:n])}
			if s.Link != "" {
				text["link"] = map[string]any{"url": s.Link}
			}
			item := map[string]any{"type": "text", "text": text}
			if ann := annotations(s); ann != nil {
				item["annotations"] = ann
			}
			out = append(out, item)
			runes = runes[n:]
		}
	}
	return out
}

func annotations(s Span) map[string]any {
	if !s.Bold && !s.Italic && !s.Strike && !s.Code {
		return nil
	}
	ann := map[string]any{}
	if s.Bold {
		ann["bold"] = true
	}
	if s.Italic {
		ann["italic"] = true
	}
	if s.Strike {
		ann["strikethrough"] = true
	}
	if s.Code {
		ann["code"] = true
	}
	return ann
}

// decodeRichText reads an API rich text array.
func decodeRichText(raw any) RichText {
	items, _ := raw.([]any)
	var out RichText
	for _, item := range items {
		rt, ok := item.(map[string]any)
		if !ok {
			continue
		}
		plain, _ := rt["plain_text"].(string)
		var s Span

		switch rt["type"] {
		case "text":
			if text, ok := rt["text"].(map[string]any); ok {
				s.Text, _ = text["content"].(string)
				if link, ok := text["link"].(map[string]any); ok {
					s.Link, _ = link["url"].(string)
				}
			}
			if s.Text == "" {
				s.Text = plain
			}
		case "mention":
			s.Text = plain
			if m, ok := rt["mention"].(map[string]any); ok && m["type"] == "page" {
				if page, ok := m["page"].(map[string]any); ok {
					s.PageID, _ = page["id"].(string)
				}
			}
		default:
			s.Text = plain
		}

		if ann, ok := rt["annotations"].(map[string]any); ok {
			s.Bold, _ = ann["bold"].(bool)
			s.Italic, _ = ann["italic"].(bool)
			s.Strike, _ = ann["strikethrough"].(bool)
			s.Code, _ = ann["code"].(bool)
		}
		out = append(out, s)
	}
	return out
}

// EncodeInline parses inline markdown into an API rich text array.
func EncodeInline(text string) []map[string]any {
	return encodeRichText(ParseInline(text))
}
