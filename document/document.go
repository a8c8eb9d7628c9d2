package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Delimiter separates documents in a batch. It must stand alone on its line.
const Delimiter = "<!-- next-document -->"

// ErrUnterminatedHeader is returned when a document opens a header fence
// but never closes it.
var ErrUnterminatedHeader = errors.New("header is missing its closing ---")

// Document is a header and a Markdown body.
type Document struct {
	Header Header
	Body   string
}

// Parse splits raw text into header and body. Text without a leading fence
// is all body.
func Parse(raw string) (*Document, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	trimmed := strings.TrimLeft(strings.TrimPrefix(raw, "\uFEFF"), "\n")

	if !strings.HasPrefix(trimmed, fence+"\n") && trimmed != fence {
		return &Document{Body: raw}, nil
	}

	rest := trimmed[len(fence):]
	idx := closingFence(rest)
	if idx < 0 {
		return nil, ErrUnterminatedHeader
	}

	doc := &Document{}
	block := rest[:idx]
	if err := yaml.Unmarshal([]byte(block), &doc.Header); err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	after := rest[idx+1+len(fence):]
	if nl := strings.IndexByte(after, '\n'); nl >= 0 {
		after = after[nl+1:]
	} else {
		after = ""
	}
	doc.Body = strings.TrimLeft(after, "\n")
	return doc, nil
}

// closingFence returns the index of the newline before the closing fence
// line in s, or -1.
func closingFence(s string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], "\n"+fence)
		if idx < 0 {
			return -1
		}
		idx += offset
		end := idx + 1 + len(fence)
		if end == len(s) || s[end] == '\n' || strings.TrimSpace(s[end:lineEnd(s, end)]) == "" {
			return idx
		}
		offset = end
	}
}

func lineEnd(s string, from int) int {
	if nl := strings.IndexByte(s[from:], '\n'); nl >= 0 {
		return from + nl
	}
	return len(s)
}

// String composes the document: the header, then the trimmed body ending in
// a newline. Empty fields are left out of the header.
func (d *Document) String() string {
	s, err := d.Compose()
	if err != nil {
		return d.Body
	}
	return s
}

// Compose is String with the header encoding error exposed.
func (d *Document) Compose() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&d.Header); err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}

	var out strings.Builder
	if header := buf.String(); header != "{}\n" {
		out.WriteString(fence + "\n")
		out.WriteString(header)
		out.WriteString(fence + "\n")
	}
	if body := strings.TrimSpace(d.Body); body != "" {
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(body + "\n")
	}
	return out.String(), nil
}

// SplitBatch splits raw text on delimiter lines. Blank segments are dropped.
func SplitBatch(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var parts []string
	var cur strings.Builder
	flush := func() {
		if strings.TrimSpace(cur.String()) != "" {
			parts = append(parts, cur.String())
		}
		cur.Reset()
	}
	for _, line := range strings.SplitAfter(raw, "\n") {
		if strings.TrimSpace(line) == Delimiter {
			flush()
			continue
		}
		cur.WriteString(line)
	}
	flush()
	return parts
}

// JoinBatch joins composed documents with delimiter lines.
func JoinBatch(docs []string) string {
	return strings.Join(docs, "\n"+Delimiter+"\n\n")
}
