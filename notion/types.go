package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Parent types.
const (
	ParentPage       = "page_id"
	ParentDatabase   = "database_id"
	ParentDataSource = "data_source_id"
	ParentBlock      = "block_id"
	ParentWorkspace  = "workspace"
)

// Parent is the parent reference of a page, database or comment.
type Parent struct {
	Type         string `json:"type"`
	PageID       string `json:"page_id,omitempty"`
	DatabaseID   string `json:"database_id,omitempty"`
	DataSourceID string `json:"data_source_id,omitempty"`
	BlockID      string `json:"block_id,omitempty"`
	Workspace    bool   `json:"workspace,omitempty"`
}

// PageParent returns a page parent reference.
func PageParent(id string) Parent {
	return Parent{Type: ParentPage, PageID: id}
}

// DataSourceParent returns a data source parent reference.
func DataSourceParent(id string) Parent {
	return Parent{Type: ParentDataSource, DataSourceID: id}
}

// ExternalFile is a file hosted outside Notion.
type ExternalFile struct {
	URL string `json:"url"`
}

// HostedFile is a file uploaded to Notion; its URL expires.
type HostedFile struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// Icon is a page or database icon.
type Icon struct {
	Type     string        `json:"type"`
	Emoji    string        `json:"emoji,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty"`
}

// EmojiIcon returns an emoji icon.
func EmojiIcon(emoji string) *Icon {
	return &Icon{Type: "emoji", Emoji: emoji}
}

// ExternalIcon returns an icon pointing at an image URL.
func ExternalIcon(url string) *Icon {
	return &Icon{Type: "external", External: &ExternalFile{URL: url}}
}

// String returns the emoji glyph or image URL of the icon.
func (i *Icon) String() string {
	if i == nil {
		return ""
	}
	switch {
	case i.Emoji != "":
		return i.Emoji
	case i.External != nil:
		return i.External.URL
	case i.File != nil:
		return i.File.URL
	}
	return ""
}

// FileObject is a cover image or file reference.
type FileObject struct {
	Type     string        `json:"type"`
	Name     string        `json:"name,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty"`
}

// ExternalCover returns a cover pointing at an image URL.
func ExternalCover(url string) *FileObject {
	return &FileObject{Type: "external", External: &ExternalFile{URL: url}}
}

// URL returns the file location.
func (f *FileObject) URL() string {
	if f == nil {
		return ""
	}
	if f.External != nil {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

// User is a workspace member or bot.
type User struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	Type   string `json:"type,omitempty"`
	Name   string `json:"name,omitempty"`
}

// RichTextItem is one rich text segment as returned by the API. Only the
// fields needed for plain-text extraction are decoded.
type RichTextItem struct {
	Type      string `json:"type"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// PlainText concatenates the plain text of items.
func PlainText(items []RichTextItem) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.PlainText)
	}
	return b.String()
}

// TextContent builds a rich text payload from plain text, split into
// segments no longer than the API's 2000 character limit.
func TextContent(s string) []map[string]any {
	const maxLen = 2000
	runes := []rune(s)
	if len(runes) == 0 {
		return []map[string]any{}
	}
	var out []map[string]any
	for len(runes) > 0 {
		n := min(len(runes), maxLen)
		out = append(out, map[string]any{
			"type": "text",
			"text": map[string]any{"content": string(runes[:n])},
		})
		runes = runes[n:]
	}
	return out
}

// Property is one named entry of a page's property values or of a data
// source's schema, kept in the order the API returned it.
type Property struct {
	Name  string
	Value map[string]any
}

// Type returns the property's type tag.
func (p Property) Type() string {
	t, _ := p.Value["type"].(string)
	return t
}

// Properties is an ordered property map.
type Properties []Property

// Get returns the property value named name.
func (p Properties) Get(name string) (map[string]any, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	*p = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var value map[string]any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("properties: %s: %w", name, err)
		}
		*p = append(*p, Property{Name: name, Value: value})
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the properties as a JSON object in order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func titleOf(props Properties) string {
	for _, prop := range props {
		if prop.Type() != "title" {
			continue
		}
		items, _ := prop.Value["title"].([]any)
		var b strings.Builder
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if pt, ok := m["plain_text"].(string); ok {
					b.WriteString(pt)
				}
			}
		}
		return b.String()
	}
	return ""
}

// Page is a Notion page.
type Page struct {
	Object         string      `json:"object"`
	ID             string      `json:"id"`
	URL            string      `json:"url"`
	CreatedTime    string      `json:"created_time"`
	LastEditedTime string      `json:"last_edited_time"`
	Archived       bool        `json:"archived"`
	InTrash        bool        `json:"in_trash"`
	Parent         Parent      `json:"parent"`
	Icon           *Icon       `json:"icon"`
	Cover          *FileObject `json:"cover"`
	Properties     Properties  `json:"properties"`
}

// Title returns the plain text of the page's title property.
func (p *Page) Title() string {
	return titleOf(p.Properties)
}

// DataSourceRef is a data source listed on a database.
type DataSourceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Database is a Notion database container.
type Database struct {
	Object         string          `json:"object"`
	ID             string          `json:"id"`
	URL            string          `json:"url"`
	Title          []RichTextItem  `json:"title"`
	CreatedTime    string          `json:"created_time"`
	LastEditedTime string          `json:"last_edited_time"`
	InTrash        bool            `json:"in_trash"`
	Parent         Parent          `json:"parent"`
	Icon           *Icon           `json:"icon"`
	Cover          *FileObject     `json:"cover"`
	DataSources    []DataSourceRef `json:"data_sources"`
}

// PlainTitle returns the database title as plain text.
func (d *Database) PlainTitle() string {
	return PlainText(d.Title)
}

// DataSource is the queryable table behind a database. Its properties are the
// schema: each value carries at least "type" and per-type configuration.
type DataSource struct {
	Object     string         `json:"object"`
	ID         string         `json:"id"`
	Title      []RichTextItem `json:"title"`
	Parent     Parent         `json:"parent"`
	Properties Properties     `json:"properties"`
}

// Block is one content block. Data holds the type-specific payload
// (block[type]); Children is filled by BlockTree.
type Block struct {
	ID          string
	Type        string
	HasChildren bool
	Data        map[string]any
	Children    []Block
}

// UnmarshalJSON extracts the common fields and the type payload.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID, _ = raw["id"].(string)
	b.Type, _ = raw["type"].(string)
	b.HasChildren, _ = raw["has_children"].(bool)
	b.Data, _ = raw[b.Type].(map[string]any)
	return nil
}

// SearchResult is a page or data source returned by search.
type SearchResult struct {
	Object         string         `json:"object"`
	ID             string         `json:"id"`
	URL            string         `json:"url"`
	LastEditedTime string         `json:"last_edited_time"`
	Parent         Parent         `json:"parent"`
	Icon           *Icon          `json:"icon"`
	Properties     Properties     `json:"properties"`
	TitleText      []RichTextItem `json:"title"`
}

// Title returns the result's title for either object kind.
func (r *SearchResult) Title() string {
	if r.Object == "page" {
		return titleOf(r.Properties)
	}
	return PlainText(r.TitleText)
}

// Comment is a page or block comment.
type Comment struct {
	ID           string         `json:"id"`
	DiscussionID string         `json:"discussion_id"`
	CreatedTime  string         `json:"created_time"`
	CreatedBy    User           `json:"created_by"`
	Parent       Parent         `json:"parent"`
	RichText     []RichTextItem `json:"rich_text"`
}

// List is one page of a cursor-paginated response.
type List[T any] struct {
	Results    []T    `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// CreatePageRequest is the body of POST /pages.
type CreatePageRequest struct {
	Parent     Parent           `json:"parent"`
	Properties map[string]any   `json:"properties"`
	Children   []map[string]any `json:"children,omitempty"`
	Icon       *Icon            `json:"icon,omitempty"`
	Cover      *FileObject      `json:"cover,omitempty"`
}

// UpdatePageRequest is the body of PATCH /pages/{id}. Nil fields are left unchanged.
type UpdatePageRequest struct {
	Properties map[string]any `json:"properties,omitempty"`
	Icon       *Icon          `json:"icon,omitempty"`
	Cover      *FileObject    `json:"cover,omitempty"`
	InTrash    *bool          `json:"in_trash,omitempty"`
}

// QueryRequest is the body of POST /data_sources/{id}/query.
type QueryRequest struct {
	Filter      map[string]any   `json:"filter,omitempty"`
	Sorts       []map[string]any `json:"sorts,omitempty"`
	StartCursor string           `json:"start_cursor,omitempty"`
	PageSize    int              `json:"page_size,omitempty"`
}

// SearchFilter restricts search to one object kind ("page" or "data_source").
type SearchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// CreateCommentRequest is the body of POST /comments. Exactly one of Parent
// and DiscussionID is set.
type CreateCommentRequest struct {
	Parent       *Parent          `json:"parent,omitempty"`
	DiscussionID string           `json:"discussion_id,omitempty"`
	RichText     []map[string]any `json:"rich_text"`
}
