package ops

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vthunder/notion-docs-mcp/document"
	"github.com/vthunder/notion-docs-mcp/markdown"
	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/property"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

// Write modes.
const (
	ModeAuto   = "auto"
	ModeCreate = "create"
	ModeUpdate = "update"
)

// WriteRequest creates or updates pages from one document or a batch.
type WriteRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
}

// WriteResult is the outcome of one document.
type WriteResult struct {
	Created bool
	PageID  string
	Title   string
	URL     string
}

func (r WriteResult) String() string {
	verb := "Updated"
	if r.Created {
		verb = "Created"
	}
	s := fmt.Sprintf("%s %q (%s)", verb, titleOrUntitled(r.Title), r.PageID)
	if r.URL != "" {
		s += " " + r.URL
	}
	return s
}

// Write applies each document in req.Content. A single document's failure
// is returned as is; in a batch every document is attempted and a
// *BatchError carries the report when any failed.
func (s *Service) Write(ctx context.Context, req WriteRequest) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = ModeAuto
	}
	if mode != ModeAuto && mode != ModeCreate && mode != ModeUpdate {
		return "", invalid("invalid_mode", fmt.Sprintf("unknown mode %q", req.Mode), "Use auto, create or update.")
	}

	parts := document.SplitBatch(req.Content)
	switch len(parts) {
	case 0:
		return "", invalid("empty_content", "content is empty", "Pass a document with a --- header and a Markdown body.")
	case 1:
		res, err := s.writeOne(ctx, parts[0], mode)
		if err != nil {
			return "", err
		}
		return res.String(), nil
	}

	var report strings.Builder
	failed := 0
	for i, raw := range parts {
		res, err := s.writeOne(ctx, raw, mode)
		if err != nil {
			failed++
			s.logger.Debug("batch document failed", slog.Int("index", i+1), slog.Any("error", err))
			fmt.Fprintf(&report, "%d. FAILED: %s\n", i+1, strings.ReplaceAll(Describe(err), "\n", " "))
			continue
		}
		fmt.Fprintf(&report, "%d. %s\n", i+1, res)
	}
	fmt.Fprintf(&report, "\n%d/%d succeeded", len(parts)-failed, len(parts))

	if failed > 0 {
		return "", &BatchError{Report: report.String(), Failed: failed, Total: len(parts)}
	}
	return report.String(), nil
}

func (s *Service) writeOne(ctx context.Context, raw, mode string) (WriteResult, error) {
	doc, err := document.Parse(raw)
	if err != nil {
		return WriteResult{}, invalid("invalid_document", err.Error(), "The header must be valid YAML between --- lines.")
	}

	if mode == ModeAuto {
		mode = ModeCreate
		if doc.Header.ID != "" {
			mode = ModeUpdate
		}
	}
	if mode == ModeUpdate {
		return s.update(ctx, doc)
	}
	return s.create(ctx, doc)
}

func (s *Service) update(ctx context.Context, doc *document.Document) (WriteResult, error) {
	h := doc.Header
	if h.ID == "" {
		return WriteResult{}, invalid("missing_id", "update needs an id in the header", "Read the page first, or use mode create with a parent.")
	}
	id, ok := resolve.ParseID(h.ID)
	if !ok {
		return WriteResult{}, invalid("invalid_id", fmt.Sprintf("%q is not a page ID or URL", h.ID), "Use the id from a notion_read result.")
	}

	page, err := s.api.GetPage(ctx, id)
	if err != nil {
		return WriteResult{}, fmt.Errorf("page %q: %w", h.ID, err)
	}
	schema, err := s.schemaFor(ctx, page.Parent)
	if err != nil {
		return WriteResult{}, err
	}

	props, dropped := property.Translate(schema, h.Title, h.Properties)
	if len(dropped) > 0 {
		s.logger.Debug("header properties not written", slog.String("page_id", id), slog.Any("keys", dropped))
	}
	// An unchanged icon or cover is left alone: echoing back a Notion-hosted
	// file would replace it with an external link to an expiring URL.
	var upd notion.UpdatePageRequest
	if strings.TrimSpace(h.Icon) != page.Icon.String() {
		upd.Icon = h.IconObject()
	}
	if strings.TrimSpace(h.Cover) != page.Cover.URL() {
		upd.Cover = h.CoverObject()
	}
	if len(props) > 0 {
		upd.Properties = props
	}
	if upd.Properties != nil || upd.Icon != nil || upd.Cover != nil {
		if page, err = s.api.UpdatePage(ctx, id, upd); err != nil {
			return WriteResult{}, fmt.Errorf("update %q: %w", h.ID, err)
		}
	}

	if strings.TrimSpace(doc.Body) != "" {
		deleted, err := s.api.DeleteChildren(ctx, id)
		if err != nil {
			return WriteResult{}, fmt.Errorf("clear content of %q: %w", h.ID, err)
		}
		blocks := markdown.Encode(markdown.Parse(doc.Body))
		if err := s.api.AppendChildren(ctx, id, blocks); err != nil {
			return WriteResult{}, fmt.Errorf("write content of %q: %w", h.ID, err)
		}
		s.logger.Debug("content replaced", slog.String("page_id", id), slog.Int("deleted", deleted), slog.Int("appended", len(blocks)))
	}

	return WriteResult{PageID: page.ID, Title: page.Title(), URL: page.URL}, nil
}

func (s *Service) create(ctx context.Context, doc *document.Document) (WriteResult, error) {
	h := doc.Header
	switch {
	case h.Parent != "" && h.Database != "":
		return WriteResult{}, invalid("conflicting_parent", "set either parent or database, not both", "Keep parent for a sub-page or database for a database row.")
	case h.Parent == "" && h.Database == "":
		return WriteResult{}, invalid("missing_parent", "a new page needs a parent or database", "Add parent: <page> or database: <database> to the header.")
	}

	var (
		parent notion.Parent
		schema *property.Schema
	)
	if h.Parent != "" {
		ref, err := s.resolver.Resolve(ctx, h.Parent, resolve.KindPage)
		if err != nil {
			return WriteResult{}, fmt.Errorf("parent %q: %w", h.Parent, err)
		}
		parent = notion.PageParent(ref.ID)
	} else {
		_, ds, err := s.resolveDatabase(ctx, h.Database)
		if err != nil {
			return WriteResult{}, err
		}
		parent = notion.DataSourceParent(ds.ID)
		schema = property.SchemaOf(ds.Properties)
	}

	props, dropped := property.Translate(schema, h.Title, h.Properties)
	if len(dropped) > 0 {
		s.logger.Debug("header properties not written", slog.Any("keys", dropped))
	}

	blocks := markdown.Encode(markdown.Parse(doc.Body))
	first, rest := blocks, []map[string]any(nil)
	if len(blocks) > notion.AppendBatchSize {
		first, rest = blocks[:notion.AppendBatchSize], blocks[notion.AppendBatchSize:]
	}

	page, err := s.api.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     parent,
		Properties: props,
		Children:   first,
		Icon:       h.IconObject(),
		Cover:      h.CoverObject(),
	})
	if err != nil {
		return WriteResult{}, fmt.Errorf("create %q: %w", h.Title, err)
	}
	if len(rest) > 0 {
		if err := s.api.AppendChildren(ctx, page.ID, rest); err != nil {
			return WriteResult{}, fmt.Errorf("write content of new page %s: %w", page.ID, err)
		}
	}

	title := page.Title()
	if title == "" {
		title = h.Title
	}
	return WriteResult{Created: true, PageID: page.ID, Title: title, URL: page.URL}, nil
}
