package ops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vthunder/notion-docs-mcp/document"
	"github.com/vthunder/notion-docs-mcp/notion"
)

// MaxReadDepth bounds how many page levels Read descends.
const MaxReadDepth = 3

// ReadRequest reads a page as a document. Depth counts page levels from the
// target: 1 is the page alone, 2 adds its child pages, and so on.
type ReadRequest struct {
	Target string `json:"target"`
	Depth  int    `json:"depth"`
}

// Read returns the target page as a document, followed by its descendants up
// to Depth as a batch. A database target is rendered as a listing.
func (s *Service) Read(ctx context.Context, req ReadRequest) (string, error) {
	if req.Target == "" {
		return "", invalid("missing_target", "target is required", "Pass a page ID, URL or exact title.")
	}
	depth := min(max(req.Depth, 1), MaxReadDepth)

	t, err := s.resolveTarget(ctx, req.Target)
	if err != nil {
		return "", err
	}
	if t.isDatabase() {
		return s.listDatabase(ctx, t.ref.ID, ListRequest{Target: req.Target}, defaultListLimit)
	}

	type item struct {
		page  *notion.Page
		id    string
		level int
	}
	stack := []item{{page: t.page, id: t.page.ID, level: 1}}
	var docs []string

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		page := it.page
		if page == nil {
			page, err = s.api.GetPage(ctx, it.id)
			if inaccessible(err) {
				s.logger.Debug("skip inaccessible child page", slog.String("page_id", it.id))
				continue
			}
			if err != nil {
				return "", fmt.Errorf("page %s: %w", it.id, err)
			}
		}

		doc, tree, err := s.pageDocument(ctx, page)
		if err != nil {
			return "", err
		}
		text, err := doc.Compose()
		if err != nil {
			return "", err
		}
		docs = append(docs, text)

		if it.level >= depth {
			continue
		}
		children := childPageIDs(tree)
		// Pushed in reverse so children are read in page order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{id: children[i], level: it.level + 1})
		}
	}

	return document.JoinBatch(docs), nil
}

// childPageIDs collects child pages anywhere in a block tree.
func childPageIDs(blocks []notion.Block) []string {
	var ids []string
	for _, b := range blocks {
		if b.Type == "child_page" {
			ids = append(ids, b.ID)
			continue
		}
		ids = append(ids, childPageIDs(b.Children)...)
	}
	return ids
}
