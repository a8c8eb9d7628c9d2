package notion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// AppendBatchSize is the maximum number of blocks per append request.
	AppendBatchSize = 100
	// deleteConcurrency bounds parallel block deletions to stay under rate limits.
	deleteConcurrency = 3
)

// ListChildren fetches one page of a block's immediate children.
func (c *Client) ListChildren(ctx context.Context, blockID, cursor string) (*List[Block], error) {
	var list List[Block]
	path := fmt.Sprintf("/blocks/%s/children", blockID)
	if err := c.do(ctx, http.MethodGet, path, pageQuery(cursor, 100), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// allChildren follows the cursor until every immediate child is fetched.
func (c *Client) allChildren(ctx context.Context, blockID string) ([]Block, error) {
	var all []Block
	cursor := ""
	for {
		list, err := c.ListChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, list.Results...)
		if !list.HasMore || list.NextCursor == "" {
			return all, nil
		}
		cursor = list.NextCursor
	}
}

// BlockTree fetches a page's content blocks with nested children attached.
// Child pages and child databases are not descended into: they are separate
// resources, not part of this page's body.
func (c *Client) BlockTree(ctx context.Context, blockID string) ([]Block, error) {
	blocks, err := c.allChildren(ctx, blockID)
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		b := &blocks[i]
		if !b.HasChildren || b.Type == "child_page" || b.Type == "child_database" {
			continue
		}
		children, err := c.BlockTree(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch children of %s: %w", b.ID, err)
		}
		b.Children = children
	}
	return blocks, nil
}

// AppendChildren appends blocks in sequential batches of AppendBatchSize.
func (c *Client) AppendChildren(ctx context.Context, blockID string, blocks []map[string]any) error {
	total := (len(blocks) + AppendBatchSize - 1) / AppendBatchSize
	path := fmt.Sprintf("/blocks/%s/children", blockID)

	for i := 0; i < len(blocks); i += AppendBatchSize {
		end := min(i+AppendBatchSize, len(blocks))
		batchNum := i/AppendBatchSize + 1

		c.logger.Debug("append batch",
			slog.String("block_id", blockID),
			slog.Int("batch", batchNum),
			slog.Int("batches", total),
			slog.Int("blocks", end-i))

		body := map[string]any{"children": blocks[i:end]}
		if err := c.do(ctx, http.MethodPatch, path, nil, body, nil); err != nil {
			return fmt.Errorf("failed to append batch %d/%d: %w", batchNum, total, err)
		}

		if end < len(blocks) && c.appendPause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.appendPause):
			}
		}
	}
	return nil
}

// DeleteBlock archives a single block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	return c.do(ctx, http.MethodDelete, "/blocks/"+blockID, nil, nil, nil)
}

// DeleteChildren removes every content block of a page, three at a time.
// child_page and child_database blocks are kept so sub-pages survive a body
// replacement, and unsupported blocks because they cannot be recreated. It
// returns the number of blocks deleted.
func (c *Client) DeleteChildren(ctx context.Context, blockID string) (int, error) {
	blocks, err := c.allChildren(ctx, blockID)
	if err != nil {
		return 0, err
	}

	var ids []string
	for _, b := range blocks {
		switch b.Type {
		case "child_page", "child_database", "unsupported":
			continue
		}
		ids = append(ids, b.ID)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := c.DeleteBlock(gCtx, id); err != nil {
				return fmt.Errorf("failed to delete block %s: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	c.logger.Debug("deleted children", slog.String("block_id", blockID), slog.Int("count", len(ids)))
	return len(ids), nil
}
