package notion

import (
	"context"
	"net/http"
)

// GetPage fetches a page with its property values.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePage creates a page. Notion accepts at most 100 children on create;
// callers append the remainder with AppendChildren.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", nil, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage applies a partial update to a page's properties, icon, cover or trash state.
func (c *Client) UpdatePage(ctx context.Context, pageID string, req UpdatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, nil, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MovePage moves a page under a new parent page or data source.
func (c *Client) MovePage(ctx context.Context, pageID string, parent Parent) (*Page, error) {
	var page Page
	body := map[string]any{"parent": parent}
	if err := c.do(ctx, http.MethodPost, "/pages/"+pageID+"/move", nil, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
