package notion

import (
	"context"
	"net/http"
)

// Search runs a title search over pages and data sources shared with the integration.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*List[SearchResult], error) {
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 100
	}
	var list List[SearchResult]
	if err := c.do(ctx, http.MethodPost, "/search", nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
