package notion

import (
	"context"
	"net/http"
)

// ListComments fetches one page of unresolved comments on a page or block.
func (c *Client) ListComments(ctx context.Context, blockID, cursor string) (*List[Comment], error) {
	q := pageQuery(cursor, 100)
	q.Set("block_id", blockID)
	var list List[Comment]
	if err := c.do(ctx, http.MethodGet, "/comments", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateComment adds a comment to a page or replies in a discussion.
func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
