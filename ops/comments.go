package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/vthunder/notion-docs-mcp/markdown"
	"github.com/vthunder/notion-docs-mcp/notion"
)

// CommentsRequest reads a page's comments or adds one. DiscussionID makes
// the new comment a reply in that thread.
type CommentsRequest struct {
	Page         string `json:"page"`
	Action       string `json:"action"`
	Text         string `json:"text"`
	DiscussionID string `json:"discussion_id"`
}

// Comments reads or adds page comments.
func (s *Service) Comments(ctx context.Context, req CommentsRequest) (string, error) {
	if req.Page == "" {
		return "", invalid("missing_page", "page is required", "Pass a page ID, URL or exact title.")
	}
	switch strings.ToLower(req.Action) {
	case "", "read":
		return s.readComments(ctx, req.Page)
	case "add":
		return s.addComment(ctx, req)
	}
	return "", invalid("invalid_action", fmt.Sprintf("unknown action %q", req.Action), "Use read or add.")
}

func (s *Service) readComments(ctx context.Context, input string) (string, error) {
	page, err := s.resolvePage(ctx, input)
	if err != nil {
		return "", err
	}

	var comments []notion.Comment
	cursor := ""
	for {
		list, err := s.api.ListComments(ctx, page.ID, cursor)
		if err != nil {
			return "", fmt.Errorf("comments of %q: %w", input, err)
		}
		comments = append(comments, list.Results...)
		if !list.HasMore || list.NextCursor == "" {
			break
		}
		cursor = list.NextCursor
	}

	title := titleOrUntitled(page.Title())
	if len(comments) == 0 {
		return fmt.Sprintf("No comments on %q.", title), nil
	}

	names := map[string]string{}
	author := func(u notion.User) string {
		if u.Name != "" {
			return u.Name
		}
		if name, ok := names[u.ID]; ok {
			return name
		}
		name := u.ID
		if user, err := s.api.GetUser(ctx, u.ID); err == nil && user.Name != "" {
			name = user.Name
		}
		names[u.ID] = name
		return name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Comments on %s\n", title)
	thread := ""
	for _, c := range comments {
		if c.DiscussionID != thread {
			thread = c.DiscussionID
			fmt.Fprintf(&b, "\nDiscussion %s:\n", thread)
		}
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", author(c.CreatedBy), shortDate(c.CreatedTime), notion.PlainText(c.RichText))
	}
	return b.String(), nil
}

func (s *Service) addComment(ctx context.Context, req CommentsRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", invalid("missing_text", "text is required to add a comment", "")
	}

	cr := notion.CreateCommentRequest{RichText: markdown.EncodeInline(req.Text)}
	if req.DiscussionID != "" {
		cr.DiscussionID = req.DiscussionID
	} else {
		page, err := s.resolvePage(ctx, req.Page)
		if err != nil {
			return "", err
		}
		parent := notion.PageParent(page.ID)
		cr.Parent = &parent
	}

	c, err := s.api.CreateComment(ctx, cr)
	if err != nil {
		return "", fmt.Errorf("add comment: %w", err)
	}
	return fmt.Sprintf("Comment added (discussion %s).", c.DiscussionID), nil
}
