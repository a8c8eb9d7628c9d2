package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// SearchRequest searches titles. Kind is "page", "database" or empty for both.
type SearchRequest struct {
	Query string `json:"query"`
	Kind  string `json:"kind"`
	Limit int    `json:"limit"`
}

// Search lists pages and databases matching a query.
func (s *Service) Search(ctx context.Context, req SearchRequest) (string, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	sr := notion.SearchRequest{Query: strings.TrimSpace(req.Query), PageSize: limit}
	switch strings.ToLower(req.Kind) {
	case "", "all":
	case "page":
		sr.Filter = &notion.SearchFilter{Property: "object", Value: "page"}
	case "database":
		sr.Filter = &notion.SearchFilter{Property: "object", Value: "data_source"}
	default:
		return "", invalid("invalid_kind", fmt.Sprintf("unknown kind %q", req.Kind), "Use page, database, or leave it empty.")
	}

	list, err := s.api.Search(ctx, sr)
	if err != nil {
		return "", fmt.Errorf("search %q: %w", req.Query, err)
	}
	results := list.Results
	if len(results) > limit {
		results = results[:limit]
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results for %q.", req.Query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d result(s) for %q:\n\n", len(results), req.Query)
	for i := range results {
		r := &results[i]
		icon := r.Icon.String()
		if icon == "" {
			icon = "📄"
			if resultKind(r) == resolve.KindDatabase {
				icon = "🗃️"
			}
		}
		fmt.Fprintf(&b, "%d. %s %s (%s)\n   id: %s", i+1, icon, titleOrUntitled(r.Title()), resultKind(r), resultID(r))
		if r.URL != "" {
			fmt.Fprintf(&b, " | %s", r.URL)
		}
		if r.LastEditedTime != "" {
			fmt.Fprintf(&b, " | edited %s", shortDate(r.LastEditedTime))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// shortDate trims an API timestamp to its date.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
