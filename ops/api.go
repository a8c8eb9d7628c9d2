// Package ops implements the document operations on top of the remote API:
// read, write, search, list, property updates, schema management, comments,
// archive and move.
package ops

import (
	"context"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

// API is the subset of the remote client the operations use.
// *notion.Client implements it.
type API interface {
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
	CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, req notion.UpdatePageRequest) (*notion.Page, error)
	MovePage(ctx context.Context, pageID string, parent notion.Parent) (*notion.Page, error)

	ListChildren(ctx context.Context, blockID, cursor string) (*notion.List[notion.Block], error)
	BlockTree(ctx context.Context, blockID string) ([]notion.Block, error)
	AppendChildren(ctx context.Context, blockID string, blocks []map[string]any) error
	DeleteChildren(ctx context.Context, blockID string) (int, error)

	GetDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
	SetDatabaseTrash(ctx context.Context, databaseID string, inTrash bool) (*notion.Database, error)
	GetDataSource(ctx context.Context, dataSourceID string) (*notion.DataSource, error)
	PrimaryDataSource(ctx context.Context, databaseID string) (*notion.Database, *notion.DataSource, error)
	UpdateDataSource(ctx context.Context, dataSourceID string, properties map[string]any) (*notion.DataSource, error)
	QueryDataSource(ctx context.Context, dataSourceID string, req notion.QueryRequest) (*notion.List[notion.Page], error)

	Search(ctx context.Context, req notion.SearchRequest) (*notion.List[notion.SearchResult], error)

	ListComments(ctx context.Context, blockID, cursor string) (*notion.List[notion.Comment], error)
	CreateComment(ctx context.Context, req notion.CreateCommentRequest) (*notion.Comment, error)
	GetUser(ctx context.Context, userID string) (*notion.User, error)
}

var _ API = (*notion.Client)(nil)

// titleSearch adapts API search to name resolution. Data source hits are
// reported under their database's ID.
type titleSearch struct {
	api API
}

func (s titleSearch) SearchTitles(ctx context.Context, query string, kind resolve.Kind) ([]resolve.Match, error) {
	req := notion.SearchRequest{Query: query, PageSize: 100}
	switch kind {
	case resolve.KindPage:
		req.Filter = &notion.SearchFilter{Property: "object", Value: "page"}
	case resolve.KindDatabase, resolve.KindDataSource:
		req.Filter = &notion.SearchFilter{Property: "object", Value: "data_source"}
	}

	list, err := s.api.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	matches := make([]resolve.Match, 0, len(list.Results))
	for i := range list.Results {
		r := &list.Results[i]
		matches = append(matches, resolve.Match{ID: resultID(r), Title: r.Title(), Kind: resultKind(r)})
	}
	return matches, nil
}

func resultKind(r *notion.SearchResult) resolve.Kind {
	if r.Object == "page" {
		return resolve.KindPage
	}
	return resolve.KindDatabase
}

// resultID returns the ID a caller should use for r: a data source is
// addressed through its database.
func resultID(r *notion.SearchResult) string {
	if r.Object == "data_source" && r.Parent.DatabaseID != "" {
		return r.Parent.DatabaseID
	}
	return r.ID
}
