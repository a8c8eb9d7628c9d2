package ops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vthunder/notion-docs-mcp/document"
	"github.com/vthunder/notion-docs-mcp/markdown"
	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/property"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

// Service runs operations against one remote client.
type Service struct {
	api      API
	resolver *resolve.Resolver
	logger   *slog.Logger
}

// New creates a service.
func New(api API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      api,
		resolver: resolve.New(titleSearch{api: api}, api),
		logger:   logger,
	}
}

// target is a resolved page or database.
type target struct {
	ref  resolve.Ref
	page *notion.Page
}

func (t target) isDatabase() bool { return t.ref.Kind == resolve.KindDatabase }

// resolveTarget resolves input to a page or database. Pages are fetched.
func (s *Service) resolveTarget(ctx context.Context, input string) (target, error) {
	ref, page, err := s.resolver.ResolveAny(ctx, input)
	if err != nil {
		return target{}, fmt.Errorf("resolve %q: %w", input, err)
	}
	if ref.Kind == resolve.KindPage && page == nil {
		page, err = s.api.GetPage(ctx, ref.ID)
		if err != nil {
			return target{}, fmt.Errorf("page %q: %w", input, err)
		}
	}
	return target{ref: ref, page: page}, nil
}

// resolvePage resolves input to a page and fetches it.
func (s *Service) resolvePage(ctx context.Context, input string) (*notion.Page, error) {
	ref, err := s.resolver.Resolve(ctx, input, resolve.KindPage)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", input, err)
	}
	page, err := s.api.GetPage(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", input, err)
	}
	return page, nil
}

// resolveDatabase resolves input to a database and loads its primary data
// source, which holds the schema.
func (s *Service) resolveDatabase(ctx context.Context, input string) (*notion.Database, *notion.DataSource, error) {
	ref, err := s.resolver.Resolve(ctx, input, resolve.KindDatabase)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %q: %w", input, err)
	}
	db, ds, err := s.api.PrimaryDataSource(ctx, ref.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("database %q: %w", input, err)
	}
	return db, ds, nil
}

// schemaFor loads the schema that governs pages under parent. Pages under a
// page have none.
func (s *Service) schemaFor(ctx context.Context, parent notion.Parent) (*property.Schema, error) {
	switch {
	case parent.DataSourceID != "":
		ds, err := s.api.GetDataSource(ctx, parent.DataSourceID)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		return property.SchemaOf(ds.Properties), nil
	case parent.Type == notion.ParentDatabase:
		_, ds, err := s.api.PrimaryDataSource(ctx, parent.DatabaseID)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		return property.SchemaOf(ds.Properties), nil
	}
	return nil, nil
}

// pageDocument renders page and its content as a document.
func (s *Service) pageDocument(ctx context.Context, page *notion.Page) (*document.Document, []notion.Block, error) {
	tree, err := s.api.BlockTree(ctx, page.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch content of %s: %w", page.ID, err)
	}

	title, entries := property.ToHeader(page.Properties)
	h := document.Header{
		ID:             page.ID,
		URL:            page.URL,
		Title:          title,
		Icon:           page.Icon.String(),
		Cover:          page.Cover.URL(),
		Properties:     entries,
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
	}
	switch {
	case page.Parent.Type == notion.ParentPage:
		h.Parent = page.Parent.PageID
	case page.Parent.DatabaseID != "":
		h.Database = page.Parent.DatabaseID
	case page.Parent.DataSourceID != "":
		h.Database = page.Parent.DataSourceID
	}

	return &document.Document{Header: h, Body: markdown.Render(markdown.Decode(tree))}, tree, nil
}

func titleOrUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}
