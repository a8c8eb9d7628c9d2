package ops

import (
	"context"
	"fmt"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

// ArchiveRequest moves a page or database to the trash, or restores it.
type ArchiveRequest struct {
	Target  string `json:"target"`
	Restore bool   `json:"restore"`
}

// Archive trashes or restores a page or database.
func (s *Service) Archive(ctx context.Context, req ArchiveRequest) (string, error) {
	if req.Target == "" {
		return "", invalid("missing_target", "target is required", "Pass a page or database ID, URL or exact title.")
	}
	verb := "Archived"
	if req.Restore {
		verb = "Restored"
	}

	t, err := s.resolveTarget(ctx, req.Target)
	if err != nil {
		return "", err
	}
	inTrash := !req.Restore

	if t.isDatabase() {
		db, err := s.api.SetDatabaseTrash(ctx, t.ref.ID, inTrash)
		if err != nil {
			return "", fmt.Errorf("database %q: %w", req.Target, err)
		}
		return fmt.Sprintf("%s database %q (%s)", verb, titleOrUntitled(db.PlainTitle()), db.ID), nil
	}

	page, err := s.api.UpdatePage(ctx, t.page.ID, notion.UpdatePageRequest{InTrash: &inTrash})
	if err != nil {
		return "", fmt.Errorf("page %q: %w", req.Target, err)
	}
	return fmt.Sprintf("%s page %q (%s)", verb, titleOrUntitled(page.Title()), page.ID), nil
}

// MoveRequest moves a page under another page or into a database.
type MoveRequest struct {
	Page      string `json:"page"`
	NewParent string `json:"new_parent"`
}

// Move reparents a page.
func (s *Service) Move(ctx context.Context, req MoveRequest) (string, error) {
	if req.Page == "" || req.NewParent == "" {
		return "", invalid("missing_argument", "page and new_parent are required", "Pass IDs, URLs or exact titles for both.")
	}

	page, err := s.resolvePage(ctx, req.Page)
	if err != nil {
		return "", err
	}
	dest, err := s.resolveTarget(ctx, req.NewParent)
	if err != nil {
		return "", err
	}

	var parent notion.Parent
	var where string
	switch dest.ref.Kind {
	case resolve.KindDatabase:
		db, ds, err := s.api.PrimaryDataSource(ctx, dest.ref.ID)
		if err != nil {
			return "", fmt.Errorf("database %q: %w", req.NewParent, err)
		}
		parent = notion.DataSourceParent(ds.ID)
		where = fmt.Sprintf("database %q", titleOrUntitled(db.PlainTitle()))
	default:
		if dest.page.ID == page.ID {
			return "", invalid("invalid_parent", "a page cannot be moved under itself", "")
		}
		parent = notion.PageParent(dest.page.ID)
		where = fmt.Sprintf("page %q", titleOrUntitled(dest.page.Title()))
	}

	moved, err := s.api.MovePage(ctx, page.ID, parent)
	if err != nil {
		return "", fmt.Errorf("move %q: %w", req.Page, err)
	}
	return fmt.Sprintf("Moved %q under %s", titleOrUntitled(moved.Title()), where), nil
}
