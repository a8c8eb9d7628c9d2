package ops

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/property"
	"github.com/vthunder/notion-docs-mcp/query"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
	maxListColumns   = 8
)

// ListRequest lists a database's rows or a page's child pages. Filter and
// Sort only apply to databases.
type ListRequest struct {
	Target string `json:"target"`
	Filter string `json:"filter"`
	Sort   string `json:"sort"`
	Limit  int    `json:"limit"`
}

// List renders a database as a table or a page's children as a numbered list.
func (s *Service) List(ctx context.Context, req ListRequest) (string, error) {
	if req.Target == "" {
		return "", invalid("missing_target", "target is required", "Pass a page or database ID, URL or exact title.")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	t, err := s.resolveTarget(ctx, req.Target)
	if err != nil {
		return "", err
	}
	if t.isDatabase() {
		return s.listDatabase(ctx, t.ref.ID, req, limit)
	}
	return s.listPage(ctx, t.page, limit)
}

func (s *Service) listDatabase(ctx context.Context, id string, req ListRequest, limit int) (string, error) {
	db, ds, err := s.api.PrimaryDataSource(ctx, id)
	if err != nil {
		return "", fmt.Errorf("database %q: %w", req.Target, err)
	}
	schema := property.SchemaOf(ds.Properties)

	qr := notion.QueryRequest{
		Filter: query.Filter(req.Filter, schema),
		Sorts:  query.Sorts(req.Sort, schema),
	}
	var notes []string
	if strings.TrimSpace(req.Filter) != "" && qr.Filter == nil {
		notes = append(notes, "filter matched no known properties and was ignored")
	}
	if strings.TrimSpace(req.Sort) != "" && qr.Sorts == nil {
		notes = append(notes, "sort matched no known properties and was ignored")
	}

	var rows []notion.Page
	for len(rows) < limit {
		qr.PageSize = min(limit-len(rows), 100)
		list, err := s.api.QueryDataSource(ctx, ds.ID, qr)
		if err != nil {
			return "", fmt.Errorf("query %q: %w", req.Target, err)
		}
		rows = append(rows, list.Results...)
		if !list.HasMore || list.NextCursor == "" {
			break
		}
		qr.StartCursor = list.NextCursor
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	s.logger.Debug("database listed", slog.String("data_source_id", ds.ID), slog.Int("rows", len(rows)))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", titleOrUntitled(db.PlainTitle()))
	for _, n := range notes {
		fmt.Fprintf(&b, "Note: %s.\n", n)
	}
	if len(rows) == 0 {
		b.WriteString("No matching rows.\n")
		return b.String(), nil
	}
	fmt.Fprintf(&b, "%d row(s)\n\n", len(rows))
	writeTable(&b, listColumns(schema), rows)
	return b.String(), nil
}

// listColumns picks the title and the first writable columns in schema order.
func listColumns(schema *property.Schema) []property.Field {
	var cols []property.Field
	for _, f := range schema.Fields() {
		if f.Type.ReadOnly() {
			continue
		}
		cols = append(cols, f)
		if len(cols) == maxListColumns {
			break
		}
	}
	return cols
}

func writeTable(b *strings.Builder, cols []property.Field, rows []notion.Page) {
	header := []string{"ID"}
	for _, c := range cols {
		header = append(header, c.Name)
	}
	writeRow(b, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(b, sep)

	for i := range rows {
		title, entries := property.ToHeader(rows[i].Properties)
		values := make(map[string]any, len(entries))
		for _, e := range entries {
			values[e.Key] = e.Value
		}
		cells := []string{resolve.ShortID(rows[i].ID)}
		for _, c := range cols {
			if c.Type == property.TypeTitle {
				cells = append(cells, title)
				continue
			}
			cells = append(cells, cellText(values[c.Name]))
		}
		writeRow(b, cells)
	}
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(strings.ReplaceAll(c, "|", "\\|"), "\n", " ")
	}
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

// cellText formats a header value for a table cell.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = cellText(p)
		}
		return strings.Join(parts, ", ")
	case bool:
		if x {
			return "✓"
		}
		return "✗"
	case property.DateRange:
		if x.End == nil {
			return x.Start
		}
		return x.Start + " → " + *x.End
	}
	return fmt.Sprint(v)
}

func (s *Service) listPage(ctx context.Context, page *notion.Page, limit int) (string, error) {
	type child struct {
		icon, title, url, edited string
	}
	var children []child

	cursor := ""
	for len(children) < limit {
		list, err := s.api.ListChildren(ctx, page.ID, cursor)
		if err != nil {
			return "", fmt.Errorf("list children of %s: %w", page.ID, err)
		}
		for _, b := range list.Results {
			if len(children) == limit {
				break
			}
			switch b.Type {
			case "child_page":
				p, err := s.api.GetPage(ctx, b.ID)
				if inaccessible(err) {
					s.logger.Debug("skip inaccessible child page", slog.String("page_id", b.ID))
					continue
				}
				if err != nil {
					return "", fmt.Errorf("page %s: %w", b.ID, err)
				}
				children = append(children, child{iconOr(p.Icon, "📄"), p.Title(), p.URL, p.LastEditedTime})
			case "child_database":
				db, err := s.api.GetDatabase(ctx, b.ID)
				if inaccessible(err) {
					s.logger.Debug("skip inaccessible child database", slog.String("database_id", b.ID))
					continue
				}
				if err != nil {
					return "", fmt.Errorf("database %s: %w", b.ID, err)
				}
				children = append(children, child{iconOr(db.Icon, "🗃️"), db.PlainTitle(), db.URL, db.LastEditedTime})
			}
		}
		if !list.HasMore || list.NextCursor == "" {
			break
		}
		cursor = list.NextCursor
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", titleOrUntitled(page.Title()))
	if len(children) == 0 {
		b.WriteString("No child pages.\n")
		return b.String(), nil
	}
	for i, c := range children {
		fmt.Fprintf(&b, "%d. %s %s — %s", i+1, c.icon, titleOrUntitled(c.title), c.url)
		if c.edited != "" {
			fmt.Fprintf(&b, " (edited %s)", shortDate(c.edited))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func iconOr(icon *notion.Icon, fallback string) string {
	if s := icon.String(); s != "" {
		return s
	}
	return fallback
}
