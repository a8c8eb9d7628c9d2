package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/vthunder/notion-docs-mcp/notion"
)

const (
	pageA  = "aaaaaaaa-0000-4000-8000-000000000001"
	pageB  = "aaaaaaaa-0000-4000-8000-000000000002"
	pageC  = "aaaaaaaa-0000-4000-8000-000000000003"
	rowID  = "bbbbbbbb-0000-4000-8000-000000000001"
	dbID   = "dddddddd-0000-4000-8000-000000000001"
	dsID   = "eeeeeeee-0000-4000-8000-000000000001"
	userID = "cccccccc-0000-4000-8000-000000000001"
)

var errNotFound = &notion.APIError{Status: 404, Code: "object_not_found", Message: "Could not find object"}

type pageUpdate struct {
	ID  string
	Req notion.UpdatePageRequest
}

type fakeAPI struct {
	pages       map[string]*notion.Page
	trees       map[string][]notion.Block
	databases   map[string]*notion.Database
	dataSources map[string]*notion.DataSource
	rows        map[string][]notion.Page
	results     []notion.SearchResult
	comments    map[string][]notion.Comment
	users       map[string]*notion.User
	forbidden   map[string]bool

	nextID      int
	created     []notion.CreatePageRequest
	updates     []pageUpdate
	appended    map[string][]map[string]any
	cleared     []string
	moves       map[string]notion.Parent
	queries     []notion.QueryRequest
	dsUpdates   []map[string]any
	newComments []notion.CreateCommentRequest
	userLookups int
}

func newFake() *fakeAPI {
	return &fakeAPI{
		pages:       map[string]*notion.Page{},
		trees:       map[string][]notion.Block{},
		databases:   map[string]*notion.Database{},
		dataSources: map[string]*notion.DataSource{},
		rows:        map[string][]notion.Page{},
		comments:    map[string][]notion.Comment{},
		users:       map[string]*notion.User{},
		forbidden:   map[string]bool{},
		appended:    map[string][]map[string]any{},
		moves:       map[string]notion.Parent{},
	}
}

func newTestService(api API) *Service {
	return New(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeProps(t *testing.T, raw string) notion.Properties {
	t.Helper()
	var props notion.Properties
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		t.Fatalf("decode properties: %v", err)
	}
	return props
}

func titleProps(t *testing.T, title string) notion.Properties {
	t.Helper()
	return decodeProps(t, fmt.Sprintf(`{"title": {"id": "title", "type": "title", "title": [{"type": "text", "plain_text": %q}]}}`, title))
}

func textBlock(typ, text string) notion.Block {
	return notion.Block{Type: typ, Data: map[string]any{"rich_text": []any{
		map[string]any{"type": "text", "plain_text": text, "text": map[string]any{"content": text}},
	}}}
}

// withTaskDatabase registers a database "Tasks" with one row.
func (f *fakeAPI) withTaskDatabase(t *testing.T) {
	t.Helper()
	f.databases[dbID] = &notion.Database{
		ID:          dbID,
		Title:       []notion.RichTextItem{{PlainText: "Tasks"}},
		DataSources: []notion.DataSourceRef{{ID: dsID, Name: "Tasks"}},
	}
	f.dataSources[dsID] = &notion.DataSource{
		ID:     dsID,
		Parent: notion.Parent{Type: notion.ParentDatabase, DatabaseID: dbID},
		Properties: decodeProps(t, `{
			"Name": {"id": "title", "name": "Name", "type": "title", "title": {}},
			"Status": {"id": "s", "name": "Status", "type": "select", "select": {"options": [{"name": "Todo"}, {"name": "Done"}]}},
			"Estimate": {"id": "e", "name": "Estimate", "type": "number", "number": {"format": "number"}},
			"Created": {"id": "c", "name": "Created", "type": "created_time", "created_time": {}}
		}`),
	}
	f.results = append(f.results, notion.SearchResult{
		Object:    "data_source",
		ID:        dsID,
		Parent:    notion.Parent{Type: notion.ParentDatabase, DatabaseID: dbID},
		TitleText: []notion.RichTextItem{{PlainText: "Tasks"}},
	})

	row := &notion.Page{
		ID:             rowID,
		URL:            "https://www.notion.so/Launch-bbbbbbbb000040008000000000000001",
		CreatedTime:    "2024-01-01T00:00:00.000Z",
		LastEditedTime: "2024-01-02T00:00:00.000Z",
		Parent:         notion.Parent{Type: notion.ParentDataSource, DataSourceID: dsID, DatabaseID: dbID},
		Properties: decodeProps(t, `{
			"Name": {"id": "title", "type": "title", "title": [{"type": "text", "plain_text": "Launch"}]},
			"Status": {"id": "s", "type": "select", "select": {"name": "Done"}},
			"Estimate": {"id": "e", "type": "number", "number": 3},
			"Created": {"id": "c", "type": "created_time", "created_time": "2024-01-01T00:00:00.000Z"}
		}`),
	}
	f.pages[rowID] = row
	f.rows[dsID] = append(f.rows[dsID], *row)
}

// withPage registers a page under parent with the given content.
func (f *fakeAPI) withPage(t *testing.T, id, title, parent string, blocks ...notion.Block) {
	t.Helper()
	f.pages[id] = &notion.Page{
		ID:             id,
		URL:            "https://www.notion.so/" + id,
		LastEditedTime: "2024-03-01T12:00:00.000Z",
		Parent:         notion.PageParent(parent),
		Properties:     titleProps(t, title),
	}
	f.trees[id] = blocks
	f.results = append(f.results, notion.SearchResult{Object: "page", ID: id, Properties: titleProps(t, title)})
}

func (f *fakeAPI) GetPage(_ context.Context, id string) (*notion.Page, error) {
	if f.forbidden[id] {
		return nil, &notion.APIError{Status: 403, Code: "restricted_resource"}
	}
	if p, ok := f.pages[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeAPI) CreatePage(_ context.Context, req notion.CreatePageRequest) (*notion.Page, error) {
	f.created = append(f.created, req)
	f.nextID++
	id := fmt.Sprintf("ffffffff-0000-4000-8000-%012d", f.nextID)
	p := &notion.Page{ID: id, URL: "https://www.notion.so/" + id, Parent: req.Parent}
	f.pages[id] = p
	return p, nil
}

func (f *fakeAPI) UpdatePage(_ context.Context, id string, req notion.UpdatePageRequest) (*notion.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, errNotFound
	}
	f.updates = append(f.updates, pageUpdate{ID: id, Req: req})
	return p, nil
}

func (f *fakeAPI) MovePage(_ context.Context, id string, parent notion.Parent) (*notion.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, errNotFound
	}
	f.moves[id] = parent
	return p, nil
}

func (f *fakeAPI) ListChildren(_ context.Context, blockID, _ string) (*notion.List[notion.Block], error) {
	return &notion.List[notion.Block]{Results: f.trees[blockID]}, nil
}

func (f *fakeAPI) BlockTree(_ context.Context, blockID string) ([]notion.Block, error) {
	return f.trees[blockID], nil
}

func (f *fakeAPI) AppendChildren(_ context.Context, blockID string, blocks []map[string]any) error {
	f.appended[blockID] = append(f.appended[blockID], blocks...)
	return nil
}

func (f *fakeAPI) DeleteChildren(_ context.Context, blockID string) (int, error) {
	f.cleared = append(f.cleared, blockID)
	return len(f.trees[blockID]), nil
}

func (f *fakeAPI) GetDatabase(_ context.Context, id string) (*notion.Database, error) {
	if f.forbidden[id] {
		return nil, &notion.APIError{Status: 403, Code: "restricted_resource"}
	}
	if db, ok := f.databases[id]; ok {
		return db, nil
	}
	return nil, errNotFound
}

func (f *fakeAPI) SetDatabaseTrash(ctx context.Context, id string, inTrash bool) (*notion.Database, error) {
	db, err := f.GetDatabase(ctx, id)
	if err != nil {
		return nil, err
	}
	db.InTrash = inTrash
	return db, nil
}

func (f *fakeAPI) GetDataSource(_ context.Context, id string) (*notion.DataSource, error) {
	if ds, ok := f.dataSources[id]; ok {
		return ds, nil
	}
	return nil, errNotFound
}

func (f *fakeAPI) PrimaryDataSource(ctx context.Context, id string) (*notion.Database, *notion.DataSource, error) {
	db, err := f.GetDatabase(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ds, err := f.GetDataSource(ctx, db.DataSources[0].ID)
	return db, ds, err
}

func (f *fakeAPI) UpdateDataSource(ctx context.Context, id string, props map[string]any) (*notion.DataSource, error) {
	f.dsUpdates = append(f.dsUpdates, props)
	return f.GetDataSource(ctx, id)
}

func (f *fakeAPI) QueryDataSource(_ context.Context, id string, req notion.QueryRequest) (*notion.List[notion.Page], error) {
	f.queries = append(f.queries, req)
	rows := f.rows[id]
	start, _ := strconv.Atoi(req.StartCursor)
	end := min(start+req.PageSize, len(rows))
	list := &notion.List[notion.Page]{Results: rows[start:end]}
	if end < len(rows) {
		list.HasMore = true
		list.NextCursor = strconv.Itoa(end)
	}
	return list, nil
}

func (f *fakeAPI) Search(_ context.Context, req notion.SearchRequest) (*notion.List[notion.SearchResult], error) {
	var out []notion.SearchResult
	for _, r := range f.results {
		if req.Filter != nil && r.Object != req.Filter.Value {
			continue
		}
		out = append(out, r)
	}
	return &notion.List[notion.SearchResult]{Results: out}, nil
}

func (f *fakeAPI) ListComments(_ context.Context, blockID, _ string) (*notion.List[notion.Comment], error) {
	return &notion.List[notion.Comment]{Results: f.comments[blockID]}, nil
}

func (f *fakeAPI) CreateComment(_ context.Context, req notion.CreateCommentRequest) (*notion.Comment, error) {
	f.newComments = append(f.newComments, req)
	d := req.DiscussionID
	if d == "" {
		d = "discussion-new"
	}
	return &notion.Comment{ID: "comment-new", DiscussionID: d}, nil
}

func (f *fakeAPI) GetUser(_ context.Context, id string) (*notion.User, error) {
	f.userLookups++
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}
