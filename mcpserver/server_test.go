package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vthunder/notion-docs-mcp/config"
	"github.com/vthunder/notion-docs-mcp/markdown"
	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/ops"
)

const pageID = "aaaaaaaa-0000-4000-8000-000000000001"

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testServer serves tools backed by a client talking to handler.
func testServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewDefault().Notion
	cfg.Token = "secret_test"
	cfg.BaseURL = srv.URL
	client, err := notion.NewClient(cfg, discard())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	svc := ops.New(client, discard())
	return New(func() (*ops.Service, error) { return svc, nil }, "test", discard())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// notionStub answers a page fetch and its content; everything else is 404.
func notionStub(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages/" + pageID:
			writeJSON(w, http.StatusOK, map[string]any{
				"object":           "page",
				"id":               pageID,
				"url":              "https://www.notion.so/" + pageID,
				"last_edited_time": "2024-03-01T12:00:00.000Z",
				"parent":           map[string]any{"type": "workspace", "workspace": true},
				"properties": map[string]any{
					"title": map[string]any{"id": "title", "type": "title", "title": []any{
						map[string]any{"type": "text", "plain_text": "Handbook"},
					}},
				},
			})
		case "/blocks/" + pageID + "/children":
			writeJSON(w, http.StatusOK, map[string]any{
				"results": []any{map[string]any{
					"id":   "b1",
					"type": "paragraph",
					"paragraph": map[string]any{"rich_text": []any{
						map[string]any{"type": "text", "plain_text": "Welcome", "text": map[string]any{"content": "Welcome"}},
					}},
				}},
				"has_more": false,
			})
		default:
			t.Logf("unhandled %s %s", r.Method, r.URL.Path)
			writeJSON(w, http.StatusNotFound, map[string]any{"object": "error", "status": 404, "code": "object_not_found", "message": "Could not find object"})
		}
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	handlers := map[string]operation{
		"notion_read":              readPage,
		"notion_write":             writePages,
		"notion_search":            search,
		"notion_list":              list,
		"notion_update_properties": updateProperties,
		"notion_schema":            schema,
		"notion_comments":          comments,
		"notion_archive":           archive,
		"notion_move":              move,
	}
	op, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := srv.handle(name, op)(context.Background(), req)
	if err != nil {
		t.Fatalf("tool %s returned a Go error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadTool(t *testing.T) {
	srv := testServer(t, notionStub(t))

	r := callTool(t, srv, "notion_read", map[string]any{"target": pageID})
	assert.Equal(t, r.IsError, false)
	text := resultText(r)
	assert.Equal(t, strings.HasPrefix(text, "---\nid: "+pageID+"\n"), true)
	assert.Equal(t, strings.Contains(text, "title: Handbook\n"), true)
	assert.Equal(t, strings.HasSuffix(text, "---\n\nWelcome\n"), true)
}

func TestReadTool_NotFoundIsErrorResult(t *testing.T) {
	srv := testServer(t, notionStub(t))

	const missing = "bbbbbbbb-0000-4000-8000-000000000001"
	r := callTool(t, srv, "notion_read", map[string]any{"target": missing})
	assert.Equal(t, r.IsError, true)
	text := resultText(r)
	assert.Equal(t, strings.HasPrefix(text, "Not found"), true)
	assert.Equal(t, strings.Contains(text, missing), true)
	assert.Equal(t, strings.Contains(text, "Hint: "), true)
}

func TestValidationErrorResult(t *testing.T) {
	srv := testServer(t, notionStub(t))

	r := callTool(t, srv, "notion_schema", map[string]any{"database": "Tasks", "action": "rename", "property": "Status"})
	assert.Equal(t, r.IsError, true)
	assert.Equal(t, strings.HasPrefix(resultText(r), "Error [invalid_arguments]"), true)

	r = callTool(t, srv, "notion_read", map[string]any{})
	assert.Equal(t, r.IsError, true)
	assert.Equal(t, strings.HasPrefix(resultText(r), "Error [missing_target]"), true)
}

func TestWriteTool_BatchFailureIsFlagged(t *testing.T) {
	srv := testServer(t, notionStub(t))

	content := "---\ntitle: A\n---\n\nx\n\n<!-- next-document -->\n\n---\ntitle: B\n---\n\ny\n"
	r := callTool(t, srv, "notion_write", map[string]any{"content": content})
	assert.Equal(t, r.IsError, true)
	text := resultText(r)
	assert.Equal(t, strings.Contains(text, "1. FAILED: Error [missing_parent]"), true)
	assert.Equal(t, strings.Contains(text, "2. FAILED: Error [missing_parent]"), true)
	assert.Equal(t, strings.HasSuffix(text, "0/2 succeeded"), true)
}

func TestProviderErrorIsErrorResult(t *testing.T) {
	srv := New(func() (*ops.Service, error) { return nil, notion.ErrMissingToken }, "test", discard())

	r := callTool(t, srv, "notion_search", map[string]any{"query": "x"})
	assert.Equal(t, r.IsError, true)
	assert.Equal(t, resultText(r), "Error: "+notion.ErrMissingToken.Error())
}

func TestFormatTool(t *testing.T) {
	srv := New(func() (*ops.Service, error) { return nil, nil }, "test", discard())

	r, err := srv.getFormat(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, resultText(r), DocumentFormatContract)

	contents, err := srv.readFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected resource contents %T", contents[0])
	}
	assert.Equal(t, tc.URI, FormatURI)
	assert.Equal(t, strings.Contains(tc.Text, "<!-- next-document -->"), true)
}

func TestFormatContract_MatchesParser(t *testing.T) {
	assert.Equal(t, strings.Contains(DocumentFormatContract, "divider"), false)
	assert.Equal(t, strings.Contains(DocumentFormatContract, "ignored on write"), true)

	blocks := markdown.Parse("before\n\n---\n\n[Unsupported: child_database]\n\n***bold italic*** and [**bold link**](https://x.io)\n")
	assert.Equal(t, len(blocks), 2)
	para, ok := blocks[1].(markdown.Paragraph)
	if !ok {
		t.Fatalf("unexpected block %T", blocks[1])
	}
	assert.Equal(t, para.Text, markdown.RichText{
		{Text: "bold italic", Bold: true, Italic: true},
		{Text: " and "},
		{Text: "bold link", Bold: true, Link: "https://x.io"},
	})
}
