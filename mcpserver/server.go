// Package mcpserver exposes the document operations as MCP tools.
package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oklog/ulid/v2"

	"github.com/vthunder/notion-docs-mcp/ops"
)

// FormatURI is the URI of the document format contract resource.
const FormatURI = "notion://document-format"

// Provider returns the operation service. It is called on every tool call;
// implementations build the service once and may fail when the remote API
// is not configured.
type Provider func() (*ops.Service, error)

// Server wraps the MCP server with the document tools.
type Server struct {
	mcp     *server.MCPServer
	service Provider
	logger  *slog.Logger
}

// operation runs one tool against the service and returns its text result.
type operation func(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error)

// New creates a server with all tools registered.
func New(service Provider, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{service: service, logger: logger.With(slog.String("component", "mcpserver"))}

	s.mcp = server.NewMCPServer(
		"notion-docs-mcp",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool("notion_read",
		mcp.WithDescription("Read a Notion page as a document: a YAML header with title and properties, then a Markdown body. "+
			"depth > 1 also returns child pages as a batch. A database target is listed as a table."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Page or database ID, URL or exact title")),
		mcp.WithNumber("depth", mcp.Description("Page levels to read, 1 to 3. Default 1"), mcp.Min(1), mcp.Max(ops.MaxReadDepth)),
	), s.handle("notion_read", readPage))

	s.mcp.AddTool(mcp.NewTool("notion_write",
		mcp.WithDescription("Create or update pages from documents in the notion_read format. "+
			"A header id updates that page; otherwise parent or database is required. "+
			"A non-empty body replaces the page content. Separate several documents with a line <!-- next-document -->. "+
			"See the notion_format tool for the full format."),
		mcp.WithString("content", mcp.Required(), mcp.Description("One document, or several separated by <!-- next-document -->")),
		mcp.WithString("mode", mcp.Description("auto (default), create or update"), mcp.Enum(ops.ModeAuto, ops.ModeCreate, ops.ModeUpdate)),
	), s.handle("notion_write", writePages))

	s.mcp.AddTool(mcp.NewTool("notion_search",
		mcp.WithDescription("Search pages and databases by title."),
		mcp.WithString("query", mcp.Description("Text to search for; empty lists recent items")),
		mcp.WithString("kind", mcp.Description("page or database; empty for both"), mcp.Enum("page", "database")),
		mcp.WithNumber("limit", mcp.Description("Maximum results, default 10, at most 100")),
	), s.handle("notion_search", search))

	s.mcp.AddTool(mcp.NewTool("notion_list",
		mcp.WithDescription("List a database's rows as a table, or a page's child pages. "+
			"Databases accept filter expressions such as \"Status is Done AND Estimate > 2\" and sorts such as \"Due asc\"."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Page or database ID, URL or exact title")),
		mcp.WithString("filter", mcp.Description("Filter expression, databases only")),
		mcp.WithString("sort", mcp.Description("Comma-separated \"<property> asc|desc\", databases only")),
		mcp.WithNumber("limit", mcp.Description("Maximum rows, default 50, at most 1000")),
	), s.handle("notion_list", list))

	s.mcp.AddTool(mcp.NewTool("notion_update_properties",
		mcp.WithDescription("Set property values on a database row without touching its content. "+
			"Values use the same forms as the document header."),
		mcp.WithString("page", mcp.Required(), mcp.Description("Page ID, URL or exact title")),
		mcp.WithObject("properties", mcp.Required(), mcp.Description("Property name to value, e.g. {\"Status\": \"Done\", \"Tags\": [\"a\"]}")),
	), s.handle("notion_update_properties", updateProperties))

	s.mcp.AddTool(mcp.NewTool("notion_schema",
		mcp.WithDescription("View a database schema, or add, remove or rename a property."),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database ID, URL or exact title")),
		mcp.WithString("action", mcp.Description("view (default), add, remove or rename"),
			mcp.Enum(ops.SchemaView, ops.SchemaAdd, ops.SchemaRemove, ops.SchemaRename)),
		mcp.WithString("property", mcp.Description("Property name; required for add, remove and rename")),
		mcp.WithString("type", mcp.Description("Property type for add, e.g. rich_text, number, select, date")),
		mcp.WithString("new_name", mcp.Description("New name for rename")),
		mcp.WithArray("options", mcp.WithStringItems(), mcp.Description("Initial options for a select or multi_select add")),
	), s.handle("notion_schema", schema))

	s.mcp.AddTool(mcp.NewTool("notion_comments",
		mcp.WithDescription("Read a page's comments, or add one. discussion_id replies in an existing thread."),
		mcp.WithString("page", mcp.Required(), mcp.Description("Page ID, URL or exact title")),
		mcp.WithString("action", mcp.Description("read (default) or add"), mcp.Enum("read", "add")),
		mcp.WithString("text", mcp.Description("Comment text for add; inline Markdown allowed")),
		mcp.WithString("discussion_id", mcp.Description("Thread to reply in")),
	), s.handle("notion_comments", comments))

	s.mcp.AddTool(mcp.NewTool("notion_archive",
		mcp.WithDescription("Move a page or database to the trash, or restore it."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Page or database ID, URL or exact title")),
		mcp.WithBoolean("restore", mcp.Description("Restore from the trash instead of archiving")),
	), s.handle("notion_archive", archive))

	s.mcp.AddTool(mcp.NewTool("notion_move",
		mcp.WithDescription("Move a page under another page or into a database."),
		mcp.WithString("page", mcp.Required(), mcp.Description("Page ID, URL or exact title")),
		mcp.WithString("new_parent", mcp.Required(), mcp.Description("Destination page or database ID, URL or exact title")),
	), s.handle("notion_move", move))

	s.mcp.AddTool(mcp.NewTool("notion_format",
		mcp.WithDescription("Returns the document format contract. Read it before writing pages."),
	), s.getFormat)

	s.mcp.AddResource(
		mcp.NewResource(FormatURI, "Document Format Contract",
			mcp.WithResourceDescription("Header and Markdown body format used by notion_read and notion_write."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// handle adapts op to a tool handler. Failures become error results; the
// transport never sees a Go error.
func (s *Server) handle(name string, op operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		logger := s.logger.With(slog.String("request_id", ulid.Make().String()), slog.String("tool", name))

		result := s.call(ctx, op, req)
		level := slog.LevelInfo
		if result.IsError {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "tool call",
			slog.Duration("elapsed", time.Since(start)),
			slog.Bool("is_error", result.IsError))
		return result, nil
	}
}

func (s *Server) call(ctx context.Context, op operation, req mcp.CallToolRequest) *mcp.CallToolResult {
	svc, err := s.service()
	if err != nil {
		return mcp.NewToolResultError(ops.Describe(err))
	}
	text, err := op(ctx, svc, req)
	if err != nil {
		return mcp.NewToolResultError(ops.Describe(err))
	}
	return mcp.NewToolResultText(text)
}

func readPage(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Read(ctx, ops.ReadRequest{
		Target: req.GetString("target", ""),
		Depth:  req.GetInt("depth", 1),
	})
}

func writePages(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Write(ctx, ops.WriteRequest{
		Content: req.GetString("content", ""),
		Mode:    req.GetString("mode", ops.ModeAuto),
	})
}

func search(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Search(ctx, ops.SearchRequest{
		Query: req.GetString("query", ""),
		Kind:  req.GetString("kind", ""),
		Limit: req.GetInt("limit", 0),
	})
}

func list(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.List(ctx, ops.ListRequest{
		Target: req.GetString("target", ""),
		Filter: req.GetString("filter", ""),
		Sort:   req.GetString("sort", ""),
		Limit:  req.GetInt("limit", 0),
	})
}

func updateProperties(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	props, _ := req.GetArguments()["properties"].(map[string]any)
	return svc.UpdateProperties(ctx, ops.UpdatePropertiesRequest{
		Page:       req.GetString("page", ""),
		Properties: props,
	})
}

func schema(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Schema(ctx, ops.SchemaRequest{
		Database: req.GetString("database", ""),
		Action:   req.GetString("action", ops.SchemaView),
		Property: req.GetString("property", ""),
		Type:     req.GetString("type", ""),
		NewName:  req.GetString("new_name", ""),
		Options:  req.GetStringSlice("options", nil),
	})
}

func comments(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Comments(ctx, ops.CommentsRequest{
		Page:         req.GetString("page", ""),
		Action:       req.GetString("action", "read"),
		Text:         req.GetString("text", ""),
		DiscussionID: req.GetString("discussion_id", ""),
	})
}

func archive(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Archive(ctx, ops.ArchiveRequest{
		Target:  req.GetString("target", ""),
		Restore: req.GetBool("restore", false),
	})
}

func move(ctx context.Context, svc *ops.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Move(ctx, ops.MoveRequest{
		Page:      req.GetString("page", ""),
		NewParent: req.GetString("new_parent", ""),
	})
}

func (s *Server) getFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FormatURI,
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
