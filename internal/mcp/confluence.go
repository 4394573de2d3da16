package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ylchen07/confluence-request/internal/confluence"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ConfluenceTools wires Confluence operations into MCP tools.
type ConfluenceTools struct {
	conn    confluence.Connection
	request Requester
	logger  *slog.Logger
}

// NewConfluenceTools registers Confluence tools on the server.
func NewConfluenceTools(s *server.MCPServer, conn confluence.Connection, request Requester, logger *slog.Logger) *ConfluenceTools {
	if request == nil {
		request = confluence.Request
	}
	if logger == nil {
		logger = slog.Default()
	}

	ct := &ConfluenceTools{conn: conn, request: request, logger: logger}

	s.AddTool(
		mcp.NewTool(
			"confluence.request",
			mcp.WithDescription("Send an arbitrary request to the Confluence REST API (v1 or v2)"),
			mcp.WithInputSchema[ConfluenceRequestArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleRequest),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.create_page",
			mcp.WithDescription("Create a Confluence page in the specified space"),
			mcp.WithInputSchema[ConfluenceCreatePageArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleCreatePage),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.update_page",
			mcp.WithDescription("Update the title and body of an existing Confluence page"),
			mcp.WithInputSchema[ConfluenceUpdatePageArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleUpdatePage),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.get_page",
			mcp.WithDescription("Fetch a Confluence page by id"),
			mcp.WithInputSchema[ConfluencePageIDArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleGetPage),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.delete_page",
			mcp.WithDescription("Delete a Confluence page by id"),
			mcp.WithInputSchema[ConfluencePageIDArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleDeletePage),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.find_page",
			mcp.WithDescription("Find Confluence pages by title, optionally within a space"),
			mcp.WithInputSchema[ConfluenceFindPageArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleFindPage),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.create_space",
			mcp.WithDescription("Create a Confluence space"),
			mcp.WithInputSchema[ConfluenceCreateSpaceArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleCreateSpace),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.delete_space",
			mcp.WithDescription("Delete a Confluence space by key"),
			mcp.WithInputSchema[ConfluenceSpaceKeyArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleDeleteSpace),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence.find_space",
			mcp.WithDescription("Find Confluence spaces by name"),
			mcp.WithInputSchema[ConfluenceFindSpaceArgs](),
			mcp.WithOutputSchema[ConfluenceResult](),
		),
		mcp.NewTypedToolHandler(ct.handleFindSpace),
	)

	return ct
}

// ConfluenceResult is the structured output of every tool.
type ConfluenceResult struct {
	StatusCode int `json:"statusCode"`
	Content    any `json:"content"`
}

// ConfluenceRequestArgs parameters for a raw request.
type ConfluenceRequestArgs struct {
	Method     string            `json:"method" jsonschema:"required,enum=GET,enum=POST,enum=PUT,enum=PATCH,enum=DELETE" jsonschema_description:"HTTP method"`
	APIVersion string            `json:"apiVersion" jsonschema:"required,enum=v1,enum=v2" jsonschema_description:"v1 (/wiki/rest/api/) or v2 (/wiki/api/v2/)"`
	Suffix     string            `json:"suffix" jsonschema:"required" jsonschema_description:"Operation path after the version prefix, e.g. /pages"`
	Query      map[string]string `json:"query,omitempty" jsonschema_description:"Query parameters"`
	Body       string            `json:"body,omitempty" jsonschema_description:"JSON request body"`
}

// ConfluenceCreatePageArgs parameters for page creation.
type ConfluenceCreatePageArgs struct {
	SpaceID string `json:"spaceId" jsonschema:"required" jsonschema_description:"Numeric space id"`
	Title   string `json:"title" jsonschema:"required" jsonschema_description:"Page title"`
	Body    string `json:"body,omitempty" jsonschema_description:"Page body in storage format"`
}

// ConfluenceUpdatePageArgs parameters for page update.
type ConfluenceUpdatePageArgs struct {
	PageID  string `json:"pageId" jsonschema:"required" jsonschema_description:"Page id"`
	Title   string `json:"title" jsonschema:"required" jsonschema_description:"Page title"`
	Body    string `json:"body,omitempty" jsonschema_description:"Page body in storage format"`
	Version int    `json:"version" jsonschema:"required,minimum=1" jsonschema_description:"Next version number"`
}

// ConfluencePageIDArgs identifies a page.
type ConfluencePageIDArgs struct {
	PageID string `json:"pageId" jsonschema:"required" jsonschema_description:"Page id"`
}

// ConfluenceFindPageArgs parameters for title lookup.
type ConfluenceFindPageArgs struct {
	Title    string `json:"title" jsonschema:"required" jsonschema_description:"Exact page title"`
	SpaceKey string `json:"spaceKey,omitempty" jsonschema_description:"Space key"`
}

// ConfluenceCreateSpaceArgs parameters for space creation.
type ConfluenceCreateSpaceArgs struct {
	Key  string `json:"key" jsonschema:"required" jsonschema_description:"Space key"`
	Name string `json:"name" jsonschema:"required" jsonschema_description:"Space name"`
}

// ConfluenceSpaceKeyArgs identifies a space.
type ConfluenceSpaceKeyArgs struct {
	Key string `json:"key" jsonschema:"required" jsonschema_description:"Space key"`
}

// ConfluenceFindSpaceArgs parameters for name lookup.
type ConfluenceFindSpaceArgs struct {
	Name string `json:"name" jsonschema:"required" jsonschema_description:"Space name"`
}

func (c *ConfluenceTools) run(ctx context.Context, op confluence.Operation) (*mcp.CallToolResult, error) {
	kind := op.Kind()

	res, err := c.request(ctx, confluence.Input{Connection: c.conn, Operation: op})
	if err != nil {
		c.logger.Error("confluence request failed", slog.String("operation", string(kind)), slog.Any("error", err))
		return mcp.NewToolResultErrorFromErr(fmt.Sprintf("confluence %s failed", kind), err), nil
	}

	c.logger.Debug("confluence request finished", slog.String("operation", string(kind)), slog.Int("status", res.StatusCode))

	result := ConfluenceResult{StatusCode: res.StatusCode, Content: res.Value()}
	fallback := fmt.Sprintf("Confluence %s returned %d", kind, res.StatusCode)
	if apiErr := res.Err(); apiErr != nil {
		fallback = fmt.Sprintf("Confluence %s returned %s", kind, strings.TrimPrefix(apiErr.Error(), "confluence: "))
	}

	return mcp.NewToolResultStructured(result, fallback), nil
}

func (c *ConfluenceTools) handleRequest(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceRequestArgs) (*mcp.CallToolResult, error) {
	version, err := confluence.ParseAPIVersion(args.APIVersion)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid apiVersion", err), nil
	}

	return c.run(ctx, confluence.CustomRequest{
		Version: version,
		Method:  confluence.Method(strings.ToUpper(args.Method)),
		Suffix:  args.Suffix,
		Query:   args.Query,
		Body:    args.Body,
	})
}

func (c *ConfluenceTools) handleCreatePage(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceCreatePageArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.CreatePage{SpaceID: args.SpaceID, Title: args.Title, Body: args.Body})
}

func (c *ConfluenceTools) handleUpdatePage(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceUpdatePageArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.UpdatePage{
		PageID:  args.PageID,
		Title:   args.Title,
		Body:    args.Body,
		Version: args.Version,
	})
}

func (c *ConfluenceTools) handleGetPage(ctx context.Context, _ mcp.CallToolRequest, args ConfluencePageIDArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.GetPageByID{PageID: args.PageID})
}

func (c *ConfluenceTools) handleDeletePage(ctx context.Context, _ mcp.CallToolRequest, args ConfluencePageIDArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.DeletePage{PageID: args.PageID})
}

func (c *ConfluenceTools) handleFindPage(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceFindPageArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.GetPageByTitle{Title: args.Title, SpaceKey: args.SpaceKey})
}

func (c *ConfluenceTools) handleCreateSpace(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceCreateSpaceArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.CreateSpace{Key: args.Key, Name: args.Name})
}

func (c *ConfluenceTools) handleDeleteSpace(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceSpaceKeyArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.DeleteSpace{Key: args.Key})
}

func (c *ConfluenceTools) handleFindSpace(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceFindSpaceArgs) (*mcp.CallToolResult, error) {
	return c.run(ctx, confluence.GetSpaceByName{Name: args.Name})
}
