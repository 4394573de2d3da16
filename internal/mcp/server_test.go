package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ylchen07/confluence-request/internal/confluence"
)

func TestNewServerRegistersExpectedTools(t *testing.T) {
	t.Parallel()

	srv := NewServer(Dependencies{Connection: confluence.Connection{Domain: "example"}})

	tools := srv.ListTools()
	expected := []string{
		"confluence.request",
		"confluence.create_page",
		"confluence.update_page",
		"confluence.get_page",
		"confluence.delete_page",
		"confluence.find_page",
		"confluence.create_space",
		"confluence.delete_space",
		"confluence.find_space",
	}

	if len(tools) != len(expected) {
		t.Fatalf("unexpected tool count: got %d want %d", len(tools), len(expected))
	}

	for _, name := range expected {
		if _, ok := tools[name]; !ok {
			t.Fatalf("tool %q not registered", name)
		}
	}
}

// recorder captures the input passed to the requester and replies with res.
func recorder(res *confluence.Result, err error) (Requester, *confluence.Input) {
	got := new(confluence.Input)
	return func(_ context.Context, in confluence.Input) (*confluence.Result, error) {
		*got = in
		return res, err
	}, got
}

func newTools(t *testing.T, request Requester) *ConfluenceTools {
	t.Helper()
	srv := server.NewMCPServer("test", "0.0.1")
	return NewConfluenceTools(srv, confluence.Connection{Domain: "example", Username: "u", APIToken: "t"}, request, nil)
}

func TestHandlersTranslateArguments(t *testing.T) {
	t.Parallel()

	ok := &confluence.Result{StatusCode: 200, Content: confluence.JSONContent{Value: map[string]any{"id": "1"}}}

	cases := []struct {
		name string
		call func(*ConfluenceTools) (*mcp.CallToolResult, error)
		want confluence.Operation
	}{
		{
			name: "create page",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleCreatePage(context.Background(), mcp.CallToolRequest{}, ConfluenceCreatePageArgs{SpaceID: "42", Title: "T", Body: "B"})
			},
			want: confluence.CreatePage{SpaceID: "42", Title: "T", Body: "B"},
		},
		{
			name: "update page",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleUpdatePage(context.Background(), mcp.CallToolRequest{}, ConfluenceUpdatePageArgs{PageID: "7", Title: "T", Body: "B", Version: 2})
			},
			want: confluence.UpdatePage{PageID: "7", Title: "T", Body: "B", Version: 2},
		},
		{
			name: "get page",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleGetPage(context.Background(), mcp.CallToolRequest{}, ConfluencePageIDArgs{PageID: "7"})
			},
			want: confluence.GetPageByID{PageID: "7"},
		},
		{
			name: "delete page",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleDeletePage(context.Background(), mcp.CallToolRequest{}, ConfluencePageIDArgs{PageID: "7"})
			},
			want: confluence.DeletePage{PageID: "7"},
		},
		{
			name: "find page",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleFindPage(context.Background(), mcp.CallToolRequest{}, ConfluenceFindPageArgs{Title: "T", SpaceKey: "TEST"})
			},
			want: confluence.GetPageByTitle{Title: "T", SpaceKey: "TEST"},
		},
		{
			name: "create space",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleCreateSpace(context.Background(), mcp.CallToolRequest{}, ConfluenceCreateSpaceArgs{Key: "TEST", Name: "Test"})
			},
			want: confluence.CreateSpace{Key: "TEST", Name: "Test"},
		},
		{
			name: "delete space",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleDeleteSpace(context.Background(), mcp.CallToolRequest{}, ConfluenceSpaceKeyArgs{Key: "TEST"})
			},
			want: confluence.DeleteSpace{Key: "TEST"},
		},
		{
			name: "find space",
			call: func(ct *ConfluenceTools) (*mcp.CallToolResult, error) {
				return ct.handleFindSpace(context.Background(), mcp.CallToolRequest{}, ConfluenceFindSpaceArgs{Name: "Test"})
			},
			want: confluence.GetSpaceByName{Name: "Test"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			request, got := recorder(ok, nil)
			res, err := tc.call(newTools(t, request))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.IsError {
				t.Fatalf("unexpected tool error")
			}
			if got.Operation != tc.want {
				t.Fatalf("operation = %#v, want %#v", got.Operation, tc.want)
			}
			if got.Domain != "example" {
				t.Fatalf("connection not forwarded: %#v", got.Connection)
			}
			structured, ok := res.StructuredContent.(ConfluenceResult)
			if !ok || structured.StatusCode != 200 {
				t.Fatalf("unexpected structured content %#v", res.StructuredContent)
			}
		})
	}
}

func TestHandleRequest(t *testing.T) {
	t.Parallel()

	request, got := recorder(&confluence.Result{StatusCode: 200, Content: confluence.RawContent{Text: "ok"}}, nil)
	ct := newTools(t, request)

	res, err := ct.handleRequest(context.Background(), mcp.CallToolRequest{}, ConfluenceRequestArgs{
		Method:     "get",
		APIVersion: "v2",
		Suffix:     "/pages",
		Query:      map[string]string{"limit": "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error")
	}

	op, ok := got.Operation.(confluence.CustomRequest)
	if !ok {
		t.Fatalf("expected CustomRequest, got %T", got.Operation)
	}
	if op.Method != confluence.MethodGet || op.Version != confluence.V2 || op.Suffix != "/pages" || op.Query["limit"] != "1" {
		t.Fatalf("unexpected operation %#v", op)
	}
}

func TestHandleRequestInvalidVersion(t *testing.T) {
	t.Parallel()

	request, _ := recorder(nil, nil)
	ct := newTools(t, request)

	res, err := ct.handleRequest(context.Background(), mcp.CallToolRequest{}, ConfluenceRequestArgs{Method: "GET", APIVersion: "v9", Suffix: "pages"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error for invalid version")
	}
}

func TestRunReportsFailures(t *testing.T) {
	t.Parallel()

	request, _ := recorder(nil, errors.New("dial tcp: connection refused"))
	ct := newTools(t, request)

	res, err := ct.handleGetPage(context.Background(), mcp.CallToolRequest{}, ConfluencePageIDArgs{PageID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error")
	}
	if len(res.Content) == 0 {
		t.Fatalf("expected error content")
	}
	if text, ok := res.Content[0].(mcp.TextContent); ok {
		if !strings.Contains(text.Text, "connection refused") {
			t.Fatalf("unexpected error text %q", text.Text)
		}
	}
}

func TestRunKeepsNon2xxAsResult(t *testing.T) {
	t.Parallel()

	request, _ := recorder(&confluence.Result{
		StatusCode: 404,
		Content:    confluence.JSONContent{Value: map[string]any{"message": "No space with key"}},
	}, nil)
	ct := newTools(t, request)

	res, err := ct.handleDeleteSpace(context.Background(), mcp.CallToolRequest{}, ConfluenceSpaceKeyArgs{Key: "NOPE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("non-2xx responses are results, not tool errors")
	}
	structured := res.StructuredContent.(ConfluenceResult)
	if structured.StatusCode != 404 {
		t.Fatalf("unexpected status %d", structured.StatusCode)
	}
	if text, ok := res.Content[0].(mcp.TextContent); ok {
		if !strings.Contains(text.Text, "404 No space with key") {
			t.Fatalf("unexpected fallback %q", text.Text)
		}
	}
}
