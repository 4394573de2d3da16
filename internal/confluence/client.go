package confluence

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ylchen07/confluence-request/internal/auth"
)

// NewClient returns an HTTP client that authenticates every request with
// basic auth. No timeout is set beyond the transport defaults.
func NewClient(username, token string, base http.RoundTripper) *http.Client {
	return &http.Client{Transport: auth.NewTransport(base, username, token)}
}

// Connection identifies a Confluence Cloud site and the account used to
// reach it.
type Connection struct {
	Username string
	APIToken string
	// Domain is the site name, as in https://{Domain}.atlassian.net.
	Domain string
	// Transport is the base round tripper; nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

// Input is a single call: where to send it and what to do.
type Input struct {
	Connection
	Operation Operation
}

// Request resolves the operation, builds the URI and executes it with a
// freshly constructed client.
func Request(ctx context.Context, in Input) (*Result, error) {
	if in.Operation == nil {
		return nil, fmt.Errorf("%w: operation", ErrMissingField)
	}

	c, err := in.Operation.call()
	if err != nil {
		return nil, err
	}

	uri, err := BuildURI(in.Domain, c.version, c.suffix, c.query)
	if err != nil {
		return nil, err
	}

	client := NewClient(in.Username, in.APIToken, in.Transport)
	return Execute(ctx, client, c.method, uri, c.body)
}

// Do runs a custom request.
func (c Connection) Do(ctx context.Context, op CustomRequest) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// CreatePage creates a page in a space.
func (c Connection) CreatePage(ctx context.Context, op CreatePage) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// UpdatePage replaces the title and body of a page.
func (c Connection) UpdatePage(ctx context.Context, op UpdatePage) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// GetPageByID fetches a page.
func (c Connection) GetPageByID(ctx context.Context, op GetPageByID) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// DeletePage deletes a page.
func (c Connection) DeletePage(ctx context.Context, op DeletePage) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// GetPageByTitle looks up pages by title within a space.
func (c Connection) GetPageByTitle(ctx context.Context, op GetPageByTitle) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// CreateSpace creates a space.
func (c Connection) CreateSpace(ctx context.Context, op CreateSpace) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// DeleteSpace deletes a space by key.
func (c Connection) DeleteSpace(ctx context.Context, op DeleteSpace) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}

// GetSpaceByName looks up spaces by name.
func (c Connection) GetSpaceByName(ctx context.Context, op GetSpaceByName) (*Result, error) {
	return Request(ctx, Input{Connection: c, Operation: op})
}
