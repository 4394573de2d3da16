package confluence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Kind names an operation.
type Kind string

const (
	KindCustomRequest  Kind = "CustomRequest"
	KindCreatePage     Kind = "CreatePage"
	KindUpdatePage     Kind = "UpdatePage"
	KindGetPageByID    Kind = "GetPageById"
	KindDeletePage     Kind = "DeletePage"
	KindGetPageByTitle Kind = "GetPageByTitle"
	KindCreateSpace    Kind = "CreateSpace"
	KindDeleteSpace    Kind = "DeleteSpace"
	KindGetSpaceByName Kind = "GetSpaceByName"
)

// Operation is one of CustomRequest, CreatePage, UpdatePage, GetPageByID,
// DeletePage, GetPageByTitle, CreateSpace, DeleteSpace or GetSpaceByName.
// The set is closed; each variant carries only the fields it needs.
type Operation interface {
	Kind() Kind
	call() (call, error)
}

// call is the wire-level shape every operation resolves to.
type call struct {
	version APIVersion
	method  Method
	suffix  string
	query   map[string]string
	body    string
}

// CustomRequest sends Method to Suffix under the Version prefix verbatim.
type CustomRequest struct {
	Version APIVersion
	Method  Method
	Suffix  string
	Query   map[string]string
	// Body is sent as-is; it is expected to be JSON or empty.
	Body string
}

func (CustomRequest) Kind() Kind { return KindCustomRequest }

func (r CustomRequest) call() (call, error) {
	return call{
		version: r.Version,
		method:  r.Method,
		suffix:  r.Suffix,
		query:   r.Query,
		body:    r.Body,
	}, nil
}

func require(kind Kind, fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return fmt.Errorf("%w: %s requires %s", ErrMissingField, kind, fields[i])
		}
	}
	return nil
}

func pathOf(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.Join(escaped, "/")
}

func encodeJSON(v any) (string, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("confluence: encode body: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
