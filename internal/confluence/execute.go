package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Execute sends one request and normalizes the response. The body is always
// attached as application/json, even when empty. Non-2xx responses are
// returned as results, not errors; use Result.Err to convert them.
func Execute(ctx context.Context, client *http.Client, method Method, uri *url.URL, body string) (*Result, error) {
	verb, err := method.Verb()
	if err != nil {
		return nil, err
	}
	if uri == nil {
		return nil, fmt.Errorf("confluence: uri required")
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, verb, uri.String(), strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("confluence: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: send request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("confluence: read response: %w", err)
	}

	return &Result{StatusCode: res.StatusCode, Content: parseContent(data)}, nil
}

// parseContent decodes a single JSON document, keeping numbers as
// json.Number. Anything else, including trailing data, is raw text.
func parseContent(data []byte) Content {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return RawContent{Text: string(data)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return RawContent{Text: string(data)}
	}
	return JSONContent{Value: v}
}
