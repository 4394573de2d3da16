package confluence

import "encoding/json"

// Result is the normalized outcome of a single request.
type Result struct {
	StatusCode int
	Content    Content
}

// Content is either JSONContent or RawContent.
type Content interface {
	isContent()
}

// JSONContent holds a response body that parsed as JSON. Objects decode to
// map[string]any, arrays to []any and numbers to json.Number, so integers
// beyond 2^53 keep their exact value.
type JSONContent struct {
	Value any
}

// RawContent holds a response body that was not valid JSON.
type RawContent struct {
	Text string
}

func (JSONContent) isContent() {}
func (RawContent) isContent()  {}

// MarshalJSON emits the parsed value unchanged.
func (c JSONContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value)
}

// MarshalJSON emits the raw text as a JSON string.
func (c RawContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Text)
}

// Value returns the content as a plain Go value: the decoded JSON for
// JSONContent, the text for RawContent and nil otherwise.
func (r *Result) Value() any {
	if r == nil {
		return nil
	}
	switch c := r.Content.(type) {
	case JSONContent:
		return c.Value
	case RawContent:
		return c.Text
	default:
		return nil
	}
}

// MarshalJSON renders the result as {"statusCode": n, "content": ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StatusCode int `json:"statusCode"`
		Content    any `json:"content"`
	}{
		StatusCode: r.StatusCode,
		Content:    r.Value(),
	})
}
