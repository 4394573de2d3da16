package confluence

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedVersion is returned for API versions other than V1 and V2.
	ErrUnsupportedVersion = errors.New("confluence: unsupported api version")
	// ErrUnsupportedMethod is returned for HTTP methods outside GET/POST/PUT/PATCH/DELETE.
	ErrUnsupportedMethod = errors.New("confluence: unsupported http method")
	// ErrMissingField is returned when a named operation lacks a required field.
	ErrMissingField = errors.New("confluence: missing required field")
)

// APIError represents a non-2xx Confluence response.
type APIError struct {
	StatusCode    int               `json:"-"`
	Message       string            `json:"message"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Message != "" {
		return fmt.Sprintf("confluence: %d %s", e.StatusCode, e.Message)
	}

	if len(e.ErrorMessages) > 0 {
		return fmt.Sprintf("confluence: %d %s", e.StatusCode, e.ErrorMessages[0])
	}

	return fmt.Sprintf("confluence: %d", e.StatusCode)
}

// Err returns nil for 2xx results and an *APIError otherwise.
func (r *Result) Err() error {
	if r == nil || (r.StatusCode >= 200 && r.StatusCode < 300) {
		return nil
	}

	apiErr := &APIError{StatusCode: r.StatusCode}
	switch c := r.Content.(type) {
	case JSONContent:
		if obj, ok := c.Value.(map[string]any); ok {
			apiErr.Message = stringField(obj, "message")
			if msgs, ok := obj["errorMessages"].([]any); ok {
				for _, m := range msgs {
					if s, ok := m.(string); ok {
						apiErr.ErrorMessages = append(apiErr.ErrorMessages, s)
					}
				}
			}
			switch errs := obj["errors"].(type) {
			case map[string]any:
				apiErr.Errors = make(map[string]string, len(errs))
				for k, v := range errs {
					apiErr.Errors[k] = fmt.Sprint(v)
				}
			case []any:
				// v2 reports errors as a list of {status, code, title, detail}.
				for _, item := range errs {
					if e, ok := item.(map[string]any); ok {
						if title := stringField(e, "title"); title != "" {
							apiErr.ErrorMessages = append(apiErr.ErrorMessages, title)
						}
					}
				}
			}
		}
	case RawContent:
		apiErr.Message = c.Text
	}

	return apiErr
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
