package confluence

import (
	"fmt"
	"net/http"
	"strings"
)

// APIVersion selects which Confluence REST API a request targets.
type APIVersion int

const (
	// V1 is the legacy path-based REST API.
	V1 APIVersion = 1
	// V2 is the resource-based REST API.
	V2 APIVersion = 2
)

const (
	apiV1Prefix = "/wiki/rest/api/"
	apiV2Prefix = "/wiki/api/v2/"
)

// Prefix returns the URL path prefix bound to the version.
func (v APIVersion) Prefix() (string, error) {
	switch v {
	case V1:
		return apiV1Prefix, nil
	case V2:
		return apiV2Prefix, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, int(v))
	}
}

func (v APIVersion) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return fmt.Sprintf("APIVersion(%d)", int(v))
	}
}

// ParseAPIVersion accepts "v1", "1", "v2" or "2" in any case.
func ParseAPIVersion(s string) (APIVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return V1, nil
	case "v2", "2":
		return V2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
}

// Method is the HTTP method of a custom request.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Verb maps the method onto the net/http verb constant.
func (m Method) Verb() (string, error) {
	switch Method(strings.ToUpper(string(m))) {
	case MethodGet:
		return http.MethodGet, nil
	case MethodPost:
		return http.MethodPost, nil
	case MethodPut:
		return http.MethodPut, nil
	case MethodPatch:
		return http.MethodPatch, nil
	case MethodDelete:
		return http.MethodDelete, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(m))
	}
}
