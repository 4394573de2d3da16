package auth

import (
	"encoding/base64"
	"net/http"
)

// Transport injects Confluence basic authentication into outbound requests.
type Transport struct {
	base       http.RoundTripper
	authHeader string
}

// NewTransport wraps base with an Authorization header built from the
// username and API token. A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper, username, token string) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, authHeader: BasicHeader(username, token)}
}

// BasicHeader returns the Authorization header value for username:token.
func BasicHeader(username, token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+token))
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", t.authHeader)
	return t.base.RoundTrip(clone)
}
