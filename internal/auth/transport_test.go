package auth

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestNewTransportDefaultBase(t *testing.T) {
	t.Parallel()

	transport := NewTransport(nil, "user", "token")
	if transport == nil {
		t.Fatalf("expected transport")
	}
	if transport.base != http.DefaultTransport {
		t.Fatalf("expected default base transport")
	}
}

func TestBasicHeader(t *testing.T) {
	t.Parallel()

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("john.doe@example.com:s3cret"))
	if got := BasicHeader("john.doe@example.com", "s3cret"); got != want {
		t.Fatalf("BasicHeader = %q, want %q", got, want)
	}
}

func TestRoundTripSetsBasicHeader(t *testing.T) {
	t.Parallel()

	var original *http.Request
	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("user@example.com:s3cret"))

	rt := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req == original {
			t.Fatalf("request should be cloned")
		}
		if got := req.Header.Get("Authorization"); got != expected {
			t.Fatalf("unexpected auth header: %s", got)
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("{}"))}, nil
	}), "user@example.com", "s3cret")

	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	original = req

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if req.Header.Get("Authorization") != "" {
		t.Fatalf("original request must not be mutated")
	}
}

func TestRoundTripOverridesExistingHeader(t *testing.T) {
	t.Parallel()

	rt := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Values("Authorization"); len(got) != 1 || !strings.HasPrefix(got[0], "Basic ") {
			t.Fatalf("unexpected auth headers: %v", got)
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("{}"))}, nil
	}), "user", "token")

	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer stale")

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("round trip: %v", err)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
