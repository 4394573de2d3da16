package confluence

import (
	"errors"
	"net/http"
	"testing"
)

func TestMethodVerb(t *testing.T) {
	t.Parallel()

	cases := map[Method]string{
		MethodGet:    http.MethodGet,
		MethodPost:   http.MethodPost,
		MethodPut:    http.MethodPut,
		MethodPatch:  http.MethodPatch,
		MethodDelete: http.MethodDelete,
		"delete":     http.MethodDelete,
	}

	for m, want := range cases {
		got, err := m.Verb()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", m, err)
		}
		if got != want {
			t.Fatalf("%s: got %s want %s", m, got, want)
		}
	}
}

func TestMethodVerbUnsupported(t *testing.T) {
	t.Parallel()

	for _, m := range []Method{"", "DELET", "HEAD", "OPTIONS"} {
		if _, err := m.Verb(); !errors.Is(err, ErrUnsupportedMethod) {
			t.Fatalf("%q: expected ErrUnsupportedMethod, got %v", m, err)
		}
	}
}

func TestParseAPIVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    APIVersion
		wantErr bool
	}{
		{"v1", V1, false},
		{"V2", V2, false},
		{"2", V2, false},
		{" 1 ", V1, false},
		{"v3", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseAPIVersion(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedVersion) {
				t.Fatalf("%q: expected ErrUnsupportedVersion, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %v, %v want %v", tc.in, got, err, tc.want)
		}
	}
}
