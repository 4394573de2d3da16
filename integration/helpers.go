package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ylchen07/confluence-request/internal/config"
	"github.com/ylchen07/confluence-request/internal/confluence"
	"github.com/ylchen07/confluence-request/internal/output"
)

// requireIntegration skips the test unless CONFLUENCE_INTEGRATION is set.
func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("CONFLUENCE_INTEGRATION") == "" {
		t.Skip("CONFLUENCE_INTEGRATION not set; skipping integration tests")
	}
}

// connect loads the connection the same way the CLI does: .env files,
// CONFLUENCE_* variables, .netrc and the keyring.
func connect(t *testing.T) confluence.Connection {
	t.Helper()

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Skipf("Confluence credentials not available: %v", err)
	}
	return cfg.Confluence.Connection()
}

func request(t *testing.T, conn confluence.Connection, op confluence.Operation) *confluence.Result {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := confluence.Request(ctx, confluence.Input{Connection: conn, Operation: op})
	if err != nil {
		t.Fatalf("%s: %v", op.Kind(), err)
	}
	return res
}

// mustSucceed fails the test when res carries a non-2xx status.
func mustSucceed(t *testing.T, res *confluence.Result) {
	t.Helper()
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected status: %v", err)
	}
}

// field evaluates a jq expression against the response content.
func field(t *testing.T, res *confluence.Result, expr string) string {
	t.Helper()

	v, err := output.Apply(res.Value(), expr)
	if err != nil {
		t.Fatalf("jq %s: %v", expr, err)
	}
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// workspace creates a throwaway space and removes it when the test ends.
// It returns the space key and its numeric id.
func workspace(t *testing.T, conn confluence.Connection) (key, id string) {
	t.Helper()

	key = fmt.Sprintf("IT%d", time.Now().UnixNano()%100000000)
	res := request(t, conn, confluence.CreateSpace{Key: key, Name: "Integration " + key})
	mustSucceed(t, res)

	t.Cleanup(func() {
		res := request(t, conn, confluence.DeleteSpace{Key: key})
		if err := res.Err(); err != nil {
			t.Logf("cleanup: delete space %s: %v", key, err)
		}
	})

	return key, field(t, res, ".id")
}
