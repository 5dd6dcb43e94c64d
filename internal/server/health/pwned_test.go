package health

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/securepass/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func hashParts(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password))
	h := strings.ToUpper(hex.EncodeToString(sum[:]))
	return h[:5], h[5:]
}

func TestPwnedChecker_BreachCount(t *testing.T) {
	prefix, suffix := hashParts("password123")

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n")
		fmt.Fprintf(w, "%s:42\r\n", suffix)
		fmt.Fprintf(w, "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF:1\r\n")
	}))
	defer srv.Close()

	c := NewPwnedCheckerWithBaseURL(srv.URL, srv.Client(), testLogger())

	count := c.BreachCount(context.Background(), "password123")
	assert.Equal(t, 42, count)

	// only the 5-char prefix may reach the API
	require.Equal(t, "/range/"+prefix, gotPath)
	assert.NotContains(t, gotPath, suffix)
}

func TestPwnedChecker_NotBreached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n")
	}))
	defer srv.Close()

	c := NewPwnedCheckerWithBaseURL(srv.URL, srv.Client(), testLogger())
	assert.Equal(t, 0, c.BreachCount(context.Background(), "no-match-here"))
}

func TestPwnedChecker_FailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewPwnedCheckerWithBaseURL(srv.URL, srv.Client(), testLogger())
	assert.Equal(t, 0, c.BreachCount(context.Background(), "anything"))

	srv.Close()
	assert.Equal(t, 0, c.BreachCount(context.Background(), "anything"))
}
