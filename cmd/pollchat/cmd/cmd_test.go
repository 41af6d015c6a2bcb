package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pollchat dev\n", out)
}

func TestCodeCommand(t *testing.T) {
	out, err := run(t, "code", "-n", "3", "--length", "6")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Regexp(t, regexp.MustCompile(`^[0-9A-Z]{6}$`), l)
	}

	_, err = run(t, "code", "-n", "0", "--length", "6")
	assert.Error(t, err)

	_, err = run(t, "code", "-n", "1", "--length", "1")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "check", r.URL.Query().Get("action"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("room") == "AB1" {
			w.Write([]byte(`{"exists":true,"users":2}`))
			return
		}
		w.Write([]byte(`{"exists":false,"users":0}`))
	}))
	defer srv.Close()

	out, err := run(t, "check", "--addr", srv.URL, "--route", "/api/chat", "AB1", "ZZZ")
	require.NoError(t, err)

	assert.Regexp(t, `AB1\s+true\s+2`, out)
	assert.Regexp(t, `ZZZ\s+false\s+0`, out)
}

func TestCheckCommand_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := run(t, "check", "--addr", srv.URL, "AB1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
