package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/eipw-action/internal/adapter/github"
	"github.com/ethereum/eipw-action/internal/adapter/transport"
	"github.com/ethereum/eipw-action/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warnf(format string, args ...interface{}) {}

func fastRetryConfig() transport.RetryConfig {
	return transport.RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     4 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*github.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient("test-token", nopLogger{})
	client.SetBaseURL(server.URL)
	client.SetRetryConfig(fastRetryConfig())
	return client, server
}

func writeFilesPage(t *testing.T, w http.ResponseWriter, files []github.PullRequestFile) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(files))
}

func TestListPullRequestFiles_Paginates(t *testing.T) {
	pages := map[string][]github.PullRequestFile{
		"1": {{Filename: "EIPS/eip-1.md", Status: "modified"}, {Filename: "EIPS/eip-2.md", Status: "added"}},
		"2": {{Filename: "EIPS/eip-3.md", Status: "removed"}},
		"3": {},
	}

	var requestedPages []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/repos/ethereum/EIPs/pulls/42/files", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)
		writeFilesPage(t, w, pages[page])
	}))

	files, err := client.ListPullRequestFiles(context.Background(), "ethereum", "EIPs", 42)

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, requestedPages)
	assert.Equal(t, []domain.ChangedFile{
		{Path: "EIPS/eip-1.md", Status: "modified"},
		{Path: "EIPS/eip-2.md", Status: "added"},
		{Path: "EIPS/eip-3.md", Status: "removed"},
	}, files)
}

func TestListPullRequestFiles_EmptyFirstPage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFilesPage(t, w, nil)
	}))

	files, err := client.ListPullRequestFiles(context.Background(), "ethereum", "EIPs", 42)

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListPullRequestFiles_NonSuccessStatusIsFatal(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))

	_, err := client.ListPullRequestFiles(context.Background(), "ethereum", "EIPs", 42)

	require.Error(t, err)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, transport.ErrTypeInvalidRequest, terr.Type)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestListPullRequestFiles_RetriesPrimaryRateLimit(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
			return
		}
		writeFilesPage(t, w, nil)
	}))

	files, err := client.ListPullRequestFiles(context.Background(), "ethereum", "EIPs", 42)

	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, 2, attempts)
}

func TestListPullRequestFiles_SecondaryRateLimitNotRetried(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"You have exceeded a secondary rate limit. Please wait a few minutes before you try again."}`)
	}))

	_, err := client.ListPullRequestFiles(context.Background(), "ethereum", "EIPs", 42)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.IsSecondaryRateLimit())
}

func TestCreateIssueComment_Success(t *testing.T) {
	var gotBody github.CreateCommentRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/repos/ethereum/EIPs/issues/42/comments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(github.CreateCommentResponse{ID: 7})
	}))

	err := client.CreateIssueComment(context.Background(), "ethereum", "EIPs", 42, "lint failed")

	require.NoError(t, err)
	assert.Equal(t, "lint failed", gotBody.Body)
}

func TestCreateIssueComment_AuthError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	}))

	err := client.CreateIssueComment(context.Background(), "ethereum", "EIPs", 42, "body")

	require.Error(t, err)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, transport.ErrTypeAuthentication, terr.Type)
}
