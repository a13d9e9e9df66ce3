// Package github is an HTTP adapter for the GitHub REST operations the
// gate consumes: listing a pull request's changed files and posting issue
// comments.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/eipw-action/internal/adapter/transport"
	"github.com/ethereum/eipw-action/internal/domain"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second

	// filesPerPage keeps page counts low on large pull requests.
	filesPerPage = 100
)

// Client is an HTTP client for the GitHub REST API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	retryConf  transport.RetryConfig
	log        transport.Logger
}

// NewClient creates a new GitHub API client with the given token.
// The token should be a GitHub personal access token or GITHUB_TOKEN from Actions.
func NewClient(token string, log transport.Logger) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryConf:  transport.DefaultRetryConfig(),
		log:        log,
	}
}

// SetBaseURL sets a custom base URL (for testing and GitHub Enterprise).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// SetRetryConfig overrides the transport retry configuration.
func (c *Client) SetRetryConfig(conf transport.RetryConfig) {
	c.retryConf = conf
}

// ListPullRequestFiles returns the complete change set of a pull request,
// in API order. Pages are fetched serially starting at page 1; the loop
// terminates only when a fetched page is empty, so no trailing files are
// dropped on page-boundary counts.
func (c *Client) ListPullRequestFiles(ctx context.Context, owner, repo string, pullNumber int) ([]domain.ChangedFile, error) {
	var files []domain.ChangedFile

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files?per_page=%d&page=%d",
			c.baseURL, owner, repo, pullNumber, filesPerPage, page)

		var pageFiles []PullRequestFile
		err := transport.Do(ctx, func(ctx context.Context) error {
			return c.getJSON(ctx, url, &pageFiles)
		}, c.retryConf, c.log)
		if err != nil {
			return nil, fmt.Errorf("list files page %d: %w", page, err)
		}

		if len(pageFiles) == 0 {
			break
		}
		for _, f := range pageFiles {
			files = append(files, domain.ChangedFile{Path: f.Filename, Status: f.Status})
		}
	}

	return files, nil
}

// CreateIssueComment posts a comment on the pull request's conversation.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) error {
	jsonData, err := json.Marshal(CreateCommentRequest{Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments",
		c.baseURL, owner, repo, issueNumber)

	var resp *http.Response
	err = transport.Do(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
		if reqErr != nil {
			return &transport.Error{Type: transport.ErrTypeUnknown, Message: reqErr.Error()}
		}
		c.setHeaders(req)
		req.Header.Set("Content-Type", "application/json")

		var callErr error
		resp, callErr = c.httpClient.Do(req)
		if callErr != nil {
			return &transport.Error{Type: transport.ErrTypeTimeout, Message: callErr.Error()}
		}
		return c.checkStatus(resp)
	}, c.retryConf, c.log)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var commentResp CreateCommentResponse
	if err := json.NewDecoder(resp.Body).Decode(&commentResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// getJSON fetches a URL and decodes its body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, reqErr := http.NewRequestWithContext(ctx, "GET", url, nil)
	if reqErr != nil {
		return &transport.Error{Type: transport.ErrTypeUnknown, Message: reqErr.Error()}
	}
	c.setHeaders(req)

	resp, callErr := c.httpClient.Do(req)
	if callErr != nil {
		// Could be timeout or network error.
		return &transport.Error{Type: transport.ErrTypeTimeout, Message: callErr.Error()}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &transport.Error{Type: transport.ErrTypeUnknown, Message: fmt.Sprintf("failed to parse response: %v", err)}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}

// checkStatus maps non-success responses to typed errors. On error, the
// response body is consumed and closed.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	bodyBytes, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		// If we can't read the error body, return a generic error with the status code.
		return &transport.Error{
			Type:       transport.ErrTypeUnknown,
			Message:    fmt.Sprintf("HTTP %d (failed to read response: %v)", resp.StatusCode, readErr),
			StatusCode: resp.StatusCode,
		}
	}
	return MapHTTPError(resp.StatusCode, resp.Header, bodyBytes)
}
