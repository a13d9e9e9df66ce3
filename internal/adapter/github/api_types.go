package github

// GitHub REST API types used by the gate.
// See: https://docs.github.com/en/rest/pulls/pulls#list-pull-requests-files
// and https://docs.github.com/en/rest/issues/comments#create-an-issue-comment

// PullRequestFile is one entry of GET /repos/{owner}/{repo}/pulls/{pull_number}/files.
type PullRequestFile struct {
	// Filename is the path of the file relative to the repository root.
	Filename string `json:"filename"`

	// Status is one of added, removed, modified, renamed, copied, changed, unchanged.
	Status string `json:"status"`

	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// CreateCommentRequest is the request body for POST /repos/{owner}/{repo}/issues/{issue_number}/comments.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// CreateCommentResponse is the response from creating an issue comment.
type CreateCommentResponse struct {
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
}

// ErrorResponse is GitHub's standard error body.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
