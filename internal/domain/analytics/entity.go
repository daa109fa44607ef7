package analytics

import "encoding/json"

// Profile carries the GitHub user payload. Raw is forwarded to the
// caller verbatim; HTMLURL and ReposURL are pre-extracted for the
// profile-links derivation. Offline marks the placeholder payload
// served when no GitHub token is configured.
type Profile struct {
	Offline  bool
	HTMLURL  string
	ReposURL string
	Raw      json.RawMessage
}

type ProfileLinks struct {
	ProfileURL string
	ReposURL   string
}

type CommitStats struct {
	TotalCommitContributions int
	ByRepository             []RepositoryCommits
}

type RepositoryCommits struct {
	Repository string
	Commits    []CommitWindow
}

type CommitWindow struct {
	Count      int
	OccurredAt string
}

type Comment struct {
	Author string
	Body   string
}

type PullRequest struct {
	Title      string
	URL        string
	CreatedAt  string
	Repository string
	Author     string
	Comments   []Comment
}

type Issue struct {
	Title        string
	URL          string
	CreatedAt    string
	Repository   string
	Author       string
	CommentCount int
	Comments     []Comment
}

// IssueComments is the issue_comments reshaping: an issue reduced to
// its comment thread.
type IssueComments struct {
	Title    string
	URL      string
	Comments []Comment
}
