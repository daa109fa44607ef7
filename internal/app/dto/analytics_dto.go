package dto

// DateRangeRequest is the optional body on analytics routes. When a
// bound is missing the trimester defaults apply.
type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ProfileLinks struct {
	ProfileURL string `json:"profile_url"`
	ReposURL   string `json:"repos_url"`
}

type CommitWindow struct {
	CommitCount int    `json:"commit_count"`
	OccurredAt  string `json:"occurred_at"`
}

type RepositoryCommits struct {
	Repository string         `json:"repository"`
	Commits    []CommitWindow `json:"commits"`
}

type CommitStatsResponse struct {
	TotalCommitContributions int                 `json:"total_commit_contributions"`
	DetailsOfCommits         []RepositoryCommits `json:"details_of_commits"`
}

type Comment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

type PullRequest struct {
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	CreatedAt  string    `json:"created_at"`
	Repository string    `json:"repository"`
	Author     string    `json:"author"`
	Comments   []Comment `json:"comments"`
}

type PRStatsResponse struct {
	PullRequests []PullRequest `json:"pull_requests"`
}

type Issue struct {
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	CreatedAt    string    `json:"created_at"`
	Repository   string    `json:"repository"`
	Author       string    `json:"author"`
	CommentCount int       `json:"comment_count"`
	Comments     []Comment `json:"comments"`
}

type IssueStatsResponse struct {
	Issues []Issue `json:"issues"`
}

type IssueCommentThread struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Comments []Comment `json:"comments"`
}

type IssueCommentsResponse struct {
	Issues []IssueCommentThread `json:"issues"`
}

type ReceivedCommentsResponse struct {
	TotalReceivedComments int `json:"total_received_comments"`
}
