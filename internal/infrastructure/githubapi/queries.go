package githubapi

// GraphQL documents and their response envelopes. The search queries
// cap at the first 100 hits, matching GitHub's search page limit.

const totalCommitsQuery = `
query($login: String!, $from: DateTime!, $to: DateTime!) {
    user(login: $login) {
        contributionsCollection(from: $from, to: $to) {
            totalCommitContributions
        }
    }
}`

const commitsByRepositoryQuery = `
query($login: String!, $from: DateTime!, $to: DateTime!) {
    user(login: $login) {
        contributionsCollection(from: $from, to: $to) {
            commitContributionsByRepository {
                repository {
                    nameWithOwner
                }
                contributions(first: 100) {
                    nodes {
                        commitCount
                        occurredAt
                    }
                }
            }
        }
    }
}`

const pullRequestSearchQuery = `
query($query: String!) {
    search(query: $query, type: ISSUE, first: 100) {
        edges {
            node {
                ... on PullRequest {
                    title
                    url
                    createdAt
                    repository {
                        nameWithOwner
                    }
                    author {
                        login
                    }
                    comments(first: 10) {
                        nodes {
                            body
                            author {
                                login
                            }
                        }
                    }
                }
            }
        }
    }
}`

const issueSearchQuery = `
query($query: String!) {
    search(query: $query, type: ISSUE, first: 100) {
        edges {
            node {
                ... on Issue {
                    title
                    url
                    createdAt
                    repository {
                        nameWithOwner
                    }
                    author {
                        login
                    }
                    comments {
                        totalCount
                        nodes {
                            body
                            author {
                                login
                            }
                        }
                    }
                }
            }
        }
    }
}`

type actorNode struct {
	Login string `json:"login"`
}

type repositoryNode struct {
	NameWithOwner string `json:"nameWithOwner"`
}

type commentNode struct {
	Body   string     `json:"body"`
	Author *actorNode `json:"author"`
}

type totalCommitsResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				TotalCommitContributions int `json:"totalCommitContributions"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
}

type commitsByRepositoryResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				CommitContributionsByRepository []struct {
					Repository    repositoryNode `json:"repository"`
					Contributions struct {
						Nodes []struct {
							CommitCount int    `json:"commitCount"`
							OccurredAt  string `json:"occurredAt"`
						} `json:"nodes"`
					} `json:"contributions"`
				} `json:"commitContributionsByRepository"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
}

type pullRequestSearchResponse struct {
	Data struct {
		Search struct {
			Edges []struct {
				Node struct {
					Title      string         `json:"title"`
					URL        string         `json:"url"`
					CreatedAt  string         `json:"createdAt"`
					Repository repositoryNode `json:"repository"`
					Author     *actorNode     `json:"author"`
					Comments   struct {
						Nodes []commentNode `json:"nodes"`
					} `json:"comments"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"search"`
	} `json:"data"`
}

type issueSearchResponse struct {
	Data struct {
		Search struct {
			Edges []struct {
				Node struct {
					Title      string         `json:"title"`
					URL        string         `json:"url"`
					CreatedAt  string         `json:"createdAt"`
					Repository repositoryNode `json:"repository"`
					Author     *actorNode     `json:"author"`
					Comments   struct {
						TotalCount int           `json:"totalCount"`
						Nodes      []commentNode `json:"nodes"`
					} `json:"comments"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"search"`
	} `json:"data"`
}
