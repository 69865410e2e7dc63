package reconciler

import "time"

// pullRequestEvent is the shape of a GitHub pull_request event, reduced to
// the fields this pipeline consumes. Validated once here, at the
// reconciler's entry, instead of accessed ad hoc.
type pullRequestEvent struct {
	Action      string             `json:"action"`
	PullRequest pullRequestPayload `json:"pull_request"`
	Repository  repositoryPayload  `json:"repository"`
}

type pullRequestPayload struct {
	ID        int64      `json:"id"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"`
	Merged    bool       `json:"merged"`
	MergedAt  *time.Time `json:"merged_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
	Head struct {
		Ref string `json:"ref"`
	} `json:"head"`
}

type repositoryPayload struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// validate checks the fields required after the type/merge filters have
// passed. A violation here is a bug signal, not a routine drop.
func (e pullRequestEvent) validate() error {
	if e.PullRequest.Number <= 0 {
		return ErrMalformedPayload
	}
	if e.PullRequest.ID == 0 {
		return ErrMalformedPayload
	}
	return nil
}
