package notifier

import (
	"fmt"

	"github-slack-notifier/internal/model"
)

// formatMergeMessage renders the Slack notification for a merged pull
// request.
func formatMergeMessage(repo model.Repository, pr model.PullRequest) string {
	msg := fmt.Sprintf(":tada: *%s#%d merged*: %s\nby `%s` — `%s` → `%s`",
		repo.FullName, pr.Number, pr.Title, pr.Author, pr.HeadBranch, pr.BaseBranch)
	if pr.MergedAt != nil {
		msg += fmt.Sprintf("\nmerged at %s", pr.MergedAt.Format("2006-01-02 15:04 MST"))
	}
	return msg
}
