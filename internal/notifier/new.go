package notifier

import (
	"github-slack-notifier/internal/store"
	"github-slack-notifier/pkg/log"
	pkgSlack "github-slack-notifier/pkg/slack"
)

// implUseCase is the private implementation of notifier.UseCase.
type implUseCase struct {
	st    store.Store
	slack pkgSlack.IClient
	l     log.Logger
}

// New creates a new notifier UseCase implementation.
func New(st store.Store, slack pkgSlack.IClient, l log.Logger) *implUseCase {
	return &implUseCase{
		st:    st,
		slack: slack,
		l:     l,
	}
}
