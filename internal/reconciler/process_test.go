package reconciler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github-slack-notifier/internal/model"
	"github-slack-notifier/internal/queue"
	"github-slack-notifier/internal/reconciler"
	"github-slack-notifier/internal/store"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type prKey struct {
	repoID int64
	number int
}

// mockStore is an in-memory Store with repository fixtures and upsert
// semantics matching the relational unique constraint.
type mockStore struct {
	repos   []model.Repository
	prs     map[prKey]model.PullRequest
	nextID  int64
	upserts int
	fail    bool
}

func newMockStore(repos ...model.Repository) *mockStore {
	return &mockStore{
		repos:  repos,
		prs:    make(map[prKey]model.PullRequest),
		nextID: 1,
	}
}

func (m *mockStore) GetRepository(ctx context.Context, opt store.GetRepositoryOptions) (model.Repository, error) {
	if m.fail {
		return model.Repository{}, store.ErrFailedToGet
	}
	for _, r := range m.repos {
		if opt.ID != 0 && r.ID == opt.ID {
			return r, nil
		}
		if opt.ID == 0 && opt.GithubRepoID != 0 && r.GithubRepoID == opt.GithubRepoID {
			return r, nil
		}
		if opt.ID == 0 && opt.GithubRepoID == 0 && opt.FullName != "" && r.FullName == opt.FullName {
			return r, nil
		}
	}
	return model.Repository{}, nil
}

func (m *mockStore) UpsertPullRequest(ctx context.Context, opt store.UpsertPullRequestOptions) (model.PullRequest, error) {
	if m.fail {
		return model.PullRequest{}, store.ErrFailedToUpsert
	}
	m.upserts++
	key := prKey{repoID: opt.RepositoryID, number: opt.Number}
	pr, ok := m.prs[key]
	if !ok {
		pr = model.PullRequest{ID: m.nextID, RepositoryID: opt.RepositoryID, Number: opt.Number}
		m.nextID++
	}
	pr.GithubPRID = opt.GithubPRID
	pr.Title = opt.Title
	pr.Body = opt.Body
	pr.Author = opt.Author
	pr.State = opt.State
	pr.BaseBranch = opt.BaseBranch
	pr.HeadBranch = opt.HeadBranch
	pr.MergedAt = opt.MergedAt
	pr.CreatedAt = opt.CreatedAt
	pr.UpdatedAt = opt.UpdatedAt
	m.prs[key] = pr
	return pr, nil
}

func (m *mockStore) GetPullRequest(ctx context.Context, opt store.GetPullRequestOptions) (model.PullRequest, error) {
	for _, pr := range m.prs {
		if pr.ID == opt.ID {
			return pr, nil
		}
	}
	return model.PullRequest{}, nil
}

type mockProducer struct {
	enqueued []enqueuedJob
	fail     bool
}

type enqueuedJob struct {
	kind    string
	payload any
}

func (m *mockProducer) Enqueue(ctx context.Context, kind string, payload any) error {
	if m.fail {
		return errors.New("queue down")
	}
	m.enqueued = append(m.enqueued, enqueuedJob{kind: kind, payload: payload})
	return nil
}

// fixtures

const trackedRepoID = 42

func trackedRepo() model.Repository {
	return model.Repository{
		ID:             7,
		GithubRepoID:   trackedRepoID,
		FullName:       "acme/widgets",
		SlackChannelID: "C123",
	}
}

func mergeEvent(number int, opts ...func(map[string]any)) model.WebhookEvent {
	pr := map[string]any{
		"id":         9001,
		"number":     number,
		"title":      "Add frobnicator",
		"body":       "Implements the frobnicator.",
		"state":      "closed",
		"merged":     true,
		"merged_at":  "2025-06-01T12:00:00Z",
		"created_at": "2025-05-30T09:00:00Z",
		"updated_at": "2025-06-01T12:00:00Z",
		"user":       map[string]any{"login": "octocat"},
		"base":       map[string]any{"ref": "main"},
		"head":       map[string]any{"ref": "feature/frob"},
	}
	payload := map[string]any{
		"action":       "closed",
		"pull_request": pr,
		"repository":   map[string]any{"id": trackedRepoID, "full_name": "acme/widgets"},
	}
	for _, opt := range opts {
		opt(payload)
	}
	raw, _ := json.Marshal(payload)
	return model.WebhookEvent{
		EventType:  "pull_request",
		DeliveryID: fmt.Sprintf("delivery-%d", number),
		Payload:    raw,
	}
}

func newUseCase(st *mockStore, p *mockProducer) reconciler.UseCase {
	return reconciler.New(st, p, reconciler.DedupeConfig{CacheSize: 16, CacheTTL: time.Minute}, &mockLogger{})
}

// tests

func TestProcessIgnoresOtherEventTypes(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	event := model.WebhookEvent{
		EventType:  "push",
		DeliveryID: "d-push",
		Payload:    json.RawMessage(`{"ref":"refs/heads/main"}`),
	}
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.upserts != 0 {
		t.Errorf("expected no upserts, got %d", st.upserts)
	}
	if len(p.enqueued) != 0 {
		t.Errorf("expected no notifications, got %d", len(p.enqueued))
	}
}

func TestProcessIgnoresUnmergedPullRequest(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	event := mergeEvent(123, func(payload map[string]any) {
		pr := payload["pull_request"].(map[string]any)
		pr["merged"] = false
	})
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.upserts != 0 || len(p.enqueued) != 0 {
		t.Errorf("expected no side effects, got %d upserts, %d notifications", st.upserts, len(p.enqueued))
	}
}

func TestProcessIgnoresMissingMergedFlag(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	event := mergeEvent(123, func(payload map[string]any) {
		pr := payload["pull_request"].(map[string]any)
		delete(pr, "merged")
	})
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.upserts != 0 || len(p.enqueued) != 0 {
		t.Errorf("expected no side effects, got %d upserts, %d notifications", st.upserts, len(p.enqueued))
	}
}

func TestProcessDropsUnknownRepository(t *testing.T) {
	st := newMockStore() // no tracked repositories
	p := &mockProducer{}
	uc := newUseCase(st, p)

	if err := uc.Process(context.Background(), mergeEvent(123)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.upserts != 0 || len(p.enqueued) != 0 {
		t.Errorf("expected silent drop, got %d upserts, %d notifications", st.upserts, len(p.enqueued))
	}
}

func TestProcessCreatesPullRequestAndNotifies(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	if err := uc.Process(context.Background(), mergeEvent(999)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(st.prs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(st.prs))
	}
	pr := st.prs[prKey{repoID: 7, number: 999}]
	if pr.ID == 0 {
		t.Fatal("expected row keyed by (repository, 999)")
	}
	if pr.Title != "Add frobnicator" {
		t.Errorf("title = %q", pr.Title)
	}
	if pr.Author != "octocat" {
		t.Errorf("author = %q", pr.Author)
	}
	if pr.BaseBranch != "main" || pr.HeadBranch != "feature/frob" {
		t.Errorf("branches = %q -> %q", pr.HeadBranch, pr.BaseBranch)
	}
	if pr.State != model.PullRequestStateClosed {
		t.Errorf("state = %q", pr.State)
	}
	if pr.GithubPRID != "9001" {
		t.Errorf("github_pr_id = %q", pr.GithubPRID)
	}
	if pr.MergedAt == nil {
		t.Error("expected merged_at from payload")
	}

	if len(p.enqueued) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(p.enqueued))
	}
	if p.enqueued[0].kind != queue.KindNotifyTeams {
		t.Errorf("kind = %q", p.enqueued[0].kind)
	}
	args, ok := p.enqueued[0].payload.(queue.NotifyTeamsArgs)
	if !ok || args.PullRequestID != pr.ID {
		t.Errorf("notification payload = %#v, want pull request id %d", p.enqueued[0].payload, pr.ID)
	}
}

func TestProcessUpdatesExistingRowInPlace(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	// Pre-existing row with a different title and external id.
	st.prs[prKey{repoID: 7, number: 888}] = model.PullRequest{
		ID:           55,
		RepositoryID: 7,
		Number:       888,
		GithubPRID:   "1",
		Title:        "Old title",
	}
	st.nextID = 56

	event := mergeEvent(888)
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(st.prs) != 1 {
		t.Fatalf("expected row count unchanged, got %d", len(st.prs))
	}
	pr := st.prs[prKey{repoID: 7, number: 888}]
	if pr.ID != 55 {
		t.Errorf("expected same row id 55, got %d", pr.ID)
	}
	if pr.Title != "Add frobnicator" {
		t.Errorf("title not updated: %q", pr.Title)
	}
	if pr.GithubPRID != "9001" {
		t.Errorf("github_pr_id not overwritten: %q", pr.GithubPRID)
	}
	if len(p.enqueued) != 1 {
		t.Errorf("expected 1 notification, got %d", len(p.enqueued))
	}
}

func TestProcessSkipsRedeliveredDeliveryID(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	event := mergeEvent(123)
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("redelivery: %v", err)
	}

	if st.upserts != 1 {
		t.Errorf("expected 1 upsert, got %d", st.upserts)
	}
	if len(p.enqueued) != 1 {
		t.Errorf("expected duplicate notification suppressed, got %d", len(p.enqueued))
	}
}

func TestProcessReplaysDistinctDeliveriesIdempotently(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	first := mergeEvent(123)
	second := mergeEvent(123)
	second.DeliveryID = "delivery-123-redelivered"

	if err := uc.Process(context.Background(), first); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := uc.Process(context.Background(), second); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	// Same final state, no duplicate rows; a second notification is the
	// documented at-least-once behavior.
	if len(st.prs) != 1 {
		t.Errorf("expected 1 row, got %d", len(st.prs))
	}
	if st.upserts != 2 {
		t.Errorf("expected 2 upserts, got %d", st.upserts)
	}
	if len(p.enqueued) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(p.enqueued))
	}
}

func TestProcessEmptyDeliveryIDBypassesCache(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	event := mergeEvent(123)
	event.DeliveryID = ""

	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if st.upserts != 2 {
		t.Errorf("expected both deliveries processed, got %d upserts", st.upserts)
	}
}

func TestProcessFailsOnMalformedPayload(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{}
	uc := newUseCase(st, p)

	// Merged event passing all filters but missing the PR number.
	event := mergeEvent(123, func(payload map[string]any) {
		pr := payload["pull_request"].(map[string]any)
		delete(pr, "number")
	})

	err := uc.Process(context.Background(), event)
	if !errors.Is(err, reconciler.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if st.upserts != 0 || len(p.enqueued) != 0 {
		t.Errorf("expected no partial effects, got %d upserts, %d notifications", st.upserts, len(p.enqueued))
	}
}

func TestProcessPropagatesStoreFailure(t *testing.T) {
	st := newMockStore(trackedRepo())
	st.fail = true
	p := &mockProducer{}
	uc := newUseCase(st, p)

	if err := uc.Process(context.Background(), mergeEvent(123)); err == nil {
		t.Fatal("expected error from failing store")
	}
	if len(p.enqueued) != 0 {
		t.Errorf("expected no notifications, got %d", len(p.enqueued))
	}
}

func TestProcessEnqueueFailureLeavesDeliveryRetryable(t *testing.T) {
	st := newMockStore(trackedRepo())
	p := &mockProducer{fail: true}
	uc := newUseCase(st, p)

	event := mergeEvent(123)
	if err := uc.Process(context.Background(), event); err == nil {
		t.Fatal("expected error when notification enqueue fails")
	}

	// The retry must not be blocked by the idempotency cache.
	p.fail = false
	if err := uc.Process(context.Background(), event); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(p.enqueued) != 1 {
		t.Errorf("expected notification on retry, got %d", len(p.enqueued))
	}
}
