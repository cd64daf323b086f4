package publish

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haanhpham/autopress/adapters/event"
	"github.com/haanhpham/autopress/internal/application/service"
	taxonomyUC "github.com/haanhpham/autopress/internal/application/usecase/taxonomy"
	"github.com/haanhpham/autopress/internal/domain/article"
	"github.com/haanhpham/autopress/internal/domain/job"
	"github.com/haanhpham/autopress/internal/domain/taxonomy"
	"github.com/haanhpham/autopress/pkg/logger"
)

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*job.PublishJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]*job.PublishJob{}}
}

func (f *fakeJobRepo) Save(_ context.Context, j *job.PublishJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *j
	f.jobs[j.ID] = &copied
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*job.PublishJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Update(_ context.Context, j *job.PublishJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *j
	f.jobs[j.ID] = &copied
	return nil
}

func (f *fakeJobRepo) get(id uuid.UUID) *job.PublishJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id]
}

type fakeGenerator struct {
	out   *service.GeneratedArticle
	err   error
	calls int
}

func (f *fakeGenerator) GenerateArticle(_ context.Context, _ service.ArticleBrief) (*service.GeneratedArticle, error) {
	f.calls++
	return f.out, f.err
}

type fakeReconciler struct {
	out  *taxonomy.ResolutionResult
	err  error
	last taxonomyUC.ReconcileInput
}

func (f *fakeReconciler) Execute(_ context.Context, input taxonomyUC.ReconcileInput) (*taxonomy.ResolutionResult, error) {
	f.last = input
	return f.out, f.err
}

type fakePublisher struct {
	out  *service.PublishedPost
	err  error
	last article.Article
}

func (f *fakePublisher) PublishPost(_ context.Context, a article.Article) (*service.PublishedPost, error) {
	f.last = a
	return f.out, f.err
}

type fakeImages struct {
	url string
	err error
}

func (f *fakeImages) Attach(_ context.Context, _ string, _ string) (string, error) {
	return f.url, f.err
}

func seedJob(repo *fakeJobRepo, req job.Request) uuid.UUID {
	id := uuid.New()
	now := time.Now().UTC()
	repo.jobs[id] = &job.PublishJob{ID: id, Status: job.StatusPending, Request: req, CreatedAt: now, UpdatedAt: now}
	return id
}

func TestComposePublishesJob(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{
		Topic:         "fly fishing",
		CategoryNames: []string{"Fishing"},
		TagNames:      []string{"bass"},
		Generate:      true,
	})

	gen := &fakeGenerator{out: &service.GeneratedArticle{
		Title:    "Fly Fishing 101",
		Content:  "<p>Cast away.</p>",
		Excerpt:  "Cast away.",
		TagNames: []string{"fly fishing"},
	}}
	rec := &fakeReconciler{out: &taxonomy.ResolutionResult{CategoryIDs: []int{5}, TagIDs: []int{20, 21}}}
	pub := &fakePublisher{out: &service.PublishedPost{ID: 99, Link: "https://example.com/?p=99"}}

	uc := NewComposePostUseCase(repo, gen, rec, pub, nil, logger.NewZapLogger("development"))
	require.NoError(t, uc.Execute(context.Background(), id))

	// generated names join the caller's before reconciliation
	assert.Equal(t, []string{"Fishing"}, rec.last.CategoryNames)
	assert.Equal(t, []string{"bass", "fly fishing"}, rec.last.TagNames)

	assert.Equal(t, "Fly Fishing 101", pub.last.Title)
	assert.Equal(t, []int{5}, pub.last.CategoryIDs)
	assert.Equal(t, []int{20, 21}, pub.last.TagIDs)

	got := repo.get(id)
	assert.Equal(t, job.StatusPublished, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, 99, got.Result.PostID)
	assert.Equal(t, []int{20, 21}, got.Result.TagIDs)
}

func TestComposeGeneratorFailureFailsJob(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{Topic: "anything", Generate: true})

	gen := &fakeGenerator{err: errors.New("model melted")}
	uc := NewComposePostUseCase(repo, gen, &fakeReconciler{}, &fakePublisher{}, nil, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), id)
	require.Error(t, err)

	got := repo.get(id)
	assert.Equal(t, job.StatusFailed, got.Status)
	assert.Contains(t, got.ErrorText, "model melted")
}

func TestComposeReconcileHardFailureFailsJob(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{Title: "T", Content: "<p>c</p>", TagNames: []string{"x"}})

	rec := &fakeReconciler{err: errors.New("taxonomy listing unreachable")}
	uc := NewComposePostUseCase(repo, &fakeGenerator{}, rec, &fakePublisher{}, nil, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, job.StatusFailed, repo.get(id).Status)
}

func TestComposePublisherFailureFailsJob(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{Title: "T", Content: "<p>c</p>"})

	rec := &fakeReconciler{out: &taxonomy.ResolutionResult{CategoryIDs: []int{}, TagIDs: []int{}}}
	pub := &fakePublisher{err: errors.New("HTTP 502")}
	uc := NewComposePostUseCase(repo, &fakeGenerator{}, rec, pub, nil, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, job.StatusFailed, repo.get(id).Status)
}

func TestComposeImageFailureDegrades(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{Title: "T", Content: "<p>c</p>", ImageURL: "https://img.example.com/x.jpg"})

	rec := &fakeReconciler{out: &taxonomy.ResolutionResult{CategoryIDs: []int{}, TagIDs: []int{}}}
	pub := &fakePublisher{out: &service.PublishedPost{ID: 7}}
	images := &fakeImages{err: errors.New("upload refused")}

	uc := NewComposePostUseCase(repo, &fakeGenerator{}, rec, pub, images, logger.NewZapLogger("development"))
	require.NoError(t, uc.Execute(context.Background(), id))

	assert.Equal(t, job.StatusPublished, repo.get(id).Status)
	assert.Empty(t, pub.last.FeaturedImageURL)
}

func TestComposeAttachesImage(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{Title: "T", Content: "<p>c</p>", ImageURL: "https://img.example.com/x.jpg"})

	rec := &fakeReconciler{out: &taxonomy.ResolutionResult{CategoryIDs: []int{}, TagIDs: []int{}}}
	pub := &fakePublisher{out: &service.PublishedPost{ID: 7}}
	images := &fakeImages{url: "https://cdn.example.com/x.jpg"}

	uc := NewComposePostUseCase(repo, &fakeGenerator{}, rec, pub, images, logger.NewZapLogger("development"))
	require.NoError(t, uc.Execute(context.Background(), id))

	assert.Equal(t, "https://cdn.example.com/x.jpg", pub.last.FeaturedImageURL)
	assert.Contains(t, pub.last.Content, "https://cdn.example.com/x.jpg")
}

func TestComposeSkipsNonPendingJob(t *testing.T) {
	repo := newFakeJobRepo()
	id := seedJob(repo, job.Request{Title: "T", Content: "<p>c</p>"})
	repo.jobs[id].Status = job.StatusPublished

	pub := &fakePublisher{}
	uc := NewComposePostUseCase(repo, &fakeGenerator{}, &fakeReconciler{}, pub, nil, logger.NewZapLogger("development"))

	require.NoError(t, uc.Execute(context.Background(), id))
	assert.Empty(t, pub.last.Title) // publisher never called
}

func TestComposeUnknownJobIsSkipped(t *testing.T) {
	repo := newFakeJobRepo()
	uc := NewComposePostUseCase(repo, &fakeGenerator{}, &fakeReconciler{}, &fakePublisher{}, nil, logger.NewZapLogger("development"))
	assert.NoError(t, uc.Execute(context.Background(), uuid.New()))
}

type fakeEvents struct {
	mu       sync.Mutex
	payloads []event.PublishJobPayload
}

func (f *fakeEvents) PublishJobEvent(_ context.Context, p event.PublishJobPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	return nil
}

func TestRequestPublishCreatesPendingJob(t *testing.T) {
	repo := newFakeJobRepo()
	events := &fakeEvents{}
	uc := NewRequestPublishUseCase(repo, events, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), job.Request{Topic: "fly fishing", TagNames: []string{"bass"}})
	require.NoError(t, err)

	got := repo.get(out.JobID)
	require.NotNil(t, got)
	assert.Equal(t, job.StatusPending, got.Status)
	assert.Equal(t, "fly fishing", got.Request.Topic)

	// kafka publish runs async
	assert.Eventually(t, func() bool {
		events.mu.Lock()
		defer events.mu.Unlock()
		return len(events.payloads) == 1 && events.payloads[0].JobID == out.JobID
	}, time.Second, 10*time.Millisecond)
}

func TestRequestPublishRejectsEmptyRequest(t *testing.T) {
	uc := NewRequestPublishUseCase(newFakeJobRepo(), &fakeEvents{}, logger.NewZapLogger("development"))
	_, err := uc.Execute(context.Background(), job.Request{})
	assert.Error(t, err)
}
