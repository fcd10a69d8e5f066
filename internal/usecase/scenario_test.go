package usecase_test

import (
	"context"
	"encoding/base64"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDB is an in-memory stand-in for the postgres repositories with the same
// uniqueness and not-found behaviour.
type memDB struct {
	mu        sync.Mutex
	seq       int64
	companies map[int64]domain.Company
	admins    map[int64]domain.Admin
	jobs      map[int64]domain.Job
	apps      map[int64]domain.Application
}

func newMemDB() *memDB {
	return &memDB{
		companies: map[int64]domain.Company{},
		admins:    map[int64]domain.Admin{},
		jobs:      map[int64]domain.Job{},
		apps:      map[int64]domain.Application{},
	}
}

func (db *memDB) next() int64 {
	db.seq++
	return db.seq
}

type memCompanies struct{ *memDB }
type memAdmins struct{ *memDB }
type memJobs struct{ *memDB }
type memApps struct{ *memDB }

func (r memCompanies) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memCompanies) GetBySlug(_ context.Context, slug string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memCompanies) Update(_ context.Context, c *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.companies[c.ID] = *c
	return nil
}

func (r memAdmins) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memAdmins) CreateWithCompany(_ context.Context, c *domain.Company, a *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Slug == c.Slug {
			return apperror.Conflict("Company slug is already taken")
		}
	}
	for _, existing := range r.admins {
		if existing.Username == a.Username {
			return apperror.Conflict("Username is already taken")
		}
	}
	c.ID, c.CreatedAt = r.next(), time.Now()
	a.ID, a.CompanyID, a.CreatedAt = r.next(), c.ID, time.Now()
	r.companies[c.ID] = *c
	r.admins[a.ID] = *a
	return nil
}

func (r memJobs) Create(_ context.Context, job *domain.Job, slugFor func(int64) string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID, job.PostedAt = r.next(), time.Now()
	job.Slug = slugFor(job.ID)
	r.jobs[job.ID] = *job
	return nil
}

func (r memJobs) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

func (r memJobs) FetchByScope(_ context.Context, scope domain.CompanyScope) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Job{}
	for _, j := range r.jobs {
		if scope.All || j.CompanyID == scope.CompanyID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID > out[k].ID })
	return out, nil
}

func (r memJobs) FetchPublishedByCompanySlug(_ context.Context, slug string) ([]domain.JobWithCompany, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.JobWithCompany{}
	for _, j := range r.jobs {
		c := r.companies[j.CompanyID]
		if c.Slug == slug && j.PubliclyVisible() {
			out = append(out, domain.JobWithCompany{Job: j, CompanyName: c.Name, CompanySlug: c.Slug})
		}
	}
	return out, nil
}

func (r memJobs) GetPublishedBySlugs(ctx context.Context, companySlug, jobSlug string) (*domain.JobWithCompany, error) {
	jobs, _ := r.FetchPublishedByCompanySlug(ctx, companySlug)
	for _, j := range jobs {
		if j.Slug == jobSlug {
			return &j, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memJobs) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	job.CompanyID = stored.CompanyID
	r.jobs[job.ID] = *job
	return nil
}

func (r memApps) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID, app.AppliedAt = r.next(), time.Now()
	r.apps[app.ID] = *app
	return nil
}

func (r memApps) joined(a domain.Application) domain.Application {
	j := r.jobs[a.JobID]
	a.CompanyID, a.JobTitle = j.CompanyID, &j.Title
	return a
}

func (r memApps) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a = r.joined(a)
	return &a, nil
}

func (r memApps) FetchByScope(_ context.Context, scope domain.CompanyScope) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Application{}
	for _, a := range r.apps {
		a = r.joined(a)
		if scope.All || a.CompanyID == scope.CompanyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memApps) FetchByJobID(_ context.Context, jobID int64) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Application{}
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, r.joined(a))
		}
	}
	return out, nil
}

func (r memApps) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	r.apps[id] = a
	return nil
}

type board struct {
	db        *memDB
	auth      domain.AuthUsecase
	companies domain.CompanyUsecase
	jobs      domain.JobUsecase
	apps      domain.ApplicationUsecase
}

func newBoard(t *testing.T, legacySecret string) *board {
	db := newMemDB()
	guard := usecase.NewGuard()
	validate := validation.New()
	legacyHash := ""
	if legacySecret != "" {
		legacyHash = mustHash(t, legacySecret)
	}
	return &board{
		db:        db,
		auth:      usecase.NewAuthUsecase(memAdmins{db}, legacyHash),
		companies: usecase.NewCompanyUsecase(memAdmins{db}, memCompanies{db}, guard, validate),
		jobs:      usecase.NewJobUsecase(memJobs{db}, memCompanies{db}, guard, validate),
		apps:      usecase.NewApplicationUsecase(memApps{db}, memJobs{db}, guard, validate),
	}
}

func (b *board) login(t *testing.T, header string) domain.Identity {
	t.Helper()
	creds, err := auth.ParseBasicHeader(header)
	require.NoError(t, err)
	id, err := b.auth.Authenticate(context.Background(), creds)
	require.NoError(t, err)
	return id
}

func basic(userPass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(userPass))
}

func TestAcmeScenario(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, "legacy-secret")

	_, err := b.companies.Register(ctx, domain.Registration{
		CompanyName: "Acme", CompanySlug: "acme", AdminUsername: "alice", AdminPassword: "secret1",
	})
	require.NoError(t, err)
	_, err = b.companies.Register(ctx, domain.Registration{
		CompanyName: "Globex", AdminUsername: "hank", AdminPassword: "secret2",
	})
	require.NoError(t, err)

	alice := b.login(t, basic("alice:secret1"))
	hank := b.login(t, basic("hank:secret2"))
	require.IsType(t, domain.ScopedAdmin{}, alice)

	job, err := b.jobs.CreateJob(ctx, alice, domain.NewJob{Title: "Backend Engineer", Description: "Build APIs in Go"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^backend-engineer-\d+$`), job.Slug)
	assert.Equal(t, domain.JobSlug("Backend Engineer", job.ID), job.Slug)
	assert.Equal(t, domain.JobStatusDraft, job.Status)

	public, err := b.jobs.ListPublicJobs(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, public, "draft jobs are not public")

	_, err = b.jobs.UpdateJob(ctx, alice, job.ID, domain.JobPatch{Status: strPtr("published"), IsActive: boolPtr(true)})
	require.NoError(t, err)

	public, err = b.jobs.ListPublicJobs(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, job.Slug, public[0].Slug)
	assert.Equal(t, "Acme", public[0].CompanyName)

	detail, err := b.jobs.GetPublicJob(ctx, "acme", job.Slug)
	require.NoError(t, err)
	assert.Equal(t, job.ID, detail.ID)

	app, err := b.apps.Submit(ctx, domain.ApplicationSubmission{
		JobID: job.ID, FullName: "Jane Doe", Email: "jane@example.com",
		ResumePath: "resumes/6f1c1f5e-8a0e-4b61-9d1e-4a54f3d0a2b1.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusNew, app.Status)

	_, err = b.apps.UpdateApplicationStatus(ctx, alice, app.ID, "reviewing")
	require.NoError(t, err)
	got, err := b.apps.GetApplication(ctx, alice, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusReviewing, got.Status)

	t.Run("Another company's admin cannot touch Acme's records", func(t *testing.T) {
		_, err := b.apps.UpdateApplicationStatus(ctx, hank, app.ID, "rejected")
		assert.True(t, apperror.Is(err, apperror.KindForbidden))

		_, err = b.apps.GetApplication(ctx, hank, app.ID)
		assert.True(t, apperror.Is(err, apperror.KindForbidden))

		_, err = b.jobs.UpdateJob(ctx, hank, job.ID, domain.JobPatch{Title: strPtr("Hijacked")})
		assert.True(t, apperror.Is(err, apperror.KindForbidden))

		hankApps, err := b.apps.ListApplications(ctx, hank, nil)
		require.NoError(t, err)
		assert.Empty(t, hankApps)

		assert.Equal(t, domain.ApplicationStatusReviewing, b.db.apps[app.ID].Status)
		assert.Equal(t, "Backend Engineer", b.db.jobs[job.ID].Title)
	})

	t.Run("Invalid status leaves the stored status unchanged", func(t *testing.T) {
		_, err := b.apps.UpdateApplicationStatus(ctx, alice, app.ID, "reviewed")
		assert.True(t, apperror.Is(err, apperror.KindInvalidStatus))
		assert.Equal(t, domain.ApplicationStatusReviewing, b.db.apps[app.ID].Status)
	})

	t.Run("Legacy caller sees and may act on every company", func(t *testing.T) {
		legacy := b.login(t, basic(":legacy-secret"))
		assert.Equal(t, domain.LegacyCaller{}, legacy)

		all, err := b.apps.ListApplications(ctx, legacy, nil)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		_, err = b.apps.UpdateApplicationStatus(ctx, legacy, app.ID, "contacted")
		require.NoError(t, err)

		settings, err := b.companies.GetSettings(ctx, legacy)
		require.NoError(t, err)
		assert.Nil(t, settings)
	})

	t.Run("Wrong password and unknown user are both InvalidCredentials", func(t *testing.T) {
		for _, h := range []string{basic("alice:wrong"), basic("nobody:secret1"), basic("wrong-legacy")} {
			creds, err := auth.ParseBasicHeader(h)
			require.NoError(t, err)
			_, err = b.auth.Authenticate(ctx, creds)
			assert.True(t, apperror.Is(err, apperror.KindInvalidCredentials), h)
		}
	})

	t.Run("Slugs stay unique across equal titles", func(t *testing.T) {
		again, err := b.jobs.CreateJob(ctx, alice, domain.NewJob{Title: "Backend Engineer", Description: "again"})
		require.NoError(t, err)
		assert.NotEqual(t, job.Slug, again.Slug)
	})
}
