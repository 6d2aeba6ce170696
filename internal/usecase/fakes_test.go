package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/events"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/repository"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

var (
	recruiter      = &auth.Identity{UserID: "rec-1", Email: "rec@acme.io", Role: auth.RoleRecruiter}
	otherRecruiter = &auth.Identity{UserID: "rec-2", Email: "other@acme.io", Role: auth.RoleRecruiter}
	candidate      = &auth.Identity{UserID: "cand-1", Email: "ana@mail.com", Role: auth.RoleCandidate}
)

type fakeJobs struct {
	jobs       map[string]*model.Job
	embeddings map[string]pgvector.Vector
	searchTopK int
	lastFilter repository.JobFilter
}

func containsFold(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func newFakeJobs(jobs ...*model.Job) *fakeJobs {
	f := &fakeJobs{jobs: map[string]*model.Job{}, embeddings: map[string]pgvector.Vector{}}
	for _, j := range jobs {
		f.jobs[j.ID.String()] = j
	}
	return f
}

func (f *fakeJobs) CreateJob(_ context.Context, job *model.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = time.Now()
	f.jobs[job.ID.String()] = job
	return nil
}

func (f *fakeJobs) FindJobByID(_ context.Context, id string) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) GetJobs(_ context.Context, filter repository.JobFilter) ([]model.Job, error) {
	f.lastFilter = filter
	var out []model.Job
	for _, j := range f.jobs {
		if filter.RecruiterID != "" && j.RecruiterID != filter.RecruiterID {
			continue
		}
		if filter.CompanyID != "" && (j.CompanyID == nil || j.CompanyID.String() != filter.CompanyID) {
			continue
		}
		if filter.Query != "" {
			fields := []string{j.Title, j.Description}
			if filter.ByCompany {
				fields = []string{j.Company}
			}
			if !containsFold(fields, filter.Query) {
				continue
			}
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Title < out[b].Title })
	return out, nil
}

func (f *fakeJobs) UpdateStages(_ context.Context, id string, stages []string) error {
	j, ok := f.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	j.Stages = stages
	return nil
}

func (f *fakeJobs) UpdateEmbedding(_ context.Context, id string, embedding pgvector.Vector) error {
	f.embeddings[id] = embedding
	return nil
}

func (f *fakeJobs) SearchJobs(_ context.Context, _ pgvector.Vector, topK int) ([]model.Job, error) {
	f.searchTopK = topK
	var out []model.Job
	for id, j := range f.jobs {
		if _, ok := f.embeddings[id]; ok && len(out) < topK {
			out = append(out, *j)
		}
	}
	return out, nil
}

type fakeCompanies struct {
	companies map[string]*model.Company
}

func newFakeCompanies(cs ...*model.Company) *fakeCompanies {
	f := &fakeCompanies{companies: map[string]*model.Company{}}
	for _, c := range cs {
		f.companies[c.ID.String()] = c
	}
	return f
}

func (f *fakeCompanies) CreateCompany(_ context.Context, c *model.Company) error {
	cp := *c
	f.companies[c.ID.String()] = &cp
	return nil
}

func (f *fakeCompanies) FindCompanyByID(_ context.Context, id string) (*model.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanies) GetCompanies(_ context.Context, ownerID string) ([]model.Company, error) {
	var out []model.Company
	for _, c := range f.companies {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (f *fakeCompanies) UpdateCompany(_ context.Context, c *model.Company) error {
	if _, ok := f.companies[c.ID.String()]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.companies[c.ID.String()] = &cp
	return nil
}

type fakeApps struct {
	mu          sync.Mutex
	apps        map[string]*model.Application
	transitions []model.StageTransition
	setStageErr error
	setCalls    int
}

func newFakeApps(apps ...*model.Application) *fakeApps {
	f := &fakeApps{apps: map[string]*model.Application{}}
	for _, a := range apps {
		f.apps[a.ID.String()] = a
	}
	return f
}

func (f *fakeApps) Create(_ context.Context, app *model.Application) error {
	f.apps[app.ID.String()] = app
	return nil
}

func (f *fakeApps) FindByID(_ context.Context, id string) (*model.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApps) FindByJob(_ context.Context, jobID string) ([]model.Application, error) {
	var out []model.Application
	for _, a := range f.apps {
		if a.JobID.String() == jobID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CandidateName < out[j].CandidateName })
	return out, nil
}

func (f *fakeApps) FindByCandidate(_ context.Context, candidateID, email string) ([]model.Application, error) {
	var out []model.Application
	for _, a := range f.apps {
		if a.CandidateID == candidateID || strings.EqualFold(a.CandidateEmail, email) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApps) SetStage(_ context.Context, id, stage, source, actorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setStageErr != nil {
		return f.setStageErr
	}
	a, ok := f.apps[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.transitions = append(f.transitions, model.StageTransition{
		ApplicationID: a.ID,
		JobID:         a.JobID,
		FromStage:     a.Stage,
		ToStage:       stage,
		Source:        source,
		ActorID:       actorID,
	})
	a.Stage = stage
	return nil
}

func (f *fakeApps) Delete(_ context.Context, id string) error {
	if _, ok := f.apps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.apps, id)
	return nil
}

func (f *fakeApps) Transitions(_ context.Context, id string) ([]model.StageTransition, error) {
	var out []model.StageTransition
	for _, t := range f.transitions {
		if t.ApplicationID.String() == id {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeProfiles struct {
	profiles map[string]*model.Profile
}

func newFakeProfiles(ps ...*model.Profile) *fakeProfiles {
	f := &fakeProfiles{profiles: map[string]*model.Profile{}}
	for _, p := range ps {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) FindByID(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *model.Profile) error {
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

type fakeObjects struct {
	blobs   map[string][]byte
	putErr  error
	deleted []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{blobs: map[string][]byte{}}
}

func (f *fakeObjects) Put(_ context.Context, key string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.blobs, key)
	return nil
}

func (f *fakeObjects) SignedURL(key string, ttl time.Duration) (string, error) {
	return "https://files.test/" + key + "?ttl=" + ttl.String(), nil
}

type fakeEmbedder struct {
	err   error
	texts []string
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type stubAnalyzer struct {
	reply   string
	err     error
	systems []string
	users   []string
}

func (s *stubAnalyzer) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.systems = append(s.systems, systemPrompt)
	s.users = append(s.users, userPrompt)
	return s.reply, s.err
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	var out []events.Type
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errBoom = errors.New("boom")

func testJob(recruiterID string, stages ...string) *model.Job {
	return &model.Job{
		ID:           uuid.New(),
		RecruiterID:  recruiterID,
		Title:        "Backend Engineer",
		Description:  "Build APIs in Go",
		Requirements: []string{"Go", "Postgres"},
		Stages:       stages,
	}
}

func testApp(job *model.Job, name, stage string) *model.Application {
	score := 60
	return &model.Application{
		ID:             uuid.New(),
		JobID:          job.ID,
		CandidateName:  name,
		CandidateEmail: strings.ToLower(name) + "@mail.com",
		Score:          &score,
		Recommendation: "Approve",
		Stage:          stage,
		CreatedAt:      time.Now(),
	}
}
