package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/events"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/fadilmartias/talent-pipeline/internal/scoring"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appFixture struct {
	jobs     *fakeJobs
	apps     *fakeApps
	profiles *fakeProfiles
	objects  *fakeObjects
	pub      *recordingPublisher
	job      *model.Job
}

func newAppFixture(stages ...string) *appFixture {
	job := testJob(recruiter.UserID, stages...)
	return &appFixture{
		jobs:     newFakeJobs(job),
		apps:     newFakeApps(),
		profiles: newFakeProfiles(),
		objects:  newFakeObjects(),
		pub:      &recordingPublisher{},
		job:      job,
	}
}

func (f *appFixture) usecase(policy *scoring.Policy) *ApplicationUsecase {
	return NewApplicationUsecase(f.apps, f.jobs, f.profiles, f.objects, policy, f.pub, nil).
		WithExtractor(func(filename string, data []byte) (string, error) {
			if strings.HasSuffix(filename, ".bad.pdf") {
				return "", util.ErrEmptyText
			}
			return "extracted: " + string(data), nil
		})
}

func (f *appFixture) request() dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		JobID:      f.job.ID.String(),
		Name:       "Ana Lima",
		Email:      "ana@mail.com",
		ResumeText: "Five years of Go",
	}
}

func TestSubmit_PlacesByScore(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		wantStage    string
		autoAdvanced bool
	}{
		{"below threshold stays in first stage", 54, "Applied", false},
		{"threshold advances one stage", pipeline.AutoAdvanceThreshold, "Screening", true},
		{"high score advances only one stage", 99, "Screening", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppFixture("Applied", "Screening", "Interview")
			uc := f.usecase(scoring.NewPolicy(nil).WithPlaceholderScore(tt.score))

			res, err := uc.Submit(context.Background(), nil, f.request(), nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStage, res.Application.Stage)
			assert.Equal(t, tt.autoAdvanced, res.AutoAdvanced)
			assert.True(t, res.Degraded)
			require.Len(t, f.apps.apps, 1)
			require.Len(t, f.pub.events, 1)
			assert.Equal(t, events.ApplicationSubmitted, f.pub.events[0].Type)
			assert.Equal(t, tt.wantStage, f.pub.events[0].ToStage)
		})
	}
}

func TestSubmit_JobWithoutStagesUsesDefaults(t *testing.T) {
	f := newAppFixture()
	uc := f.usecase(scoring.NewPolicy(nil).WithPlaceholderScore(80))

	res, err := uc.Submit(context.Background(), nil, f.request(), nil)
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultStages[1], res.Application.Stage)
}

func TestSubmit_Validation(t *testing.T) {
	f := newAppFixture("Applied")
	uc := f.usecase(scoring.NewPolicy(nil))

	_, err := uc.Submit(context.Background(), nil, dto.SubmitApplicationRequest{JobID: "not-a-uuid", Email: "nope"}, nil)

	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Errors, "job_id")
	assert.Contains(t, formErr.Errors, "name")
	assert.Contains(t, formErr.Errors, "email")
	assert.Empty(t, f.apps.apps)
}

func TestSubmit_UnknownJob(t *testing.T) {
	f := newAppFixture("Applied")
	req := f.request()
	req.JobID = "6f1c1f5e-0000-4000-8000-000000000000"

	_, err := f.usecase(scoring.NewPolicy(nil)).Submit(context.Background(), nil, req, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmit_ResumeFile(t *testing.T) {
	f := newAppFixture("Applied", "Screening")
	a := &stubAnalyzer{reply: `{"score": 30, "recommendation": "Reject"}`}
	uc := f.usecase(scoring.NewPolicy(a))

	req := f.request()
	req.ResumeText = ""
	res, err := uc.Submit(context.Background(), nil, req, &ResumeFile{Filename: "cv.pdf", Data: []byte("pdf bytes")})
	require.NoError(t, err)

	app := f.apps.apps[res.Application.ID]
	require.NotNil(t, app)
	assert.Equal(t, "extracted: pdf bytes", app.ResumeText)
	assert.True(t, strings.HasPrefix(app.ResumeKey, "resumes/"))
	assert.Contains(t, f.objects.blobs, app.ResumeKey)
	assert.Equal(t, "Applied", app.Stage)
	assert.Equal(t, "Reject", app.Recommendation)
	assert.Contains(t, a.users[0], "Build APIs in Go\n\nRequirements: Go, Postgres")
}

func TestSubmit_StorageFailureStillFiles(t *testing.T) {
	f := newAppFixture("Applied")
	f.objects.putErr = errBoom

	res, err := f.usecase(scoring.NewPolicy(nil)).Submit(context.Background(), nil, f.request(), &ResumeFile{Filename: "cv.txt", Data: []byte("hello")})
	require.NoError(t, err)
	assert.Empty(t, f.apps.apps[res.Application.ID].ResumeKey)
}

func TestSubmit_BadResumeFile(t *testing.T) {
	f := newAppFixture("Applied")
	uc := f.usecase(scoring.NewPolicy(nil))

	for _, name := range []string{"cv.exe", "cv.bad.pdf"} {
		_, err := uc.Submit(context.Background(), nil, f.request(), &ResumeFile{Filename: name, Data: []byte("x")})
		var formErr *util.FormError
		require.ErrorAs(t, err, &formErr, name)
		assert.Contains(t, formErr.Errors, "resume")
	}
	assert.Empty(t, f.apps.apps)
}

func TestSubmit_MissingResume(t *testing.T) {
	f := newAppFixture("Applied")
	uc := f.usecase(scoring.NewPolicy(nil))
	req := f.request()
	req.ResumeText = "  "

	_, err := uc.Submit(context.Background(), nil, req, nil)
	assert.ErrorIs(t, err, ErrMissingResume, "anonymous without resume")

	_, err = uc.Submit(context.Background(), candidate, req, nil)
	assert.ErrorIs(t, err, ErrMissingResume, "no saved profile")

	f.profiles.profiles[candidate.UserID] = &model.Profile{ID: candidate.UserID, FullName: "Ana"}
	_, err = uc.Submit(context.Background(), candidate, req, nil)
	assert.ErrorIs(t, err, ErrMissingResume, "profile without summary")
	assert.Empty(t, f.apps.apps)
}

func TestSubmit_FallsBackToProfile(t *testing.T) {
	f := newAppFixture("Applied", "Screening")
	f.profiles.profiles[candidate.UserID] = &model.Profile{
		ID:       candidate.UserID,
		FullName: "Ana Lima",
		Headline: "Go Developer",
		Summary:  "Builds distributed systems",
		Skills:   []string{"Go", "Kafka"},
	}
	a := &stubAnalyzer{reply: `{"score": 70, "recommendation": "Approve", "profile": {"full_name": "Ignored"}}`}
	req := f.request()
	req.ResumeText = ""

	res, err := f.usecase(scoring.NewPolicy(a)).Submit(context.Background(), candidate, req, nil)
	require.NoError(t, err)

	assert.Equal(t, "Screening", res.Application.Stage)
	assert.Contains(t, a.users[0], "Summary: Builds distributed systems")
	assert.Contains(t, a.users[0], "Skills: Go, Kafka")
	assert.NotContains(t, a.systems[0], `"profile"`, "profile text is not re-extracted")
	assert.Equal(t, "Ana Lima", f.profiles.profiles[candidate.UserID].FullName)
	assert.Equal(t, candidate.UserID, f.apps.apps[res.Application.ID].CandidateID)
}

func TestSubmit_SignedInRefreshesProfile(t *testing.T) {
	f := newAppFixture("Applied")
	a := &stubAnalyzer{reply: `{"score": 20, "recommendation": "Reject",
		"profile": {"full_name": "", "headline": "SRE", "summary": "Runs clusters", "skills": ["Kubernetes"]}}`}

	_, err := f.usecase(scoring.NewPolicy(a)).Submit(context.Background(), candidate, f.request(), nil)
	require.NoError(t, err)

	p := f.profiles.profiles[candidate.UserID]
	require.NotNil(t, p)
	assert.Equal(t, "Ana Lima", p.FullName, "name falls back to the submitted one")
	assert.Equal(t, "SRE", p.Headline)
	assert.Equal(t, []string{"Kubernetes"}, []string(p.Skills))
	assert.Equal(t, candidate.Email, p.Email)
}

func TestSubmit_DegradedDoesNotTouchProfile(t *testing.T) {
	f := newAppFixture("Applied")
	_, err := f.usecase(scoring.NewPolicy(&stubAnalyzer{err: errBoom})).Submit(context.Background(), candidate, f.request(), nil)
	require.NoError(t, err)
	assert.Empty(t, f.profiles.profiles)
}

func TestWithdraw(t *testing.T) {
	job := testJob(recruiter.UserID, "Applied")
	own := testApp(job, "Ana", "Applied")
	own.ResumeKey = "resumes/2026/01/own.pdf"
	theirs := testApp(job, "Bruno", "Applied")

	newUC := func() (*ApplicationUsecase, *fakeApps, *fakeObjects, *recordingPublisher) {
		apps := newFakeApps(own, theirs)
		objects := newFakeObjects()
		pub := &recordingPublisher{}
		return NewApplicationUsecase(apps, newFakeJobs(job), newFakeProfiles(), objects, scoring.NewPolicy(nil), pub, nil), apps, objects, pub
	}

	t.Run("anonymous", func(t *testing.T) {
		uc, apps, _, _ := newUC()
		assert.ErrorIs(t, uc.Withdraw(context.Background(), nil, own.ID.String()), ErrUnauthenticated)
		assert.Len(t, apps.apps, 2)
	})

	t.Run("someone else's application", func(t *testing.T) {
		uc, apps, _, pub := newUC()
		assert.ErrorIs(t, uc.Withdraw(context.Background(), candidate, theirs.ID.String()), ErrForbidden)
		assert.Len(t, apps.apps, 2)
		assert.Empty(t, pub.events)
	})

	t.Run("missing application", func(t *testing.T) {
		uc, _, _, _ := newUC()
		assert.ErrorIs(t, uc.Withdraw(context.Background(), candidate, "6f1c1f5e-0000-4000-8000-000000000000"), ErrForbidden)
	})

	t.Run("own application", func(t *testing.T) {
		uc, apps, objects, pub := newUC()
		require.NoError(t, uc.Withdraw(context.Background(), candidate, own.ID.String()))
		assert.NotContains(t, apps.apps, own.ID.String())
		assert.Equal(t, []string{own.ResumeKey}, objects.deleted)
		assert.Equal(t, []events.Type{events.ApplicationWithdrawn}, pub.types())
	})
}

func TestMyApplications(t *testing.T) {
	job := testJob(recruiter.UserID, "Applied")
	apps := newFakeApps(testApp(job, "Ana", "Applied"), testApp(job, "Bruno", "Applied"))
	uc := NewApplicationUsecase(apps, newFakeJobs(job), newFakeProfiles(), nil, scoring.NewPolicy(nil), nil, nil)

	_, err := uc.MyApplications(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	mine, err := uc.MyApplications(context.Background(), candidate)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ana", mine[0].CandidateName)
}

func TestGetApplication(t *testing.T) {
	job := testJob(recruiter.UserID, "Applied", "Interview")
	app := testApp(job, "Bruno", "Applied")
	app.ResumeKey = "resumes/2026/01/b.pdf"
	apps := newFakeApps(app)
	require.NoError(t, apps.SetStage(context.Background(), app.ID.String(), "Interview", "drag", recruiter.UserID))
	uc := NewApplicationUsecase(apps, newFakeJobs(job), newFakeProfiles(), newFakeObjects(), scoring.NewPolicy(nil), nil, nil)

	detail, err := uc.GetApplication(context.Background(), recruiter, app.ID.String())
	require.NoError(t, err)
	assert.Contains(t, detail.ResumeURL, app.ResumeKey)
	assert.Contains(t, detail.ResumeURL, "ttl=1h0m0s")
	require.Len(t, detail.History, 1)
	assert.Equal(t, "Interview", detail.History[0].ToStage)

	_, err = uc.GetApplication(context.Background(), otherRecruiter, app.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.GetApplication(context.Background(), candidate, app.ID.String())
	assert.ErrorIs(t, err, ErrForbidden, "candidate does not own Bruno's application")
}
