package usecase

import (
	"context"
	"testing"

	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/scoring"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_EmptyWhenUnsaved(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfiles(), scoring.NewPolicy(nil))

	p, err := uc.GetProfile(context.Background(), candidate)
	require.NoError(t, err)
	assert.Equal(t, candidate.Email, p.Email)
	assert.Empty(t, p.FullName)
	assert.NotNil(t, p.Skills)

	_, err = uc.GetProfile(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateProfile(t *testing.T) {
	profiles := newFakeProfiles()
	uc := NewProfileUsecase(profiles, scoring.NewPolicy(nil))

	_, err := uc.UpdateProfile(context.Background(), candidate, dto.UpdateProfileRequest{})
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)

	p, err := uc.UpdateProfile(context.Background(), candidate, dto.UpdateProfileRequest{
		FullName: " Ana Lima ",
		Summary:  "Backend",
		Skills:   "Go, Postgres,, Redis ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", p.FullName)
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, p.Skills)
	assert.Equal(t, "Backend", profiles.profiles[candidate.UserID].Summary)
}

func TestParseResume(t *testing.T) {
	extractor := func(_ string, data []byte) (string, error) { return string(data), nil }

	a := &stubAnalyzer{reply: `{"full_name": "Ana", "headline": "Go Dev", "skills": ["Go"]}`}
	uc := NewProfileUsecase(newFakeProfiles(), scoring.NewPolicy(a)).WithExtractor(extractor)
	p, err := uc.ParseResume(context.Background(), candidate, &ResumeFile{Filename: "cv.txt", Data: []byte("my resume")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, []string{"Go"}, p.Skills)
	assert.Equal(t, "CV text:\nmy resume", a.users[0])

	offline := NewProfileUsecase(newFakeProfiles(), scoring.NewPolicy(nil)).WithExtractor(extractor)
	p, err = offline.ParseResume(context.Background(), candidate, &ResumeFile{Filename: "cv.txt", Data: []byte("my resume")})
	require.NoError(t, err)
	assert.Contains(t, p.Summary, "EXTRACTION FAILED")

	_, err = offline.ParseResume(context.Background(), candidate, &ResumeFile{Filename: "cv.png", Data: []byte("x")})
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Errors, "resume")

	_, err = offline.ParseResume(context.Background(), candidate, nil)
	require.ErrorAs(t, err, &formErr)
}
