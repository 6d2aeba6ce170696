package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/scoring"
	"github.com/fadilmartias/talent-pipeline/internal/util"
)

type ProfileUsecase struct {
	profiles ProfileStore
	policy   *scoring.Policy
	extract  TextExtractor
}

func NewProfileUsecase(profiles ProfileStore, policy *scoring.Policy) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, policy: policy, extract: util.ExtractResumeText}
}

func (uc *ProfileUsecase) WithExtractor(fn TextExtractor) *ProfileUsecase {
	uc.extract = fn
	return uc
}

// GetProfile returns the caller's profile, or an empty one carrying their
// email when nothing has been saved yet.
func (uc *ProfileUsecase) GetProfile(ctx context.Context, id *auth.Identity) (*dto.ProfileDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	p, err := uc.profiles.FindByID(ctx, id.UserID)
	if err != nil {
		if !errors.Is(mapStoreErr(err), ErrNotFound) {
			return nil, err
		}
		p = &model.Profile{ID: id.UserID, Email: id.Email}
	}
	out := dto.NewProfileDTO(p)
	return &out, nil
}

func (uc *ProfileUsecase) UpdateProfile(ctx context.Context, id *auth.Identity, req dto.UpdateProfileRequest) (*dto.ProfileDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, util.NewFormError("missing required fields", map[string]string{"full_name": "full name is required"})
	}

	p := &model.Profile{
		ID:           id.UserID,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        id.Email,
		Headline:     strings.TrimSpace(req.Headline),
		Summary:      strings.TrimSpace(req.Summary),
		Skills:       splitList(req.Skills),
		LinkedInURL:  strings.TrimSpace(req.LinkedInURL),
		PortfolioURL: strings.TrimSpace(req.PortfolioURL),
	}
	if err := uc.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	out := dto.NewProfileDTO(p)
	return &out, nil
}

// ParseResume reads a resume and returns the extracted profile without
// saving it. When analysis fails the placeholder summary says why.
func (uc *ProfileUsecase) ParseResume(ctx context.Context, id *auth.Identity, file *ResumeFile) (*dto.ProfileDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	if file == nil || len(file.Data) == 0 {
		return nil, util.NewFormError("invalid resume", map[string]string{"resume": "resume file is required"})
	}
	if !util.SupportedResumeExt(file.Filename) {
		return nil, util.NewFormError("invalid resume", map[string]string{"resume": "resume must be a PDF, DOCX or TXT file"})
	}
	text, err := uc.extract(file.Filename, file.Data)
	if err != nil {
		log.Printf("ParseResume: extraction failed for %s: %v", file.Filename, err)
		return nil, util.NewFormError("invalid resume", map[string]string{"resume": "could not read text from the resume"})
	}

	prof := uc.policy.ExtractProfile(ctx, text)
	return &dto.ProfileDTO{
		ID:           id.UserID,
		FullName:     prof.FullName,
		Email:        id.Email,
		Headline:     prof.Headline,
		Summary:      prof.Summary,
		Skills:       append([]string{}, prof.Skills...),
		LinkedInURL:  prof.LinkedInURL,
		PortfolioURL: prof.PortfolioURL,
	}, nil
}
