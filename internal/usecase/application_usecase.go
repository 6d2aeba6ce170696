package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/events"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/fadilmartias/talent-pipeline/internal/scoring"
	"github.com/fadilmartias/talent-pipeline/internal/storage"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/google/uuid"
)

type ApplicationUsecase struct {
	apps          ApplicationStore
	jobs          JobStore
	profiles      ProfileStore
	objects       ObjectStore
	policy        *scoring.Policy
	publisher     events.Publisher
	extract       TextExtractor
	defaultStages pipeline.Stages
}

func NewApplicationUsecase(
	apps ApplicationStore,
	jobs JobStore,
	profiles ProfileStore,
	objects ObjectStore,
	policy *scoring.Policy,
	publisher events.Publisher,
	defaultStages pipeline.Stages,
) *ApplicationUsecase {
	return &ApplicationUsecase{
		apps:          apps,
		jobs:          jobs,
		profiles:      profiles,
		objects:       objects,
		policy:        policy,
		publisher:     publisher,
		extract:       util.ExtractResumeText,
		defaultStages: defaultStages.OrDefault(),
	}
}

// WithExtractor replaces the resume text extractor.
func (uc *ApplicationUsecase) WithExtractor(fn TextExtractor) *ApplicationUsecase {
	uc.extract = fn
	return uc
}

// Submit scores a new application and files it under its initial stage.
// Identity is optional; when present the candidate's profile is reused or
// refreshed from the resume.
func (uc *ApplicationUsecase) Submit(ctx context.Context, id *auth.Identity, req dto.SubmitApplicationRequest, file *ResumeFile) (*dto.SubmitApplicationResponse, error) {
	req.JobID = strings.TrimSpace(req.JobID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	job, err := uc.jobs.FindJobByID(ctx, req.JobID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	candidateText := strings.TrimSpace(req.ResumeText)
	resumeKey := ""
	if file != nil && len(file.Data) > 0 {
		if !util.SupportedResumeExt(file.Filename) {
			return nil, util.NewFormError("invalid resume", map[string]string{"resume": "resume must be a PDF, DOCX or TXT file"})
		}
		text, err := uc.extract(file.Filename, file.Data)
		if err != nil {
			log.Printf("Submit: resume extraction failed for %s: %v", file.Filename, err)
			return nil, util.NewFormError("invalid resume", map[string]string{"resume": "could not read text from the resume"})
		}
		candidateText = text
		resumeKey = uc.storeResume(ctx, file)
	}

	extractProfile := id != nil
	if candidateText == "" {
		candidateText, err = profileText(ctx, uc.profiles, id)
		if err != nil {
			return nil, err
		}
		extractProfile = false
	}

	result := uc.policy.Score(ctx, candidateText, job.ScoringText(), extractProfile)
	if extractProfile && result.Profile != nil {
		uc.saveExtractedProfile(ctx, id, req, result.Profile)
	}

	stages := pipeline.Stages(job.Stages).Normalize()
	if len(stages) == 0 {
		stages = uc.defaultStages
	}
	score := result.Score
	stage := pipeline.PlaceInitialStage(&score, stages)

	app := &model.Application{
		ID:             uuid.New(),
		JobID:          job.ID,
		CandidateName:  req.Name,
		CandidateEmail: req.Email,
		ResumeText:     candidateText,
		ResumeKey:      resumeKey,
		Score:          &score,
		Strengths:      result.Strengths,
		Weaknesses:     result.Weaknesses,
		Summary:        result.Summary,
		Recommendation: string(result.Recommendation),
		Stage:          stage,
	}
	if id != nil {
		app.CandidateID = id.UserID
	}
	if err := uc.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	events.Emit(ctx, uc.publisher, events.Event{
		Type:          events.ApplicationSubmitted,
		ApplicationID: app.ID.String(),
		JobID:         job.ID.String(),
		ToStage:       stage,
		ActorID:       app.CandidateID,
		Score:         &score,
	})

	return &dto.SubmitApplicationResponse{
		Application:  dto.NewApplicationDTO(app),
		AutoAdvanced: stage != stages[0],
		Degraded:     result.Degraded,
	}, nil
}

func validateSubmission(req dto.SubmitApplicationRequest) error {
	errs := map[string]string{}
	if req.JobID == "" {
		errs["job_id"] = "job is required"
	} else if _, err := uuid.Parse(req.JobID); err != nil {
		errs["job_id"] = "job id is invalid"
	}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.Email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "email is invalid"
	}
	if len(errs) > 0 {
		return util.NewFormError("missing required fields", errs)
	}
	return nil
}

func (uc *ApplicationUsecase) saveExtractedProfile(ctx context.Context, id *auth.Identity, req dto.SubmitApplicationRequest, prof *scoring.Profile) {
	name := prof.FullName
	if name == "" {
		name = req.Name
	}
	email := id.Email
	if email == "" {
		email = req.Email
	}
	err := uc.profiles.Upsert(ctx, &model.Profile{
		ID:           id.UserID,
		FullName:     name,
		Email:        email,
		Headline:     prof.Headline,
		Summary:      prof.Summary,
		Skills:       prof.Skills,
		LinkedInURL:  prof.LinkedInURL,
		PortfolioURL: prof.PortfolioURL,
	})
	if err != nil {
		log.Printf("Submit: could not save extracted profile for %s: %v", id.UserID, err)
	}
}

// storeResume keeps the original file. The application is still filed when
// storage fails; it just has no downloadable resume.
func (uc *ApplicationUsecase) storeResume(ctx context.Context, file *ResumeFile) string {
	if uc.objects == nil {
		return ""
	}
	key := storage.NewResumeKey(file.Filename)
	if err := uc.objects.Put(ctx, key, file.Data); err != nil {
		log.Printf("Submit: could not store resume %s: %v", file.Filename, err)
		return ""
	}
	return key
}

// Withdraw deletes the caller's own application. Applications that do not
// exist or belong to someone else are rejected the same way.
func (uc *ApplicationUsecase) Withdraw(ctx context.Context, id *auth.Identity, applicationID string) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	app, err := uc.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(mapStoreErr(err), ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if !ownsApplication(id, app) {
		return ErrForbidden
	}

	if err := uc.apps.Delete(ctx, applicationID); err != nil {
		return fmt.Errorf("delete application: %w", mapStoreErr(err))
	}
	if app.ResumeKey != "" && uc.objects != nil {
		if err := uc.objects.Delete(ctx, app.ResumeKey); err != nil {
			log.Printf("Withdraw: could not delete resume %s: %v", app.ResumeKey, err)
		}
	}

	events.Emit(ctx, uc.publisher, events.Event{
		Type:          events.ApplicationWithdrawn,
		ApplicationID: app.ID.String(),
		JobID:         app.JobID.String(),
		FromStage:     app.Stage,
		ActorID:       id.UserID,
	})
	return nil
}

// MyApplications lists the caller's applications.
func (uc *ApplicationUsecase) MyApplications(ctx context.Context, id *auth.Identity) ([]dto.ApplicationDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	apps, err := uc.apps.FindByCandidate(ctx, id.UserID, id.Email)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, dto.NewApplicationDTO(&apps[i]))
	}
	return out, nil
}

// GetApplication returns the full application to its candidate or to the
// recruiter owning the job, with a short-lived resume link.
func (uc *ApplicationUsecase) GetApplication(ctx context.Context, id *auth.Identity, applicationID string) (*dto.ApplicationDetailDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	app, err := uc.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !ownsApplication(id, app) {
		job, err := uc.jobs.FindJobByID(ctx, app.JobID.String())
		if err != nil {
			return nil, mapStoreErr(err)
		}
		if err := requireJobOwner(id, job); err != nil {
			return nil, err
		}
	}

	detail := &dto.ApplicationDetailDTO{
		ApplicationDTO: dto.NewApplicationDTO(app),
		ResumeText:     app.ResumeText,
		History:        []dto.StageTransitionDTO{},
	}
	if app.ResumeKey != "" && uc.objects != nil {
		url, err := uc.objects.SignedURL(app.ResumeKey, storage.ResumeURLTTL)
		if err != nil {
			log.Printf("GetApplication: could not sign resume url: %v", err)
		}
		detail.ResumeURL = url
	}
	history, err := uc.apps.Transitions(ctx, applicationID)
	if err != nil {
		log.Printf("GetApplication: could not load history for %s: %v", applicationID, err)
	} else {
		detail.History = dto.NewStageTransitionDTOs(history)
	}
	return detail, nil
}
