package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/model"
)

// splitList splits comma or newline separated input, dropping blanks.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func requireIdentity(id *auth.Identity) error {
	if id == nil || id.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

func requireRecruiter(id *auth.Identity) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if !id.IsRecruiter() {
		return ErrForbidden
	}
	return nil
}

// requireJobOwner allows only the recruiter who posted the job.
func requireJobOwner(id *auth.Identity, job *model.Job) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if job.RecruiterID != id.UserID {
		return ErrForbidden
	}
	return nil
}

// ownsApplication matches by candidate id when recorded, else by email.
func ownsApplication(id *auth.Identity, app *model.Application) bool {
	if id == nil {
		return false
	}
	if app.CandidateID != "" && app.CandidateID == id.UserID {
		return true
	}
	return id.SameEmail(app.CandidateEmail)
}

// profileText builds candidate text from a saved profile. A profile without
// a summary cannot stand in for a resume.
func profileText(ctx context.Context, profiles ProfileStore, id *auth.Identity) (string, error) {
	if id == nil || profiles == nil {
		return "", ErrMissingResume
	}
	p, err := profiles.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(mapStoreErr(err), ErrNotFound) {
			return "", ErrMissingResume
		}
		return "", err
	}
	if strings.TrimSpace(p.Summary) == "" {
		return "", ErrMissingResume
	}
	return fmt.Sprintf("Name: %s\nHeadline: %s\nSummary: %s\nSkills: %s",
		p.FullName, p.Headline, p.Summary, strings.Join(p.Skills, ", ")), nil
}
