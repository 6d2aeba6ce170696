package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/repository"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/google/uuid"
)

type CompanyUsecase struct {
	companies CompanyStore
	jobs      JobStore
}

func NewCompanyUsecase(companies CompanyStore, jobs JobStore) *CompanyUsecase {
	return &CompanyUsecase{companies: companies, jobs: jobs}
}

func (uc *CompanyUsecase) CreateCompany(ctx context.Context, id *auth.Identity, req dto.CompanyRequest) (*dto.CompanyDTO, error) {
	if err := requireRecruiter(id); err != nil {
		return nil, err
	}
	req, err := cleanCompanyRequest(req)
	if err != nil {
		return nil, err
	}
	c := &model.Company{
		ID:          uuid.New(),
		OwnerID:     id.UserID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		CultureText: req.CultureText,
	}
	if err := uc.companies.CreateCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("save company: %w", err)
	}
	out := dto.NewCompanyDTO(c)
	return &out, nil
}

// MyCompanies lists the recruiter's own companies.
func (uc *CompanyUsecase) MyCompanies(ctx context.Context, id *auth.Identity) ([]dto.CompanyDTO, error) {
	if err := requireRecruiter(id); err != nil {
		return nil, err
	}
	companies, err := uc.companies.GetCompanies(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	out := make([]dto.CompanyDTO, 0, len(companies))
	for i := range companies {
		out = append(out, dto.NewCompanyDTO(&companies[i]))
	}
	return out, nil
}

// GetCompany is the public company page: the company and its jobs.
func (uc *CompanyUsecase) GetCompany(ctx context.Context, companyID string) (*dto.CompanyDetailDTO, error) {
	c, err := uc.companies.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	jobs, err := uc.jobs.GetJobs(ctx, repository.JobFilter{CompanyID: c.ID.String()})
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	out := &dto.CompanyDetailDTO{CompanyDTO: dto.NewCompanyDTO(c), Jobs: make([]dto.JobDTO, 0, len(jobs))}
	for i := range jobs {
		out.Jobs = append(out.Jobs, dto.NewJobDTO(&jobs[i]))
	}
	return out, nil
}

func (uc *CompanyUsecase) UpdateCompany(ctx context.Context, id *auth.Identity, companyID string, req dto.CompanyRequest) (*dto.CompanyDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	c, err := uc.companies.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if c.OwnerID != id.UserID {
		return nil, ErrForbidden
	}
	req, err = cleanCompanyRequest(req)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Description = req.Description
	c.Website = req.Website
	c.LogoURL = req.LogoURL
	c.CultureText = req.CultureText
	if err := uc.companies.UpdateCompany(ctx, c); err != nil {
		return nil, mapStoreErr(err)
	}
	out := dto.NewCompanyDTO(c)
	return &out, nil
}

// cleanCompanyRequest trims the fields and checks the name and links.
func cleanCompanyRequest(req dto.CompanyRequest) (dto.CompanyRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Website = strings.TrimSpace(req.Website)
	req.LogoURL = strings.TrimSpace(req.LogoURL)
	req.CultureText = strings.TrimSpace(req.CultureText)

	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.Website != "" && !isWebURL(req.Website) {
		errs["website"] = "website must be an http or https URL"
	}
	if req.LogoURL != "" && !isWebURL(req.LogoURL) {
		errs["logo_url"] = "logo_url must be an http or https URL"
	}
	if len(errs) > 0 {
		return req, util.NewFormError("invalid company", errs)
	}
	return req, nil
}

func isWebURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
