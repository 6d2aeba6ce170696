package handler

import (
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	uc *usecase.CompanyUsecase
}

func NewCompanyHandler(uc *usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/companies/mine", h.Mine)
	app.Post("/companies", h.Create)
	app.Get("/companies/:id", h.Get)
	app.Put("/companies/:id", h.Update)
}

func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	company, err := h.uc.CreateCompany(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return respondError(c, err, "failed to create company")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Company created",
		Data:    company,
	})
}

func (h *CompanyHandler) Mine(c *fiber.Ctx) error {
	companies, err := h.uc.MyCompanies(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err, "failed to list companies")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get companies",
		Data:    companies,
	})
}

func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	company, err := h.uc.GetCompany(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get company")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get company",
		Data:    company,
	})
}

func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	company, err := h.uc.UpdateCompany(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update company")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Company updated",
		Data:    company,
	})
}
