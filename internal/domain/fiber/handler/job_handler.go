package handler

import (
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	uc *usecase.JobUsecase
}

func NewJobHandler(uc *usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/stage-presets", h.StagePresets)
	app.Post("/jobs/recommendations", h.Recommend)
	app.Post("/jobs", h.Create)
	app.Get("/jobs", h.List)
	app.Get("/jobs/:id", h.Get)
	app.Patch("/jobs/:id/stages", h.EditStages)
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	job, err := h.uc.CreateJob(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return respondError(c, err, "failed to create job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created",
		Data:    job,
	})
}

// List serves ?q, ?type=job|company, ?company_id, ?mine=true, ?page and ?page_size.
func (h *JobHandler) List(c *fiber.Ctx) error {
	var q dto.JobListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query", err)
	}
	page, err := h.uc.ListJobs(c.UserContext(), middleware.CurrentIdentity(c), q)
	if err != nil {
		return respondError(c, err, "failed to list jobs")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       page.Jobs,
		Pagination: &page.Pagination,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.uc.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data:    job,
	})
}

func (h *JobHandler) EditStages(c *fiber.Ctx) error {
	var req dto.EditStagesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	job, err := h.uc.EditStages(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "failed to edit stages")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Stages updated",
		Data:    job,
	})
}

func (h *JobHandler) StagePresets(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get stage presets",
		Data:    h.uc.StagePresets(),
	})
}

func (h *JobHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	jobs, err := h.uc.RecommendJobs(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return respondError(c, err, "failed to recommend jobs")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get recommendations",
		Data:    jobs,
	})
}
