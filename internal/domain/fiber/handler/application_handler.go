package handler

import (
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	uc        *usecase.ApplicationUsecase
	maxUpload int64
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase, maxUpload int64) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, maxUpload: maxUpload}
}

func (h *ApplicationHandler) RegisterRoutes(app fiber.Router) {
	app.Post("/applications", middleware.RateLimiter(5, time.Minute), h.Submit)
	app.Get("/applications/mine", h.Mine)
	app.Get("/applications/:id", h.Detail)
	app.Delete("/applications/:id", h.Withdraw)
}

// Submit accepts a multipart form with an optional "resume" file.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	file, err := readResume(c, "resume", h.maxUpload)
	if err != nil {
		return respondError(c, err, "failed to read resume")
	}

	res, err := h.uc.Submit(c.UserContext(), middleware.CurrentIdentity(c), req, file)
	if err != nil {
		return respondError(c, err, "failed to submit application")
	}

	message := "Application submitted"
	if res.Degraded {
		message = "Application submitted; automatic analysis was unavailable"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: message,
		Data:    res,
	})
}

func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	apps, err := h.uc.MyApplications(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err, "failed to list applications")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    apps,
	})
}

func (h *ApplicationHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.uc.GetApplication(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    detail,
	})
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	if err := h.uc.Withdraw(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id")); err != nil {
		return respondError(c, err, "failed to withdraw application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application withdrawn",
	})
}
