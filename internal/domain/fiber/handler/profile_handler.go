package handler

import (
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	uc        *usecase.ProfileUsecase
	maxUpload int64
}

func NewProfileHandler(uc *usecase.ProfileUsecase, maxUpload int64) *ProfileHandler {
	return &ProfileHandler{uc: uc, maxUpload: maxUpload}
}

func (h *ProfileHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/profile", h.Get)
	app.Put("/profile", h.Update)
	app.Post("/profile/parse-resume", h.ParseResume)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.GetProfile(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err, "failed to get profile")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    p,
	})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	p, err := h.uc.UpdateProfile(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return respondError(c, err, "failed to update profile")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile saved",
		Data:    p,
	})
}

// ParseResume returns a profile draft read from the uploaded resume. It is
// not saved.
func (h *ProfileHandler) ParseResume(c *fiber.Ctx) error {
	file, err := readResume(c, "resume", h.maxUpload)
	if err != nil {
		return respondError(c, err, "failed to read resume")
	}
	p, err := h.uc.ParseResume(c.UserContext(), middleware.CurrentIdentity(c), file)
	if err != nil {
		return respondError(c, err, "failed to parse resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume parsed",
		Data:    p,
	})
}
