package handler

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

type PipelineHandler struct {
	uc *usecase.PipelineUsecase
}

func NewPipelineHandler(uc *usecase.PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

func (h *PipelineHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/jobs/:id/board", h.Board)
	app.Post("/jobs/:id/board/moves", h.Move)
	app.Get("/jobs/:id/board/export", h.Export)
	app.Put("/applications/:id/stage", h.SetStage)
}

func (h *PipelineHandler) Board(c *fiber.Ctx) error {
	board, err := h.uc.GetBoard(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to load board")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get board",
		Data:    board,
	})
}

func (h *PipelineHandler) Move(c *fiber.Ctx) error {
	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	res, err := h.uc.Move(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"), req)
	return h.moveResponse(c, res, err)
}

func (h *PipelineHandler) SetStage(c *fiber.Ctx) error {
	var req dto.SetStageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	res, err := h.uc.SetStage(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"), req.Stage, req.Source)
	return h.moveResponse(c, res, err)
}

// moveResponse answers 409 with the reverted board when the new stage could
// not be saved.
func (h *PipelineHandler) moveResponse(c *fiber.Ctx, res *dto.MoveResultDTO, err error) error {
	if err != nil {
		if errors.Is(err, pipeline.ErrPersistFailed) && res != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: res.Notice,
				Data:    res,
			}, err)
		}
		return respondError(c, err, "failed to move application")
	}

	message := res.Notice
	if !res.Applied {
		message = "Nothing to move"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    res,
	})
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (h *PipelineHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	title, err := h.uc.ExportBoard(c.UserContext(), middleware.CurrentIdentity(c), c.Params("id"), &buf)
	if err != nil {
		return respondError(c, err, "failed to export board")
	}

	name := unsafeFilename.ReplaceAllString(title, "_")
	if name == "" || name == "_" {
		name = "board"
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-pipeline.xlsx"`, name))
	return c.Send(buf.Bytes())
}
