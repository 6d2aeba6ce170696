package handler

import (
	"errors"
	"os"

	"github.com/fadilmartias/talent-pipeline/internal/storage"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

type FilesHandler struct {
	store *storage.LocalStore
}

func NewFilesHandler(store *storage.LocalStore) *FilesHandler {
	return &FilesHandler{store: store}
}

func (h *FilesHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/files/*", h.Serve)
}

// Serve streams a stored object after checking its signed link.
func (h *FilesHandler) Serve(c *fiber.Ctx) error {
	key := c.Params("*")
	if err := h.store.Verify(key, c.Query("expires"), c.Query("signature")); err != nil {
		message := "invalid download link"
		if errors.Is(err, storage.ErrExpired) {
			message = "download link expired"
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusForbidden, Message: message}, err)
	}

	p, err := h.store.Path(key)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: "invalid file key"}, err)
	}
	if _, err := os.Stat(p); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusNotFound, Message: "file not found"}, err)
	}
	return c.SendFile(p)
}
