package handler

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
)

// respondError maps use case errors onto HTTP statuses. Anything unmapped
// is a 500 carrying message.
func respondError(c *fiber.Ctx, err error, message string) error {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return util.ValidationResponse(c, formErr)
	}

	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		code, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrForbidden):
		code, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, usecase.ErrNotFound):
		code, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrMissingResume):
		code, message = fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, usecase.ErrUnavailable):
		code, message = fiber.StatusServiceUnavailable, err.Error()
	default:
		log.Printf("%s: %v", message, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
	}, err)
}

// readResume loads an optional multipart file. A missing field yields nil.
func readResume(c *fiber.Ctx, field string, maxSize int64) (*usecase.ResumeFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxSize {
		return nil, util.NewFormError("invalid resume", map[string]string{
			field: "file is too large (max " + humanSize(maxSize) + ")",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	return &usecase.ResumeFile{Filename: fh.Filename, Data: data}, nil
}

func humanSize(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + "MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
