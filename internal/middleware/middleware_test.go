package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_ResolvesHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Identity())

	var got *auth.Identity
	app.Get("/", func(c *fiber.Ctx) error {
		got = middleware.CurrentIdentity(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.HeaderUserID, "u-1")
	req.Header.Set(middleware.HeaderUserEmail, "ana@example.com")
	req.Header.Set(middleware.HeaderUserRole, "Recruiter")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.True(t, got.IsRecruiter())
}

func TestIdentity_AnonymousWithoutUserID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Identity())

	called := false
	app.Get("/", func(c *fiber.Ctx) error {
		called = true
		assert.Nil(t, middleware.CurrentIdentity(c))
		return nil
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.HeaderUserEmail, "ana@example.com")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RateLimiter(1, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
