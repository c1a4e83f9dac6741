package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Invoicer-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

func TestRequestLogger_RegistraPeticion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "tetera") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"request_id":"`)

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
