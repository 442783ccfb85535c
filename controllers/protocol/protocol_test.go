package protocol

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"patient-followup/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEventRejectsUnknownType(t *testing.T) {
	controller := NewProtocolController(nil, logger.NewAsyncLogger(nil))
	app := fiber.New()
	app.Post("/api/protocols/:id/events", controller.StoreEvent)

	body := `{"type":"FAX","content":"page the ward"}`
	req := httptest.NewRequest("POST", "/api/protocols/proto-1/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "CALL, SMS, EMAIL")
}
