package loans

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"bookdrop/feature/library/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(db, testPolicy, zap.NewNop())

	app := fiber.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app, db
}

func TestHandleCreateLoan(t *testing.T) {
	app, db := newTestApp(t)
	seedCopy(t, db, 1, models.CopyAvailable)

	req := httptest.NewRequest("POST", "/api/library/loans",
		strings.NewReader(`{"userId":7,"copyId":1}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var loan models.Loan
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &loan))
	assert.Equal(t, 7, loan.UserID)
	assert.Equal(t, models.LoanActive, loan.Status)
}

func TestHandleCreateLoanValidation(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/library/loans",
		strings.NewReader(`{"userId":0,"copyId":0}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreateLoanConflict(t *testing.T) {
	app, db := newTestApp(t)
	seedCopy(t, db, 1, models.CopyCheckedOut)

	req := httptest.NewRequest("POST", "/api/library/loans",
		strings.NewReader(`{"userId":7,"copyId":1}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHandleCreateLoanCopyNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/library/loans",
		strings.NewReader(`{"userId":7,"copyId":999}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleListActiveInvalidUserFilter(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/library/loans/active?user_id=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetLoanNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/library/loans/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
