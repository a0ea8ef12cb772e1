package loans

import (
	"errors"
	"strconv"
	"time"

	"bookdrop/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for loans.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the loan routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	loans := app.Group("/api/library/loans")
	loans.Get("/active", h.HandleListActive)
	loans.Get("/history", h.HandleListHistory)
	loans.Get("/overdue", h.HandleListOverdue)
	loans.Get("/:id", h.HandleGetLoan)
	loans.Post("/", h.HandleCreateLoan)
}

func userIDFilter(c *fiber.Ctx) (*int, error) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("invalid user_id")
	}
	return &id, nil
}

// HandleListActive lists open loans.
// @Summary List Active Loans
// @Tags loans
// @Produce json
// @Param user_id query int false "Filter by borrower"
// @Success 200 {array} models.Loan "Open loans"
// @Router /api/library/loans/active [get]
func (h *Handler) HandleListActive(c *fiber.Ctx) error {
	userID, err := userIDFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	loans, err := h.service.ListActive(c.Context(), userID)
	if err != nil {
		rayid.Logger(h.logger, c).Error("Active loan listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(loans)
}

// HandleListHistory lists closed loans.
// @Summary List Loan History
// @Tags loans
// @Produce json
// @Param user_id query int false "Filter by borrower"
// @Success 200 {array} models.Loan "Closed loans"
// @Router /api/library/loans/history [get]
func (h *Handler) HandleListHistory(c *fiber.Ctx) error {
	userID, err := userIDFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	loans, err := h.service.ListHistory(c.Context(), userID)
	if err != nil {
		rayid.Logger(h.logger, c).Error("Loan history listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(loans)
}

// HandleListOverdue lists overdue loans, flipping lapsed active loans first.
// @Summary List Overdue Loans
// @Tags loans
// @Produce json
// @Param user_id query int false "Filter by borrower"
// @Success 200 {array} models.Loan "Overdue loans"
// @Router /api/library/loans/overdue [get]
func (h *Handler) HandleListOverdue(c *fiber.Ctx) error {
	userID, err := userIDFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	loans, err := h.service.ListOverdue(c.Context(), userID)
	if err != nil {
		rayid.Logger(h.logger, c).Error("Overdue loan listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(loans)
}

// HandleGetLoan returns one loan.
// @Summary Get Loan
// @Tags loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.Loan "Loan"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/loans/{id} [get]
func (h *Handler) HandleGetLoan(c *fiber.Ctx) error {
	loanID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid loan id"})
	}

	loan, err := h.service.GetLoan(c.Context(), loanID)
	if errors.Is(err, ErrLoanNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Loan lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(loan)
}

type createLoanRequest struct {
	UserID  int        `json:"userId"`
	CopyID  int        `json:"copyId"`
	DueDate *time.Time `json:"dueDate"`
}

// HandleCreateLoan checks out a copy.
// @Summary Create Loan
// @Description Check out an available copy. The due date defaults to the configured loan period.
// @Tags loans
// @Accept json
// @Produce json
// @Success 201 {object} models.Loan "Created loan"
// @Failure 404 {object} map[string]string "Copy not found"
// @Failure 409 {object} map[string]string "Copy unavailable or already on loan"
// @Router /api/library/loans [post]
func (h *Handler) HandleCreateLoan(c *fiber.Ctx) error {
	var req createLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID <= 0 || req.CopyID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId and copyId are required"})
	}

	loan, err := h.service.CreateLoan(c.Context(), req.UserID, req.CopyID, req.DueDate)
	switch {
	case errors.Is(err, ErrCopyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCopyUnavailable), errors.Is(err, ErrDuplicateLoan):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		rayid.Logger(h.logger, c).Error("Loan creation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(loan)
}
