package returnbox

import (
	"errors"

	"bookdrop/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the return box surface.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the return box routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	boxes := app.Group("/api/return-boxes")
	boxes.Get("/:id/status", h.HandleGetStatus)
	boxes.Post("/:id/unlock", h.HandleUnlock)
	boxes.Post("/:id/session/clear", h.HandleClearSession)

	mq := app.Group("/api/mqtt")
	mq.Get("/status", h.HandleTransportStatus)

	returns := app.Group("/api/library/returns")
	returns.Get("/", h.HandleListReturns)
	returns.Get("/:id", h.HandleGetReturn)
	returns.Post("/:id/process", h.HandleProcessReturn)
}

// HandleGetStatus returns the live session state of a return box.
// @Summary Get Return Box Status
// @Description Poll the current session state of a return box, with scanned tags enriched from the catalog.
// @Tags return-box
// @Produce json
// @Param id path int true "Return Box ID"
// @Success 200 {object} returnbox.StatusResponse "Session status"
// @Failure 400 {object} map[string]string "Invalid box id"
// @Router /api/return-boxes/{id}/status [get]
func (h *Handler) HandleGetStatus(c *fiber.Ctx) error {
	boxID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid box id"})
	}

	status, err := h.service.GetStatus(c.Context(), boxID)
	if err != nil {
		rayid.Logger(h.service.logger, c).Error("Status lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleUnlock sends the unlock command to a return box.
// @Summary Unlock Return Box
// @Description Publish the unlock command. Requests within the cooldown window are ignored, not failed.
// @Tags return-box
// @Produce json
// @Param id path int true "Return Box ID"
// @Success 200 {object} map[string]interface{} "Command sent or ignored"
// @Failure 503 {object} map[string]string "Transport unavailable"
// @Router /api/return-boxes/{id}/unlock [post]
func (h *Handler) HandleUnlock(c *fiber.Ctx) error {
	boxID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid box id"})
	}

	if !h.service.TransportConnected() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "MQTT transport is not connected",
		})
	}

	switch err := h.service.Unlock(boxID); {
	case errors.Is(err, ErrCooldown):
		return c.JSON(fiber.Map{"ignored": true, "reason": "cooldown"})
	case err != nil:
		rayid.Logger(h.service.logger, c).Error("Unlock failed", zap.Int("box_id", boxID), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.JSON(fiber.Map{"ignored": false})
	}
}

// HandleClearSession removes the in-memory session of a return box.
// @Summary Clear Return Box Session
// @Description Drop the box's session so the next scan starts a fresh lifecycle.
// @Tags return-box
// @Produce json
// @Param id path int true "Return Box ID"
// @Success 200 {object} map[string]string "Cleared"
// @Router /api/return-boxes/{id}/session/clear [post]
func (h *Handler) HandleClearSession(c *fiber.Ctx) error {
	boxID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid box id"})
	}

	h.service.ClearSession(boxID)
	return c.JSON(fiber.Map{"status": "cleared"})
}

// HandleTransportStatus reports broker connectivity.
// @Summary Get MQTT Status
// @Tags return-box
// @Produce json
// @Success 200 {object} map[string]bool "Connection state"
// @Router /api/mqtt/status [get]
func (h *Handler) HandleTransportStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"connected": h.service.TransportConnected()})
}

// HandleListReturns lists recorded return transactions.
// @Summary List Return Transactions
// @Tags returns
// @Produce json
// @Param status query string false "Filter by status (pending, completed)"
// @Success 200 {array} models.ReturnTransaction "Transactions"
// @Router /api/library/returns [get]
func (h *Handler) HandleListReturns(c *fiber.Ctx) error {
	txns, err := h.service.ListReturns(c.Context(), c.Query("status"))
	if err != nil {
		rayid.Logger(h.service.logger, c).Error("Return listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(txns)
}

// HandleGetReturn returns one return transaction.
// @Summary Get Return Transaction
// @Tags returns
// @Produce json
// @Param id path int true "Return Transaction ID"
// @Success 200 {object} models.ReturnTransaction "Transaction"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/returns/{id} [get]
func (h *Handler) HandleGetReturn(c *fiber.Ctx) error {
	returnID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid return id"})
	}

	txn, err := h.service.GetReturn(c.Context(), returnID)
	if errors.Is(err, ErrReturnNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.service.logger, c).Error("Return lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(txn)
}

type processReturnRequest struct {
	ProcessedBy int    `json:"processedBy"`
	Notes       string `json:"notes"`
}

// HandleProcessReturn marks a return transaction completed.
// @Summary Process Return Transaction
// @Description Staff operation: reshelve the returned copies and complete the transaction.
// @Tags returns
// @Accept json
// @Produce json
// @Param id path int true "Return Transaction ID"
// @Success 200 {object} models.ReturnTransaction "Updated transaction"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/returns/{id}/process [post]
func (h *Handler) HandleProcessReturn(c *fiber.Ctx) error {
	returnID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid return id"})
	}

	var req processReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	txn, err := h.service.ProcessReturn(c.Context(), returnID, req.ProcessedBy, req.Notes)
	if errors.Is(err, ErrReturnNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.service.logger, c).Error("Return processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(txn)
}
