package catalog

import (
	"bytes"
	"errors"
	"strconv"

	"bookdrop/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
	covers  *Covers
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, covers *Covers, logger *zap.Logger) *Handler {
	return &Handler{service: service, covers: covers, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	books := app.Group("/api/library/books")
	books.Get("/", h.HandleListBooks)
	books.Get("/:id", h.HandleGetBook)
	books.Get("/:id/copies", h.HandleListBookCopies)
	books.Get("/:id/cover", h.HandleGetCover)
	books.Put("/:id/cover", h.HandleUploadCover)
	books.Delete("/:id/cover", h.HandleDeleteCover)

	app.Get("/api/library/copies/by-epc/:epc", h.HandleGetCopyByEPC)

	libs := app.Group("/api/library/libraries")
	libs.Get("/", h.HandleListLibraries)
	libs.Get("/:id", h.HandleGetLibrary)

	boxes := app.Group("/api/library/return-boxes")
	boxes.Get("/", h.HandleListReturnBoxes)
	boxes.Get("/:id", h.HandleGetReturnBox)
}

// HandleListBooks lists books.
// @Summary List Books
// @Tags catalog
// @Produce json
// @Param search query string false "Match against title, author or ISBN"
// @Param category query string false "Filter by category"
// @Success 200 {array} models.Book "Books"
// @Router /api/library/books [get]
func (h *Handler) HandleListBooks(c *fiber.Ctx) error {
	books, err := h.service.ListBooks(c.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		rayid.Logger(h.logger, c).Error("Book listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(books)
}

// HandleGetBook returns one book with its copies.
// @Summary Get Book
// @Tags catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} models.Book "Book"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/books/{id} [get]
func (h *Handler) HandleGetBook(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}

	book, err := h.service.GetBook(c.Context(), bookID)
	if errors.Is(err, ErrBookNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Book lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(book)
}

// HandleListBookCopies lists the copies of a book.
// @Summary List Book Copies
// @Tags catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {array} models.BookCopy "Copies"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/books/{id}/copies [get]
func (h *Handler) HandleListBookCopies(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}

	copies, err := h.service.ListBookCopies(c.Context(), bookID)
	if errors.Is(err, ErrBookNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Copy listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(copies)
}

// HandleGetCopyByEPC resolves an RFID tag to its copy.
// @Summary Get Copy By EPC
// @Tags catalog
// @Produce json
// @Param epc path string true "RFID tag (EPC)"
// @Success 200 {object} models.BookCopy "Copy"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/copies/by-epc/{epc} [get]
func (h *Handler) HandleGetCopyByEPC(c *fiber.Ctx) error {
	epc := c.Params("epc")

	cp, err := h.service.GetCopyByEPC(c.Context(), epc)
	if errors.Is(err, ErrCopyNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Copy lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cp)
}

// HandleListLibraries lists library branches.
// @Summary List Libraries
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Library "Libraries"
// @Router /api/library/libraries [get]
func (h *Handler) HandleListLibraries(c *fiber.Ctx) error {
	libs, err := h.service.ListLibraries(c.Context())
	if err != nil {
		rayid.Logger(h.logger, c).Error("Library listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(libs)
}

// HandleGetLibrary returns one library branch.
// @Summary Get Library
// @Tags catalog
// @Produce json
// @Param id path int true "Library ID"
// @Success 200 {object} models.Library "Library"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/libraries/{id} [get]
func (h *Handler) HandleGetLibrary(c *fiber.Ctx) error {
	libraryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid library id"})
	}

	lib, err := h.service.GetLibrary(c.Context(), libraryID)
	if errors.Is(err, ErrLibraryNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Library lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(lib)
}

// HandleListReturnBoxes lists return box units.
// @Summary List Return Boxes
// @Tags catalog
// @Produce json
// @Param library_id query int false "Filter by library"
// @Success 200 {array} models.ReturnBox "Return boxes"
// @Router /api/library/return-boxes [get]
func (h *Handler) HandleListReturnBoxes(c *fiber.Ctx) error {
	var libraryID *int
	if raw := c.Query("library_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid library_id"})
		}
		libraryID = &id
	}

	boxes, err := h.service.ListReturnBoxes(c.Context(), libraryID)
	if err != nil {
		rayid.Logger(h.logger, c).Error("Return box listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(boxes)
}

// HandleGetReturnBox returns one return box unit.
// @Summary Get Return Box
// @Tags catalog
// @Produce json
// @Param id path int true "Return Box ID"
// @Success 200 {object} models.ReturnBox "Return box"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/library/return-boxes/{id} [get]
func (h *Handler) HandleGetReturnBox(c *fiber.Ctx) error {
	boxID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid box id"})
	}

	box, err := h.service.GetReturnBox(c.Context(), boxID)
	if errors.Is(err, ErrReturnBoxNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Return box lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(box)
}

// HandleUploadCover stores the cover image for a book.
// @Summary Upload Book Cover
// @Tags catalog
// @Accept image/jpeg
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]string "Stored"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /api/library/books/{id}/cover [put]
func (h *Handler) HandleUploadCover(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}

	// Only store covers for books that exist.
	if _, err := h.service.GetBook(c.Context(), bookID); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		rayid.Logger(h.logger, c).Error("Book lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty cover image"})
	}

	err = h.covers.Upload(c.Context(), bookID, bytes.NewReader(body), int64(len(body)), c.Get(fiber.HeaderContentType))
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Cover upload failed", zap.Int("book_id", bookID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "stored"})
}

// HandleGetCover streams the cover image for a book.
// @Summary Get Book Cover
// @Tags catalog
// @Produce image/jpeg
// @Param id path int true "Book ID"
// @Success 200 {file} file "Cover image"
// @Failure 404 {object} map[string]string "No cover stored"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /api/library/books/{id}/cover [get]
func (h *Handler) HandleGetCover(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}

	obj, info, err := h.covers.Fetch(c.Context(), bookID)
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, ErrCoverNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Cover fetch failed", zap.Int("book_id", bookID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(obj, int(info.Size))
}

// HandleDeleteCover removes the cover image for a book.
// @Summary Delete Book Cover
// @Tags catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /api/library/books/{id}/cover [delete]
func (h *Handler) HandleDeleteCover(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}

	err = h.covers.Delete(c.Context(), bookID)
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		rayid.Logger(h.logger, c).Error("Cover delete failed", zap.Int("book_id", bookID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
