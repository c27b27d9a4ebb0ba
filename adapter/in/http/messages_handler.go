package http

import (
	"github.com/gofiber/fiber/v2"

	"assistant_server/core/port/out"
	"assistant_server/pkg/response"
)

// MessagesHandler serves stored analysis records.
type MessagesHandler struct {
	analyses out.AnalysisRepository
}

// NewMessagesHandler creates a new messages handler.
func NewMessagesHandler(analyses out.AnalysisRepository) *MessagesHandler {
	return &MessagesHandler{analyses: analyses}
}

// Register registers message query routes.
func (h *MessagesHandler) Register(router fiber.Router) {
	messages := router.Group("/messages")

	messages.Get("/", h.List)
	messages.Get("/:id", h.Get)
	messages.Delete("/:id", h.Delete)

	router.Get("/stats", h.Stats)
}

// List returns a user's analysis records, optionally filtered by category
// and importance.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	userID, err := QueryUserID(c)
	if err != nil {
		return err
	}

	filter := &out.AnalysisFilter{Category: c.Query("category")}
	if v := c.Query("important"); v != "" {
		important := v == "true"
		filter.IsImportant = &important
	}

	records, err := h.analyses.List(c.Context(), userID, filter)
	if err != nil {
		return err
	}

	return response.OKWithMeta(c, records, &response.Meta{Total: len(records)})
}

// Get returns one analysis record.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	userID, err := QueryUserID(c)
	if err != nil {
		return err
	}

	record, err := h.analyses.GetByID(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}

	return response.OK(c, record)
}

// Delete removes one analysis record.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	userID, err := QueryUserID(c)
	if err != nil {
		return err
	}

	if err := h.analyses.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return err
	}

	return response.NoContent(c)
}

// Stats returns per-user aggregate counts.
func (h *MessagesHandler) Stats(c *fiber.Ctx) error {
	userID, err := QueryUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.analyses.Stats(c.Context(), userID)
	if err != nil {
		return err
	}

	return response.OK(c, stats)
}
