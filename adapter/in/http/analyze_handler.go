package http

import (
	"github.com/gofiber/fiber/v2"

	"assistant_server/core/analysis"
	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/apperr"
	"assistant_server/pkg/logger"
	"assistant_server/pkg/response"
)

// Batches are bounded to keep a single request from monopolizing the
// generative service quota.
const maxBatchSize = 10

// AnalyzeHandler runs the analysis pipeline for submitted messages.
type AnalyzeHandler struct {
	pipeline *analysis.Pipeline
	analyses out.AnalysisRepository
	users    out.UserRepository
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(pipeline *analysis.Pipeline, analyses out.AnalysisRepository, users out.UserRepository) *AnalyzeHandler {
	return &AnalyzeHandler{
		pipeline: pipeline,
		analyses: analyses,
		users:    users,
	}
}

// Register registers analyze routes.
func (h *AnalyzeHandler) Register(router fiber.Router) {
	messages := router.Group("/messages")

	messages.Post("/analyze", h.Analyze)
	messages.Post("/analyze/batch", h.AnalyzeBatch)
}

type analyzeRequest struct {
	UserID string `json:"user_id"`
	domain.RawMessage
}

type batchRequest struct {
	UserID   string              `json:"user_id"`
	Messages []domain.RawMessage `json:"messages"`
}

type batchItemResult struct {
	Success bool                   `json:"success"`
	Record  *domain.AnalysisRecord `json:"record,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Subject string                 `json:"subject,omitempty"`
}

type batchResult struct {
	Total     int               `json:"total"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Results   []batchItemResult `json:"results"`
}

// Analyze runs the pipeline for a single message and stores the result.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("Invalid request body")
	}
	if req.UserID == "" {
		return apperr.ValidationFailed("Missing required field: user_id")
	}

	if _, err := h.users.GetOrCreate(c.Context(), req.UserID); err != nil {
		return err
	}

	record, err := h.pipeline.Analyze(c.Context(), req.UserID, &req.RawMessage)
	if err != nil {
		return err
	}

	if err := h.analyses.Save(c.Context(), record); err != nil {
		return err
	}

	return response.Created(c, record)
}

// AnalyzeBatch runs the pipeline over up to maxBatchSize messages. A failed
// message does not abort the batch; its error is reported in place.
func (h *AnalyzeHandler) AnalyzeBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("Invalid request body")
	}
	if req.UserID == "" {
		return apperr.ValidationFailed("Missing required field: user_id")
	}
	if len(req.Messages) == 0 {
		return apperr.ValidationFailed("No messages provided")
	}

	if _, err := h.users.GetOrCreate(c.Context(), req.UserID); err != nil {
		return err
	}

	messages := req.Messages
	if len(messages) > maxBatchSize {
		messages = messages[:maxBatchSize]
	}

	result := batchResult{Results: make([]batchItemResult, 0, len(messages))}
	for i := range messages {
		record, err := h.pipeline.Analyze(c.Context(), req.UserID, &messages[i])
		if err != nil {
			logger.WithError(err).WithField("subject", messages[i].Subject).Warn("Batch item failed")
			result.Failed++
			result.Results = append(result.Results, batchItemResult{
				Success: false,
				Error:   err.Error(),
				Subject: messages[i].Subject,
			})
			continue
		}

		if err := h.analyses.Save(c.Context(), record); err != nil {
			result.Failed++
			result.Results = append(result.Results, batchItemResult{
				Success: false,
				Error:   err.Error(),
				Subject: messages[i].Subject,
			})
			continue
		}

		result.Processed++
		result.Results = append(result.Results, batchItemResult{Success: true, Record: record})
	}
	result.Total = len(result.Results)

	return response.OK(c, result)
}
