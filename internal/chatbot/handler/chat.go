// Package handler provides HTTP handlers for the chatbot service.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/biz"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/pkg/evaluator"
)

// queryTimeout bounds a single query end to end: classification, retrieval
// and synthesis each hit the model provider, and a stuck provider must not
// hold the connection open indefinitely.
const queryTimeout = 60 * time.Second

// ChatHandler handles chatbot HTTP requests.
type ChatHandler struct {
	service   biz.Service
	evaluator *evaluator.Evaluator
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service biz.Service, eval *evaluator.Evaluator) *ChatHandler {
	return &ChatHandler{
		service:   service,
		evaluator: eval,
	}
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QueryRequest represents a chat query request.
type QueryRequest struct {
	Question string `json:"question" binding:"required"`
}

// Query answers one question through the intent-routed pipeline.
func (h *ChatHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	result, err := h.service.Query(ctx, req.Question)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.JSON(http.StatusRequestTimeout, ErrorResponse{
				Code:    408,
				Message: "Query timeout: the request took too long to process. Please try again or simplify your question.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: result})
}

// IndexResponse reports the outcome of an index rebuild.
type IndexResponse struct {
	Documents int `json:"documents"`
}

// Index rebuilds the retrieval index from the source stat files and
// republishes it atomically.
func (h *ChatHandler) Index(c *gin.Context) {
	count, err := h.service.Rebuild(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    0,
		Message: "Index rebuilt successfully",
		Data:    IndexResponse{Documents: count},
	})
}

// Stats returns knowledge base and pipeline statistics.
func (h *ChatHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: stats})
}

// EvaluateRequest represents an evaluation request for a precomputed answer.
type EvaluateRequest struct {
	Question    string   `json:"question" binding:"required"`
	Answer      string   `json:"answer" binding:"required"`
	Contexts    []string `json:"contexts" binding:"required"`
	GroundTruth string   `json:"ground_truth,omitempty"`
}

// Evaluate scores a supplied answer against its retrieved contexts.
func (h *ChatHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	if h.evaluator == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: "Evaluator not initialized"})
		return
	}

	result, err := h.evaluator.Evaluate(c.Request.Context(), &evaluator.Input{
		Question:    req.Question,
		Answer:      req.Answer,
		Contexts:    req.Contexts,
		GroundTruth: req.GroundTruth,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: result})
}

// QueryAndEvaluateRequest runs a question through the pipeline and scores
// the produced answer in one call.
type QueryAndEvaluateRequest struct {
	Question    string `json:"question" binding:"required"`
	GroundTruth string `json:"ground_truth,omitempty"`
}

// QueryAndEvaluateResponse is the combined query and evaluation result.
type QueryAndEvaluateResponse struct {
	Answer     string            `json:"answer"`
	Intent     string            `json:"intent"`
	Sources    interface{}       `json:"sources"`
	Evaluation *evaluator.Result `json:"evaluation"`
}

// QueryAndEvaluate answers a question and evaluates the answer.
func (h *ChatHandler) QueryAndEvaluate(c *gin.Context) {
	var req QueryAndEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	result, err := h.service.Query(ctx, req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: "Query failed: " + err.Error()})
		return
	}

	contexts := make([]string, len(result.Sources))
	for i, source := range result.Sources {
		contexts[i] = source.Content
	}

	var evaluation *evaluator.Result
	if h.evaluator != nil {
		evaluation, _ = h.evaluator.Evaluate(ctx, &evaluator.Input{
			Question:    req.Question,
			Answer:      result.Answer,
			Contexts:    contexts,
			GroundTruth: req.GroundTruth,
		})
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: QueryAndEvaluateResponse{
		Answer:     result.Answer,
		Intent:     result.Intent.String(),
		Sources:    result.Sources,
		Evaluation: evaluation,
	}})
}

// EvaluateSuiteRequest optionally overrides the built-in regression set.
type EvaluateSuiteRequest struct {
	Cases []evaluator.SuiteCase `json:"cases,omitempty"`
}

// EvaluateSuite runs the regression question set through the pipeline and
// returns aggregate scores.
func (h *ChatHandler) EvaluateSuite(c *gin.Context) {
	var req EvaluateSuiteRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	if h.evaluator == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: "Evaluator not initialized"})
		return
	}

	report, err := h.evaluator.RunSuite(c.Request.Context(), req.Cases, h.service.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: report})
}
