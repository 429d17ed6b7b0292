package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funcscope/funcscope/analysis"
	"github.com/funcscope/funcscope/symbolic"
)

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Expression string `json:"expression" binding:"required"`
}

// ErrorResponse carries a human-readable error plus a stable code so
// clients can distinguish invalid input from unsupported variables.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleAnalyze handles POST /v1/analyze.
//
// Response:
//
//	200 OK: analysis.Result
//	400 Bad Request: PARSE_ERROR or UNSUPPORTED_VARIABLES
//	413 Request Entity Too Large: body over 1 MiB
func (s *Server) handleAnalyze(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID, "handler", "handleAnalyze")

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			logger.Warn("request body too large")
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "request body exceeds 1 MiB",
				Code:  "BODY_TOO_LARGE",
			})
			return
		}
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	res, err := s.analyzer.Analyze(c.Request.Context(), req.Expression)
	if err != nil {
		status, code := classifyAnalysisError(err)
		logger.Warn("analysis rejected", "error", err, "code", code)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	logger.Info("analysis served", "expression", res.Expression, "branch", string(res.Branch))
	c.JSON(http.StatusOK, res)
}

func classifyAnalysisError(err error) (int, string) {
	var pe *symbolic.ParseError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, "PARSE_ERROR"
	}
	var ve *analysis.VariableError
	if errors.As(err, &ve) ||
		errors.Is(err, analysis.ErrNoVariables) ||
		errors.Is(err, analysis.ErrNeedsX) {
		return http.StatusBadRequest, "UNSUPPORTED_VARIABLES"
	}
	return http.StatusInternalServerError, "ANALYSIS_FAILED"
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": ServiceVersion,
	})
}
