package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bserrors "bigschedule/internal/errors"
	"bigschedule/internal/generate"
	"bigschedule/internal/logging"
)

// GenerateHandler proxies prompt-to-agenda drafting to the generation
// service, keeping the frontend's {result} / {error, raw_content} contract.
type GenerateHandler struct {
	drafter Drafter
	logger  logging.Logger
}

// NewGenerateHandler creates a generation handler on the given drafter.
func NewGenerateHandler(drafter Drafter) *GenerateHandler {
	return &GenerateHandler{
		drafter: drafter,
		logger:  logging.NewComponentLogger("GenerateHandler"),
	}
}

// Post handles POST /api/openai.
func (h *GenerateHandler) Post(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing prompt"})
		return
	}

	draft, err := h.drafter.Draft(c.Request.Context(), req.Prompt)
	if err != nil {
		var parseErr *generate.ParseError
		if errors.As(err, &parseErr) {
			// Recoverable: the user rewords the prompt and tries again.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       "Failed to parse LLM response as JSON",
				"raw_content": parseErr.Raw,
			})
			return
		}

		h.logger.Error("draft failed: %v", err)
		status := http.StatusInternalServerError
		if bserrors.IsTransient(err) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": draft})
}
