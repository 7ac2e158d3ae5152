package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/draft"
	"github.com/mwarner-dev/postpilot/internal/linkedin"
	"github.com/mwarner-dev/postpilot/internal/research"
)

// ResearchService is the research entry point the handler depends on.
type ResearchService interface {
	Research(ctx context.Context, topic string) (research.Result, error)
}

// PostService is the posting entry point the handler depends on.
type PostService interface {
	Post(ctx context.Context, content string) (linkedin.Outcome, error)
}

// Handler maps HTTP requests onto the core services.
type Handler struct {
	research ResearchService
	poster   PostService
	logger   *zap.Logger

	// The posting pipeline owns one browser profile; concurrent attempts
	// against it are unsupported, so requests are serialized here.
	postMu sync.Mutex
}

// NewHandler wires a Handler from its collaborators.
func NewHandler(researchSvc ResearchService, poster PostService, logger *zap.Logger) *Handler {
	return &Handler{
		research: researchSvc,
		poster:   poster,
		logger:   logger.Named("handler"),
	}
}

// RegisterRoutes attaches all endpoints to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/research", h.handleResearch)
	r.POST("/draft", h.handleDraft)
	r.POST("/post", h.handlePost)
}

type researchRequest struct {
	Topic string `json:"topic"`
}

func (h *Handler) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.research.Research(c.Request.Context(), req.Topic)
	if err != nil {
		if errors.Is(err, research.ErrEmptyTopic) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
			return
		}
		h.logger.Error("Research failed.", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"research":     result.Corpus,
		"source_count": result.SourceCount,
	})
}

type draftRequest struct {
	Topic    string `json:"topic"`
	Research string `json:"research"`
}

func (h *Handler) handleDraft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	text, err := draft.Build(req.Topic, req.Research)
	if err != nil {
		if errors.Is(err, draft.ErrEmptyTopic) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
			return
		}
		h.logger.Error("Draft generation failed.", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": text})
}

type postRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handlePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.postMu.Lock()
	outcome, err := h.poster.Post(c.Request.Context(), req.Content)
	h.postMu.Unlock()

	if err != nil {
		if errors.Is(err, linkedin.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "post content is required"})
			return
		}
		h.logger.Error("Post failed.", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if outcome.Status == linkedin.StatusError {
		status = http.StatusInternalServerError
	}
	c.JSON(status, outcome)
}
