package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthmesh/refgraph"
	"github.com/growthmesh/refgraph/pkg/server/dto"
	"github.com/growthmesh/refgraph/pkg/source"
	"github.com/growthmesh/refgraph/pkg/store"
)

// AnalyzeHandler handles analysis requests
type AnalyzeHandler struct {
	analyzer refgraph.Analyzer
	source   source.Source
	store    *store.Store
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler. The source and the
// store may be nil when those features are disabled.
func NewAnalyzeHandler(analyzer refgraph.Analyzer, src source.Source, st *store.Store, logger *slog.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AnalyzeHandler{
		analyzer: analyzer,
		source:   src,
		store:    st,
		logger:   logger,
	}
}

func writeError(c *gin.Context, status int, errCode, message string) {
	c.JSON(status, dto.ErrorResponse{
		Error:   errCode,
		Message: message,
		Code:    status,
	})
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	snapshot := req.Snapshot()
	if !req.Inline() {
		if h.source == nil {
			writeError(c, http.StatusServiceUnavailable, "no_source",
				"no snapshot rows in request and no snapshot source configured")
			return
		}
		fetched, err := h.source.Fetch(ctx)
		if err != nil {
			h.logger.Error("snapshot fetch failed", "group_id", req.GroupID, "error", err)
			writeError(c, http.StatusBadGateway, "source_unavailable", err.Error())
			return
		}
		snapshot = fetched
	}

	payload, err := h.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		h.logger.Error("analysis failed", "group_id", req.GroupID, "error", err)
		writeError(c, http.StatusInternalServerError, "analysis_failed", err.Error())
		return
	}

	if h.store != nil {
		if err := h.store.Put(ctx, req.GroupID, payload); err != nil {
			// Caching is best effort. The caller still gets the payload.
			h.logger.Warn("payload cache write failed", "group_id", req.GroupID, "error", err)
		}
	}

	c.JSON(http.StatusOK, dto.AnalyzeResponse{
		Success: true,
		GroupID: req.GroupID,
		Payload: payload,
	})
}

// GetAnalysis handles GET /api/v1/analysis/:group_id
func (h *AnalyzeHandler) GetAnalysis(c *gin.Context) {
	if h.store == nil {
		writeError(c, http.StatusServiceUnavailable, "store_disabled", "payload cache is disabled")
		return
	}

	groupID := c.Param("group_id")
	payload, err := h.store.Get(c.Request.Context(), groupID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.AnalyzeResponse{
		Success: true,
		GroupID: groupID,
		Payload: payload,
	})
}

// DeleteAnalysis handles DELETE /api/v1/analysis/:group_id
func (h *AnalyzeHandler) DeleteAnalysis(c *gin.Context) {
	if h.store == nil {
		writeError(c, http.StatusServiceUnavailable, "store_disabled", "payload cache is disabled")
		return
	}

	groupID := c.Param("group_id")
	if err := h.store.Delete(c.Request.Context(), groupID); err != nil {
		writeError(c, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.Result{
		Success: true,
		Data:    gin.H{"group_id": groupID},
	})
}
