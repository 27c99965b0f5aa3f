package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"namenorm/normalization"
	"namenorm/server/middleware"
)

// handleNormalize обрабатывает POST /api/normalize
func (s *Server) handleNormalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid request body: " + err.Error(),
			RequestID: middleware.GetRequestIDFromGin(c),
		})
		return
	}

	opts := s.defaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	requestID := middleware.GetRequestIDFromGin(c)
	start := time.Now()
	result := s.normalizer.Normalize(c.Request.Context(), req.Text, opts)
	duration := time.Since(start)

	s.persist(requestID, req.Text, result, duration)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, NormalizeResponse{
		RequestID: requestID,
		Result:    result,
	})
}

// handleNormalizeBatch обрабатывает POST /api/normalize/batch
func (s *Server) handleNormalizeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid request body: " + err.Error(),
			RequestID: middleware.GetRequestIDFromGin(c),
		})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "empty batch",
			RequestID: middleware.GetRequestIDFromGin(c),
		})
		return
	}

	opts := s.defaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	var audit normalization.AuditStore
	if s.serviceDB != nil && s.cfg.AuditEnabled {
		audit = s.serviceDB
	}

	events := make(chan string, s.cfg.EventsBufferSize)
	requestID := middleware.GetRequestIDFromGin(c)
	go func() {
		for msg := range events {
			s.logger.Info("Batch progress", "request_id", requestID, "event", msg)
		}
	}()

	batch := normalization.NewBatchNormalizer(s.normalizer, audit, events, c.Request.Context())
	result, err := batch.Process(req.Items, opts)
	close(events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     err.Error(),
			RequestID: middleware.GetRequestIDFromGin(c),
		})
		return
	}

	c.JSON(http.StatusOK, BatchResponse{
		RequestID: middleware.GetRequestIDFromGin(c),
		Result:    result,
	})
}

// handleRecentRecords обрабатывает GET /api/records/recent
func (s *Server) handleRecentRecords(c *gin.Context) {
	if s.serviceDB == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "audit store is not configured"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 1000"})
			return
		}
		limit = parsed
	}

	records, err := s.serviceDB.Recent(limit)
	if err != nil {
		s.logger.Error("Failed to fetch recent records", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// handleRecordsStats обрабатывает GET /api/records/stats
func (s *Server) handleRecordsStats(c *gin.Context) {
	if s.serviceDB == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "audit store is not configured"})
		return
	}

	stats, err := s.serviceDB.Stats()
	if err != nil {
		s.logger.Error("Failed to fetch store stats", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleHealth обрабатывает GET /api/health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Languages: s.store.Languages(),
	})
}

// defaultOptions опции нормализации из конфигурации сервиса
func (s *Server) defaultOptions() normalization.Options {
	opts := normalization.DefaultOptions()
	opts.Language = s.cfg.DefaultLanguage
	opts.ASCIIFastPath = s.cfg.ASCIIFastPath
	opts.AllowCrossLangDiminutives = s.cfg.AllowCrossLangDiminutives
	return opts
}

// persist сохраняет запись аудита, ошибки только логируются
func (s *Server) persist(requestID, input string, result *normalization.Result, duration time.Duration) {
	if s.serviceDB == nil || !s.cfg.AuditEnabled {
		return
	}
	if err := s.serviceDB.SaveNormalization(requestID, input, result, duration); err != nil {
		s.logger.Warn("Failed to persist normalization record",
			"request_id", requestID,
			"error", err.Error())
	}
}
