// Package server exposes the sync engine's host event interface over HTTP so
// a media host can deliver attachment events as webhooks.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thebluefowl/spacesync/internal/host"
	"github.com/thebluefowl/spacesync/internal/mediasync"
)

// Server routes webhook requests to the engine.
type Server struct {
	engine   *mediasync.Engine
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// New wires a server. Event requests carry the full attachment record, so
// handlers dispatch it directly and never touch the engine's Library.
func New(engine *mediasync.Engine, logger *slog.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{engine: engine, logger: logger, gatherer: gatherer}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	events := r.Group("/events")
	{
		events.POST("/asset-added", s.assetAdded)
		events.POST("/metadata-updated", s.metadataUpdated)
		events.POST("/asset-deleted", s.assetDeleted)
		events.POST("/unique-filename", s.uniqueFilename)
	}
	r.POST("/connection/test", s.testConnection)

	return r
}

type uniqueFilenameRequest struct {
	Filename string `json:"filename" binding:"required"`
}

func (s *Server) bindAttachment(c *gin.Context) (*host.Attachment, bool) {
	var a host.Attachment
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if a.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return nil, false
	}
	return &a, true
}

func (s *Server) assetAdded(c *gin.Context) {
	a, ok := s.bindAttachment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": s.engine.AddAttachment(c.Request.Context(), a)})
}

func (s *Server) metadataUpdated(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var md host.Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.engine.MetadataUpdated(c.Request.Context(), &md)
	// the host expects its record back untouched, including fields this
	// service does not model
	c.Data(http.StatusOK, "application/json", raw)
}

func (s *Server) assetDeleted(c *gin.Context) {
	a, ok := s.bindAttachment(c)
	if !ok {
		return
	}
	s.engine.DeleteAttachment(c.Request.Context(), a)
	c.Status(http.StatusNoContent)
}

func (s *Server) uniqueFilename(c *gin.Context) {
	var req uniqueFilenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, err := s.engine.UniqueFilename(c.Request.Context(), req.Filename)
	if err != nil {
		s.logger.Error("resolve unique filename", "filename", req.Filename, "error", err)
		status := http.StatusBadGateway
		if c.Request.Context().Err() != nil {
			status = http.StatusRequestTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": name})
}

func (s *Server) testConnection(c *gin.Context) {
	res := s.engine.TestConnection(c.Request.Context())
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadGateway
	}
	c.JSON(status, res)
}
