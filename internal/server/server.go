// Package server exposes the decision pipeline over HTTP. The transport
// layer is peripheral glue: it decodes the applicant record, hands it to the
// engine, and writes back whatever uniform decision payload comes out.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loan-backend/internal/engine"
)

// Server wires the engine into a gin router.
type Server struct {
	engine     *engine.Engine
	policyPath string
	logger     *zap.Logger
}

// New builds a Server that evaluates applications against the policy
// document at policyPath.
func New(eng *engine.Engine, policyPath string, logger *zap.Logger) *Server {
	return &Server{engine: eng, policyPath: policyPath, logger: logger}
}

// Router assembles the HTTP routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(RequestID(), Logging(s.logger), Recovery(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/decisions", s.handleDecide)

	return r
}

// handleDecide runs the pipeline synchronously for one application. The
// pipeline never errors, so a malformed request body is the only 4xx path.
func (s *Server) handleDecide(c *gin.Context) {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	result := s.engine.Decide(c.Request.Context(), s.policyPath, raw)
	c.JSON(http.StatusOK, result)
}
