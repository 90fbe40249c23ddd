package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/model"
	"ChecklistSentinel/internal/scheduler"
)

// Engine is what the HTTP surface needs from the evaluation driver.
type Engine interface {
	Snapshot() scheduler.Snapshot
	Rubric() *checklist.Rubric
	SetFlag(key string, checked bool) error
	ResetFlags()
	Tick()
	History(n int) scheduler.History
}

// Server wires HTTP endpoints around the evaluation driver.
type Server struct {
	Router *gin.Engine
	Engine Engine
	http   *http.Server
}

// NewServer builds the router with its middleware stack.
func NewServer(engine Engine, limiter *IPLimiter) *Server {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogger())
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}

	s := &Server{Router: r, Engine: engine}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.GET("/health", s.health)

	api := s.Router.Group("/api")
	{
		api.GET("/rubric", s.getRubric)
		api.GET("/score", s.getScore)
		api.GET("/signals", s.getSignals)
		api.GET("/history", s.getHistory)
		api.POST("/evaluate", s.evaluate)
		api.PUT("/flags/:key", s.setFlag)
		api.DELETE("/flags", s.resetFlags)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getRubric(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.Rubric().Spec())
}

func (s *Server) getScore(c *gin.Context) {
	snap := s.Engine.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"symbol":       snap.Symbol,
		"score":        snap.Score,
		"gate":         snap.Gate,
		"threshold":    snap.Threshold,
		"evaluated_at": snap.EvaluatedAt,
	})
}

func (s *Server) getSignals(c *gin.Context) {
	snap := s.Engine.Snapshot()
	events := snap.Signals.Events()
	if events == nil {
		events = []model.SignalEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":  snap.Symbol,
		"signals": snap.Signals,
		"events":  events,
	})
}

func (s *Server) getHistory(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, s.Engine.History(limit))
}

func (s *Server) evaluate(c *gin.Context) {
	s.Engine.Tick()
	s.getSignals(c)
}

type flagRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

func (s *Server) setFlag(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"checked\": true|false}"})
		return
	}
	key := c.Param("key")
	if err := s.Engine.SetFlag(key, *req.Checked); err != nil {
		if errors.Is(err, checklist.ErrUnknownCriterion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.getScore(c)
}

func (s *Server) resetFlags(c *gin.Context) {
	s.Engine.ResetFlags()
	s.getScore(c)
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
