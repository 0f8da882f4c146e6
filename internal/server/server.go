// Package server exposes the analysis over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/KaramelBytes/rehabrisk-cli/internal/patient"
	"github.com/KaramelBytes/rehabrisk-cli/internal/render"
	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
	"github.com/gin-gonic/gin"
)

// Server serves analysis requests. Each request gets its own agent.
type Server struct {
	cfg    risk.Config
	log    *slog.Logger
	router *gin.Engine
}

// New builds the router with cfg as the default thresholds.
func New(cfg risk.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{cfg: cfg, log: log, router: gin.New()}
	s.router.Use(gin.Recovery(), s.requestLog())
	s.router.GET("/healthz", s.handleHealth)
	v1 := s.router.Group("/v1")
	v1.GET("/config", s.handleConfig)
	v1.POST("/analyze", s.handleAnalyze)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("server: listening", "addr", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("server: request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg)
}

// thresholdOverrides holds optional per-request threshold values.
type thresholdOverrides struct {
	BaselineWorkload     *float64 `json:"baseline_workload"`
	ExertionTolerancePct *float64 `json:"exertion_tolerance_pct"`
	StabilityThresholdSD *float64 `json:"stability_threshold_sd"`
	SilenceThreshold     *float64 `json:"silence_threshold"`
	SilenceRatioLimit    *float64 `json:"silence_ratio_limit"`
}

func (o *thresholdOverrides) apply(cfg risk.Config) risk.Config {
	if o == nil {
		return cfg
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.BaselineWorkload, o.BaselineWorkload)
	set(&cfg.ExertionTolerancePct, o.ExertionTolerancePct)
	set(&cfg.StabilityThresholdSD, o.StabilityThresholdSD)
	set(&cfg.SilenceThreshold, o.SilenceThreshold)
	set(&cfg.SilenceRatioLimit, o.SilenceRatioLimit)
	return cfg
}

type analyzeRequest struct {
	Dir        string              `json:"dir"`
	PatientID  string              `json:"patient_id"`
	Thresholds *thresholdOverrides `json:"thresholds"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dir is required"})
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dir is not an accessible directory"})
		return
	}
	id := strings.TrimSpace(req.PatientID)
	if id == "" {
		id = patient.IDFromFolder(dir)
	}
	agent, err := risk.NewAgent(id, dir, req.Thresholds.apply(s.cfg), s.log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, render.NewJSON(agent.Analyze()))
}
