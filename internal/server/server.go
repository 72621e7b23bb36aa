// Package server exposes the simulation engine and the decision optimizer
// over an HTTP API.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iwvelando/startup-forecast/internal/forecast"
	"github.com/iwvelando/startup-forecast/internal/optimizer"
	"github.com/iwvelando/startup-forecast/internal/store"
	"github.com/iwvelando/startup-forecast/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger          *zap.Logger
	store           store.Store
	maxRequestBytes int64
	version         string
}

// NewRouter constructs the gin engine serving the forecast API. A nil store
// disables persistence of optimization results.
func NewRouter(logger *zap.Logger, st store.Store, maxRequestBytes int64, version string) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if st == nil {
		st = store.Noop{}
	}
	if maxRequestBytes <= 0 {
		maxRequestBytes = constants.DefaultMaxRequestBytes
	}
	if version == "" {
		version = "dev"
	}

	h := &handler{logger: logger, store: st, maxRequestBytes: maxRequestBytes, version: version}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(recovery(logger))
	router.Use(cors())

	router.GET("/health", h.handleHealth)

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", h.handleSimulate)
		api.POST("/optimize", h.handleOptimize)
	}

	return router
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// handleSimulate handles POST /api/v1/simulate
func (h *handler) handleSimulate(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)

	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error(), "server.handleSimulate")
		return
	}

	plan, err := req.plan()
	if err != nil {
		h.respondError(c, http.StatusBadRequest, codeInvalidPlan, err.Error(), "server.handleSimulate")
		return
	}

	rows, err := forecast.Run(h.logger, req.Assumptions, plan)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, codeInvalidAssumptions, err.Error(), "server.handleSimulate")
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("simulation computed",
		zap.String("op", "server.handleSimulate"),
		zap.Int("months", len(rows)),
		zap.Duration("duration", elapsed),
	)

	c.JSON(http.StatusOK, buildSimulateResponse(rows, elapsed))
}

// handleOptimize handles POST /api/v1/optimize
func (h *handler) handleOptimize(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error(), "server.handleOptimize")
		return
	}

	searcher, err := optimizer.New(h.logger, req.Assumptions, req.Bounds.toLeverBounds(), req.Options.toOptions())
	if err != nil {
		h.respondError(c, http.StatusBadRequest, codeInvalidSearch, err.Error(), "server.handleOptimize")
		return
	}

	result, err := searcher.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, optimizer.ErrNoFeasibleSolution) {
			h.respondError(c, http.StatusUnprocessableEntity, codeNoFeasiblePlan, err.Error(), "server.handleOptimize")
			return
		}
		h.respondError(c, http.StatusInternalServerError, codeSearchFailed, err.Error(), "server.handleOptimize")
		return
	}

	saved := h.saveResult(req, result)

	elapsed := time.Since(start)
	h.logger.Info("optimization computed",
		zap.String("op", "server.handleOptimize"),
		zap.Float64("score", result.Score),
		zap.Int("trialsRun", result.TrialsRun),
		zap.Int("feasibleTrials", result.FeasibleTrials),
		zap.Duration("duration", elapsed),
	)

	c.JSON(http.StatusOK, buildOptimizeResponse(result, saved, elapsed))
}

// saveResult persists the winner through the keep-if-better store; persistence
// failures degrade to a warning rather than failing the request.
func (h *handler) saveResult(req OptimizeRequest, result *optimizer.Result) bool {
	hash, err := store.HashAssumptions(req.Assumptions)
	if err != nil {
		h.logger.Warn("failed to hash assumptions",
			zap.String("op", "server.handleOptimize"),
			zap.Error(err),
		)
		return false
	}

	minCash, _ := forecast.MinCash(result.Rows)
	endCash := 0.0
	if n := len(result.Rows); n > 0 {
		endCash = result.Rows[n-1].Cash
	}

	saved, err := h.store.SaveBest(store.Record{
		AssumptionsHash: hash,
		SavedAt:         time.Now().UTC(),
		Score:           result.Score,
		MinCash:         minCash,
		EndCash:         endCash,
		Trials:          result.TrialsRun,
		Plan:            result.Plan,
	})
	if err != nil {
		h.logger.Warn("failed to persist optimization result",
			zap.String("op", "server.handleOptimize"),
			zap.Error(err),
		)
		return false
	}
	return saved
}

func (h *handler) respondError(c *gin.Context, status int, code, msg, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: msg}})
	c.Abort()
}
