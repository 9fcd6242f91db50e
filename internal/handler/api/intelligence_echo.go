package api

import (
	"context"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	"DealSense/internal/service/ratelimit"
	"DealSense/internal/usecase"
	xhttp "DealSense/pkg/http"
	xlogger "DealSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Per-ASIN request limits. The engine recomputes everything on demand,
// so one hot product must not monopolize the pool.
const (
	rateCapacity     = 10
	ratePerSecRefill = 2
)

// IntelligenceEchoHandler exposes the engine over HTTP.
type IntelligenceEchoHandler struct {
	logger    *xlogger.Logger
	intel     *usecase.IntelligenceUseCase
	report    *usecase.DealReportUseCase
	recommend *usecase.RecommendUseCase
	store     domrepo.HistoryStore
	limiter   *ratelimit.Limiter
}

func NewIntelligenceEchoHandler(
	logger *xlogger.Logger,
	intel *usecase.IntelligenceUseCase,
	report *usecase.DealReportUseCase,
	recommend *usecase.RecommendUseCase,
	store domrepo.HistoryStore,
) *IntelligenceEchoHandler {
	return &IntelligenceEchoHandler{
		logger:    logger,
		intel:     intel,
		report:    report,
		recommend: recommend,
		store:     store,
		limiter:   ratelimit.New(),
	}
}

func (h *IntelligenceEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/trend", h.Trend)
	g.GET("/deal-score", h.DealScore)
	g.GET("/predict", h.Predict)
	g.POST("/urgency", h.Urgency)
	g.GET("/stockout", h.Stockout)
	g.GET("/recommendations", h.Recommendations)
	g.GET("/report", h.Report)
	e.GET("/healthz", h.Health)
}

func (h *IntelligenceEchoHandler) allow(asin string) bool {
	return h.limiter.Allow("asin:"+asin, rateCapacity, ratePerSecRefill)
}

func (h *IntelligenceEchoHandler) Trend(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(req.ASIN) {
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.intel.Patterns(c.Request().Context(), req.ASIN, req.N)
	if err != nil {
		h.logger.Error("patterns usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) DealScore(c echo.Context) error {
	req := &models.DealScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(req.ASIN) {
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.intel.DealScore(c.Request().Context(), req.ASIN, req.Price, req.N)
	if err != nil {
		h.logger.Error("deal score usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(req.ASIN) {
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.intel.Predict(c.Request().Context(), req.ASIN, req.Horizon, req.N)
	if err != nil {
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) Urgency(c echo.Context) error {
	req := &models.UrgencyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.intel.Urgency(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("urgency usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) Stockout(c echo.Context) error {
	req := &models.StockoutRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(req.ASIN) {
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.intel.Stockout(c.Request().Context(), req.ASIN, req.N)
	if err != nil {
		h.logger.Error("stockout usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) Recommendations(c echo.Context) error {
	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.recommend.Recommend(c.Request().Context(), req.UserID, req.Limit)
	if err != nil {
		h.logger.Error("recommend usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) Report(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(req.ASIN) {
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.report.GetReport(c.Request().Context(), usecase.ReportParams{
		ASIN:  req.ASIN,
		Price: req.Price,
		N:     req.N,
	})
	if err != nil {
		h.logger.Error("report usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IntelligenceEchoHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Health(ctx); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("storage unreachable"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
