package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-buffer-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase"
	bufferdto "github.com/LavaJover/shvark-buffer-service/internal/usecase/dto/buffer"
	"github.com/gin-gonic/gin"
)

const dueDateLayout = "2006-01-02"

type EngineHandler struct {
	uc     usecase.EngineUsecase
	logger *slog.Logger
}

func NewEngineHandler(uc usecase.EngineUsecase, logger *slog.Logger) *EngineHandler {
	return &EngineHandler{uc: uc, logger: logger}
}

// bindOptionalJSON разбирает тело, если оно есть, включая chunked-тело
// с ContentLength -1. Пустое тело не ошибка.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bindScope читает scope из тела; пустое тело означает все пары.
func bindScope(c *gin.Context) (domain.Scope, error) {
	var req request.ScopeRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		return domain.Scope{}, err
	}
	return domain.Scope{ProductID: req.ProductID, LocationID: req.LocationID}, nil
}

func queryScope(c *gin.Context) domain.Scope {
	return domain.Scope{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
	}
}

// DetectBreaches handles POST /api/v1/breaches/detect
func (h *EngineHandler) DetectBreaches() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := bindScope(c)
		if err != nil {
			badRequest(c, err)
			return
		}

		summary, err := h.uc.DetectBreaches(c.Request.Context(), scope)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// GenerateReplenishment handles POST /api/v1/replenishment/generate
func (h *EngineHandler) GenerateReplenishment() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := bindScope(c)
		if err != nil {
			badRequest(c, err)
			return
		}

		summary, err := h.uc.GenerateReplenishment(c.Request.Context(), scope)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// RecalculateBuffers handles POST /api/v1/buffers/recalculate
func (h *EngineHandler) RecalculateBuffers() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.RecalculateRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			badRequest(c, err)
			return
		}
		trigger := domain.TriggeredBy(req.TriggeredBy)
		if trigger == "" {
			trigger = domain.TriggerManual
		}

		result, err := h.uc.RecalculateBuffers(c.Request.Context(),
			domain.Scope{ProductID: req.ProductID, LocationID: req.LocationID}, trigger)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, response.RecalculationResponse{
			Evaluated:    result.Evaluated,
			Recalculated: len(result.Records),
			Records:      response.FromRecalculationRecords(result.Records),
			Failures:     result.Failures,
		})
	}
}

// ScoreDecouplingPoint handles POST /api/v1/decoupling/score
func (h *EngineHandler) ScoreDecouplingPoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.ScoreDecouplingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		input := &bufferdto.ScoreDecouplingInput{LocationID: req.LocationID}
		for _, f := range req.Factors {
			input.Factors = append(input.Factors, domain.DecouplingFactor{
				ID:     f.ID,
				Weight: f.Weight,
				Score:  f.Score,
			})
		}

		rec, err := h.uc.ScoreDecouplingPoint(c.Request.Context(), input)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, response.FromRecommendation(rec))
	}
}

// QualifyOrder handles POST /api/v1/orders/qualify
func (h *EngineHandler) QualifyOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.QualifyOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		due, err := time.Parse(dueDateLayout, req.ConfirmedDueDate)
		if err != nil {
			badRequest(c, fmt.Errorf("confirmed_due_date: %w", err))
			return
		}

		order := &domain.SalesOrder{
			ID:               req.OrderID,
			ProductID:        req.ProductID,
			LocationID:       req.LocationID,
			Qty:              req.Qty,
			ConfirmedDueDate: due,
			Status:           domain.SalesOrderOpen,
			BookedAt:         time.Now().UTC(),
		}

		q, created, err := h.uc.QualifyOrder(c.Request.Context(), order)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, response.FromQualification(q, created))
	}
}

// RequalifyOrders handles POST /api/v1/orders/requalify
func (h *EngineHandler) RequalifyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := bindScope(c)
		if err != nil {
			badRequest(c, err)
			return
		}

		summary, err := h.uc.RequalifyOrders(c.Request.Context(), scope)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// AcknowledgeBreach handles POST /api/v1/breaches/:breachId/acknowledge
func (h *EngineHandler) AcknowledgeBreach() gin.HandlerFunc {
	return func(c *gin.Context) {
		breachID := c.Param("breachId")
		if err := h.uc.AcknowledgeBreach(c.Request.Context(), breachID); err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"breach_id": breachID, "acknowledged": true})
	}
}

// RunPlanningCycle handles POST /api/v1/cycle
func (h *EngineHandler) RunPlanningCycle() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := bindScope(c)
		if err != nil {
			badRequest(c, err)
			return
		}

		out, err := h.uc.RunPlanningCycle(c.Request.Context(), scope)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetBufferStatus handles GET /api/v1/buffers/:productId/:locationId
func (h *EngineHandler) GetBufferStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := h.uc.GetBufferStatus(c.Request.Context(), c.Param("productId"), c.Param("locationId"))
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// ListHistory handles GET /api/v1/buffers/:productId/:locationId/history
func (h *EngineHandler) ListHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				badRequest(c, fmt.Errorf("invalid limit %q", raw))
				return
			}
			limit = n
		}

		records, err := h.uc.ListHistory(c.Request.Context(), c.Param("productId"), c.Param("locationId"), limit)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, response.FromRecalculationRecords(records))
	}
}

// ListOpenBreaches handles GET /api/v1/breaches
func (h *EngineHandler) ListOpenBreaches() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := h.uc.ListOpenBreaches(c.Request.Context(), queryScope(c))
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, response.FromBreaches(events))
	}
}

// ListDraftOrders handles GET /api/v1/replenishment/drafts
func (h *EngineHandler) ListDraftOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := h.uc.ListDraftOrders(c.Request.Context(), queryScope(c))
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, response.FromReplenishments(orders))
	}
}
