package metric

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/handler"
	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/service/metric"
)

type Handler struct {
	service *metric.Service
}

func NewHandler(service *metric.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	snapshots := r.Group("/snapshots")
	{
		snapshots.POST("", h.CreateSnapshot)
		snapshots.GET("/:id", h.GetSnapshot)
		snapshots.PUT("/:id", h.UpdateSnapshot)
		snapshots.DELETE("/:id", h.DeleteSnapshot)
	}

	r.GET("/accounts/:id/snapshots", h.ListSnapshots)
}

func (h *Handler) CreateSnapshot(c *gin.Context) {
	var req model.CreateMetricSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	snapshot := &model.MetricSnapshot{
		AccountID: req.AccountID,
		WeightLb:  req.WeightLb,
		HeightIn:  req.HeightIn,
		Steps:     req.Steps,
		HeartRate: req.HeartRate,
	}
	if req.ObservedAt != nil {
		snapshot.ObservedAt = *req.ObservedAt
	}

	if err := h.service.CreateSnapshot(c.Request.Context(), snapshot); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(snapshot))
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid snapshot ID"))
		return
	}

	snapshot, err := h.service.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(snapshot))
}

func (h *Handler) ListSnapshots(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	snapshots, err := h.service.ListForAccount(c.Request.Context(), accountID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(snapshots))
}

func (h *Handler) UpdateSnapshot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid snapshot ID"))
		return
	}

	var req model.UpdateMetricSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	snapshot, err := h.service.UpdateSnapshot(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(snapshot))
}

func (h *Handler) DeleteSnapshot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid snapshot ID"))
		return
	}

	if err := h.service.DeleteSnapshot(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
