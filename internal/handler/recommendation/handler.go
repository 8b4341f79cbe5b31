package recommendation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/handler"
	"github.com/vitalsync/healthmon-api/internal/model"
	metricService "github.com/vitalsync/healthmon-api/internal/service/metric"
	"github.com/vitalsync/healthmon-api/internal/service/recommendation"
)

type Handler struct {
	service   *recommendation.Service
	metricSvc *metricService.Service
}

func NewHandler(service *recommendation.Service, metricSvc *metricService.Service) *Handler {
	return &Handler{
		service:   service,
		metricSvc: metricSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	recs := r.Group("/recommendations")
	{
		recs.POST("/generate/:snapshotId", h.Generate)
		recs.PUT("/:id", h.UpdateRecommendation)
		recs.DELETE("/:id", h.DeleteRecommendation)
	}

	r.GET("/accounts/:id/recommendations", h.ListRecommendations)
}

// Generate derives advisories from a stored snapshot and persists them as an
// audit trail tagged with the snapshot's owner.
func (h *Handler) Generate(c *gin.Context) {
	snapshotID, err := uuid.Parse(c.Param("snapshotId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid snapshot ID"))
		return
	}

	snapshot, err := h.metricSvc.GetSnapshot(c.Request.Context(), snapshotID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	stored, err := h.service.GenerateAndStore(c.Request.Context(), snapshot.AccountID, snapshot)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(stored))
}

func (h *Handler) ListRecommendations(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	recs, err := h.service.ListForAccount(c.Request.Context(), accountID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(recs))
}

func (h *Handler) UpdateRecommendation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid recommendation ID"))
		return
	}

	var req model.UpdateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.UpdateRecommendation(c.Request.Context(), id, req.Text); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteRecommendation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid recommendation ID"))
		return
	}

	if err := h.service.DeleteRecommendation(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
