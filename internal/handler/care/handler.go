package care

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/handler"
	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/service/care"
)

type Handler struct {
	service *care.Service
}

func NewHandler(service *care.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinicians := r.Group("/clinicians")
	{
		clinicians.GET("/:id", h.GetClinician)
		clinicians.GET("/:id/patients", h.ListPatients)
		clinicians.GET("/:id/patients/:patientId/snapshots", h.PatientMetrics)
	}

	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.PUT("/:doctorId/:patientId", h.UpdateAppointment)
		appointments.DELETE("/:doctorId/:patientId", h.CancelAppointment)
	}
}

func (h *Handler) GetClinician(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinician ID"))
		return
	}

	clinician, err := h.service.GetClinician(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinician.ToResponse()))
}

func (h *Handler) ListPatients(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinician ID"))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	responses := make([]*model.AccountResponse, 0, len(patients))
	for _, p := range patients {
		responses = append(responses, p.ToResponse())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(responses))
}

func (h *Handler) PatientMetrics(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinician ID"))
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	snapshots, err := h.service.PatientMetrics(c.Request.Context(), doctorID, patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(snapshots))
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rel, err := h.service.BookAppointment(c.Request.Context(), req.DoctorID, req.PatientID, req.AppointmentAt)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rel))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.UpdateAppointment(c.Request.Context(), doctorID, patientID, req.AppointmentAt); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), doctorID, patientID, req.AppointmentAt); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
