package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Scheduler *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(scheduler *scheduling.Service) *AppointmentHandler {
	return &AppointmentHandler{Scheduler: scheduler}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	PatientID       uint   `json:"patientId" binding:"required"`
	DoctorID        uint   `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
}

// CreateAppointment handles booking a new appointment.
// Typically initiated by a patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Scheduler.CreateAppointment(scheduling.CreateAppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.AppointmentDate,
		Time:      req.AppointmentTime,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", gin.H{
		"appointmentId": appointment.ID,
		"status":        appointment.Status,
	})
}

// EditAppointmentRequest represents the request body for editing an
// appointment. Every field is optional; omitted fields stay unchanged.
type EditAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Status          string `json:"status"`
}

// EditAppointment handles rescheduling and status changes. Status changes
// are validated by the lifecycle engine against the current state.
func (h *AppointmentHandler) EditAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "appointment id must be numeric")
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	appointment, err := h.Scheduler.EditAppointment(uint(id), scheduling.EditAppointmentInput{
		Date:   req.AppointmentDate,
		Time:   req.AppointmentTime,
		Status: req.Status,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment updated successfully", gin.H{
		"id":              appointment.ID,
		"status":          appointment.Status,
		"appointmentDate": appointment.AppointmentDate,
		"appointmentTime": appointment.AppointmentTime,
	})
}

// ShowAppointments handles fetching every appointment.
func (h *AppointmentHandler) ShowAppointments(c *gin.Context) {
	appointments, err := h.Scheduler.ListAppointments()
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// FilterAppointments handles fetching appointments matching the supplied
// query filters. Every filter is optional and they are ANDed together.
func (h *AppointmentHandler) FilterAppointments(c *gin.Context) {
	appointments, err := h.Scheduler.FilterAppointments(scheduling.FilterAppointmentsInput{
		DoctorID:  c.Query("doctorId"),
		PatientID: c.Query("patientId"),
		Status:    c.Query("status"),
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}
