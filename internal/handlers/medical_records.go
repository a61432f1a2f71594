package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"
)

// MedicalRecordHandler handles medical record related requests.
type MedicalRecordHandler struct {
	Scheduler *scheduling.Service
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(scheduler *scheduling.Service) *MedicalRecordHandler {
	return &MedicalRecordHandler{Scheduler: scheduler}
}

// CreateMedicalRecordRequest represents the request body for documenting an
// appointment.
type CreateMedicalRecordRequest struct {
	AppointmentID uint   `json:"appointmentId" binding:"required"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Notes         string `json:"notes"`
}

// CreateMedicalRecord handles creating a medical record for an appointment.
// Only accessible by doctors. Completing the record finalizes the visit.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	record, err := h.Scheduler.CreateMedicalRecord(scheduling.CreateMedicalRecordInput{
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Medical record created successfully", gin.H{
		"recordId": record.ID,
	})
}

// GetMedicalRecord handles fetching the record for a single appointment.
func (h *MedicalRecordHandler) GetMedicalRecord(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Query("appointmentId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "appointmentId query parameter is required and must be numeric")
		return
	}

	record, err := h.Scheduler.GetMedicalRecord(uint(appointmentID))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Medical record fetched successfully", record)
}

// GetPatientHistory handles fetching a patient's complete record history.
func (h *MedicalRecordHandler) GetPatientHistory(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Query("patientId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "patientId query parameter is required and must be numeric")
		return
	}

	history, err := h.Scheduler.GetPatientHistory(uint(patientID))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Patient history fetched successfully", history)
}
