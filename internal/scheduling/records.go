package scheduling

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// defaultNotes is the placeholder stored when a record is created without
// free-text notes.
const defaultNotes = "-"

// CreateMedicalRecordInput carries the boundary data for documenting a visit.
type CreateMedicalRecordInput struct {
	AppointmentID uint
	Diagnosis     string
	Notes         string
}

// PatientHistoryEntry is a medical record joined with the date of the
// appointment it documents.
type PatientHistoryEntry struct {
	ID              uint   `json:"id"`
	AppointmentID   uint   `json:"appointmentId"`
	AppointmentDate string `json:"appointmentDate"`
	Diagnosis       string `json:"diagnosis"`
	Notes           string `json:"notes"`
}

// CreateMedicalRecord documents the outcome of an appointment. At most one
// record may exist per appointment. On success the owning appointment is
// forced to completed regardless of its current status: documenting the
// medical outcome always finalizes the visit, even when the appointment was
// never confirmed. This is the one deliberate bypass of the status state
// machine. Record and status change commit in the same transaction.
func (s *Service) CreateMedicalRecord(in CreateMedicalRecordInput) (*models.MedicalRecord, error) {
	if in.AppointmentID == 0 || in.Diagnosis == "" {
		return nil, newValidationError("appointmentId and diagnosis are required")
	}

	notes := in.Notes
	if notes == "" {
		notes = defaultNotes
	}

	record := models.MedicalRecord{
		AppointmentID: in.AppointmentID,
		Diagnosis:     in.Diagnosis,
		Notes:         notes,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, in.AppointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "appointment", ID: in.AppointmentID}
			}
			return err
		}

		var existing models.MedicalRecord
		err := tx.Where("appointment_id = ?", in.AppointmentID).First(&existing).Error
		if err == nil {
			return &ConflictError{Message: "a medical record already exists for this appointment, use edit instead"}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return tx.Model(&appointment).Update("status", models.StatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetMedicalRecord returns the record documenting the given appointment.
func (s *Service) GetMedicalRecord(appointmentID uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := s.DB.Where("appointment_id = ?", appointmentID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "medical record for appointment", ID: appointmentID}
		}
		return nil, fmt.Errorf("get medical record: %w", err)
	}
	return &record, nil
}

// GetPatientHistory returns every medical record belonging to the patient's
// appointments, each with the appointment date attached. A patient with no
// records gets an empty list, not an error.
func (s *Service) GetPatientHistory(patientID uint) ([]PatientHistoryEntry, error) {
	entries := make([]PatientHistoryEntry, 0)
	err := s.DB.Model(&models.MedicalRecord{}).
		Select("medical_records.id, medical_records.appointment_id, appointments.appointment_date, medical_records.diagnosis, medical_records.notes").
		Joins("JOIN appointments ON appointments.id = medical_records.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Order("medical_records.id").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("get patient history: %w", err)
	}
	return entries, nil
}
