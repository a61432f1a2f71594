package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// Service is the appointment lifecycle engine. Every operation runs as a
// single transaction against the store; there is no shared session state.
type Service struct {
	DB *gorm.DB
}

// NewService creates a scheduling Service on top of the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CreateAppointmentInput carries the validated boundary data for booking.
type CreateAppointmentInput struct {
	PatientID uint
	DoctorID  uint
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
}

// EditAppointmentInput carries the optional fields of an edit. Empty strings
// mean "leave unchanged".
type EditAppointmentInput struct {
	Date   string
	Time   string
	Status string
}

// FilterAppointmentsInput holds the raw filter parameters. Ids arrive as
// strings from the query layer and are validated here before querying.
type FilterAppointmentsInput struct {
	DoctorID  string
	PatientID string
	Status    string
}

// CreateAppointment validates a booking request and persists a new
// appointment with status pending. The scheduled instant must be strictly in
// the future at the moment of the call. Overlapping bookings for the same
// doctor and slot are not checked; that matches the observed behavior of the
// booking flow and is documented rather than fixed here.
func (s *Service) CreateAppointment(in CreateAppointmentInput) (*models.Appointment, error) {
	if in.PatientID == 0 || in.DoctorID == 0 {
		return nil, newValidationError("patientId and doctorId are required")
	}

	date, timeOfDay, err := parseSchedule(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	scheduledAt := time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, time.Local,
	)
	if !scheduledAt.After(time.Now()) {
		return nil, newValidationError("appointment date and time must be in the future")
	}

	appointment := models.Appointment{
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: date.Format(models.DateLayout),
		AppointmentTime: timeOfDay.Format(models.TimeLayout),
		Status:          models.StatusPending,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return &appointment, nil
}

// EditAppointment reschedules and/or moves an appointment through the status
// state machine. The transition is checked against the status read inside
// the transaction, and the write is guarded on that same status, so two
// interleaving edits cannot both apply. The whole edit is all-or-nothing.
//
// Date and time edits are not re-validated against "now"; rescheduling into
// the past is permitted so a past-recorded mistake can be corrected.
func (s *Service) EditAppointment(id uint, in EditAppointmentInput) (*models.Appointment, error) {
	updates := map[string]any{}

	if in.Date != "" {
		date, err := time.Parse(models.DateLayout, in.Date)
		if err != nil {
			return nil, newValidationError("invalid date format, use YYYY-MM-DD")
		}
		updates["appointment_date"] = date.Format(models.DateLayout)
	}
	if in.Time != "" {
		timeOfDay, err := time.Parse(models.TimeLayout, in.Time)
		if err != nil {
			return nil, newValidationError("invalid time format, use HH:MM")
		}
		updates["appointment_time"] = timeOfDay.Format(models.TimeLayout)
	}

	var requested models.AppointmentStatus
	if in.Status != "" {
		var ok bool
		requested, ok = models.ParseStatus(in.Status)
		if !ok {
			return nil, newValidationError("invalid status %q, valid statuses: pending, confirmed, completed, cancelled", in.Status)
		}
	}

	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "appointment", ID: id}
			}
			return err
		}

		current := appointment.Status
		if in.Status != "" {
			if !current.CanTransitionTo(requested) {
				return &TransitionError{From: current, To: requested}
			}
			updates["status"] = requested
		}

		if len(updates) == 0 {
			return nil
		}

		// Guard the write on the status the transition was checked against.
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", id, current).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ConflictError{Message: "appointment was modified concurrently, retry the edit"}
		}

		return tx.First(&appointment, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListAppointments returns every appointment.
func (s *Service) ListAppointments() ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	if err := s.DB.Order("id").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// FilterAppointments returns the appointments matching every supplied
// filter. With no filters it is equivalent to ListAppointments.
func (s *Service) FilterAppointments(in FilterAppointmentsInput) ([]models.Appointment, error) {
	query := s.DB.Model(&models.Appointment{}).Order("id")

	if in.DoctorID != "" {
		doctorID, err := strconv.ParseUint(in.DoctorID, 10, 64)
		if err != nil {
			return nil, newValidationError("doctorId must be numeric")
		}
		query = query.Where("doctor_id = ?", doctorID)
	}
	if in.PatientID != "" {
		patientID, err := strconv.ParseUint(in.PatientID, 10, 64)
		if err != nil {
			return nil, newValidationError("patientId must be numeric")
		}
		query = query.Where("patient_id = ?", patientID)
	}
	if in.Status != "" {
		query = query.Where("status = ?", in.Status)
	}

	appointments := make([]models.Appointment, 0)
	if err := query.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("filter appointments: %w", err)
	}
	return appointments, nil
}

func parseSchedule(rawDate, rawTime string) (time.Time, time.Time, error) {
	if rawDate == "" || rawTime == "" {
		return time.Time{}, time.Time{}, newValidationError("appointmentDate and appointmentTime are required")
	}
	date, err := time.Parse(models.DateLayout, rawDate)
	if err != nil {
		return time.Time{}, time.Time{}, newValidationError("invalid date format, use YYYY-MM-DD")
	}
	timeOfDay, err := time.Parse(models.TimeLayout, rawTime)
	if err != nil {
		return time.Time{}, time.Time{}, newValidationError("invalid time format, use HH:MM")
	}
	return date, timeOfDay, nil
}
