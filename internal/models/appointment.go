package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Wire formats for the temporal fields. These are the only accepted
// representations, both inbound and outbound.
const (
	DateLayout = "2006-01-02" // YYYY-MM-DD
	TimeLayout = "15:04"      // HH:MM, 24-hour
)

// ParseStatus validates a raw status value against the enumeration.
func ParseStatus(raw string) (AppointmentStatus, bool) {
	switch s := AppointmentStatus(raw); s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return s, true
	}
	return "", false
}

// statusTransitions is the lifecycle state machine: pending -> confirmed ->
// completed, with cancellation possible from pending or confirmed. Completed
// and cancelled are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next. Requesting the current status again is treated as a no-op and allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents a scheduled visit between a patient and a doctor.
// Date and time are stored in their wire formats; the scheduling service
// normalizes them on the way in.
type Appointment struct {
	BaseModel
	PatientID       uint              `gorm:"index;not null" json:"patientId"`
	DoctorID        uint              `gorm:"index;not null" json:"doctorId"`
	AppointmentDate string            `gorm:"size:10;not null" json:"appointmentDate"`
	AppointmentTime string            `gorm:"size:5;not null" json:"appointmentTime"`
	Status          AppointmentStatus `gorm:"size:20;default:'pending';index" json:"status"`

	// Relations
	Patient       User           `gorm:"foreignKey:PatientID" json:"-"`
	Doctor        Doctor         `gorm:"foreignKey:DoctorID" json:"-"`
	MedicalRecord *MedicalRecord `gorm:"foreignKey:AppointmentID" json:"-"`
}
