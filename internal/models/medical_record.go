package models

// MedicalRecord represents the documented outcome of a single appointment.
// The unique index on AppointmentID enforces at most one record per visit.
type MedicalRecord struct {
	BaseModel
	AppointmentID uint   `gorm:"uniqueIndex;not null" json:"appointmentId"`
	Diagnosis     string `gorm:"type:text;not null" json:"diagnosis"`
	Notes         string `gorm:"type:text" json:"notes"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
