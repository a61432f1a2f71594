package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-booking-server/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return NewService(db)
}

func tomorrow() string {
	return time.Now().Add(24 * time.Hour).Format(models.DateLayout)
}

func yesterday() string {
	return time.Now().Add(-24 * time.Hour).Format(models.DateLayout)
}

func mustCreateAppointment(t *testing.T, svc *Service, patientID, doctorID uint) *models.Appointment {
	t.Helper()
	appointment, err := svc.CreateAppointment(CreateAppointmentInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      tomorrow(),
		Time:      "10:00",
	})
	require.NoError(t, err)
	return appointment
}

func setStatus(t *testing.T, svc *Service, id uint, status models.AppointmentStatus) {
	t.Helper()
	require.NoError(t, svc.DB.Model(&models.Appointment{}).Where("id = ?", id).
		Update("status", status).Error)
}

func currentStatus(t *testing.T, svc *Service, id uint) models.AppointmentStatus {
	t.Helper()
	var appointment models.Appointment
	require.NoError(t, svc.DB.First(&appointment, id).Error)
	return appointment.Status
}

func TestCreateAppointment(t *testing.T) {
	svc := newTestService(t)

	appointment, err := svc.CreateAppointment(CreateAppointmentInput{
		PatientID: 1,
		DoctorID:  2,
		Date:      tomorrow(),
		Time:      "10:00",
	})
	require.NoError(t, err)

	assert.NotZero(t, appointment.ID)
	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.Equal(t, tomorrow(), appointment.AppointmentDate)
	assert.Equal(t, "10:00", appointment.AppointmentTime)
	assert.False(t, appointment.CreatedAt.IsZero())
}

func TestCreateAppointmentRejectsPast(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		date string
		time string
	}{
		{"yesterday", yesterday(), "10:00"},
		{"today at the current minute", time.Now().Format(models.DateLayout), time.Now().Format(models.TimeLayout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAppointment(CreateAppointmentInput{
				PatientID: 1, DoctorID: 2, Date: tt.date, Time: tt.time,
			})
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	// No rows may exist after the rejected creates.
	var count int64
	require.NoError(t, svc.DB.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateAppointmentRejectsMalformedInput(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		in   CreateAppointmentInput
	}{
		{"missing ids", CreateAppointmentInput{Date: tomorrow(), Time: "10:00"}},
		{"missing date", CreateAppointmentInput{PatientID: 1, DoctorID: 2, Time: "10:00"}},
		{"missing time", CreateAppointmentInput{PatientID: 1, DoctorID: 2, Date: tomorrow()}},
		{"bad date", CreateAppointmentInput{PatientID: 1, DoctorID: 2, Date: "17-08-2027", Time: "10:00"}},
		{"bad time", CreateAppointmentInput{PatientID: 1, DoctorID: 2, Date: tomorrow(), Time: "10:00:00"}},
		{"nonsense time", CreateAppointmentInput{PatientID: 1, DoctorID: 2, Date: tomorrow(), Time: "25:99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAppointment(tt.in)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestEditAppointmentNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.EditAppointment(42, EditAppointmentInput{Status: "confirmed"})
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "appointment", notFoundErr.Resource)
	assert.Equal(t, uint(42), notFoundErr.ID)
}

func TestEditAppointmentTransitions(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		from    models.AppointmentStatus
		to      string
		allowed bool
	}{
		{models.StatusPending, "confirmed", true},
		{models.StatusPending, "cancelled", true},
		{models.StatusPending, "completed", false},
		{models.StatusConfirmed, "completed", true},
		{models.StatusConfirmed, "cancelled", true},
		{models.StatusConfirmed, "pending", false},
		{models.StatusCompleted, "cancelled", false},
		{models.StatusCompleted, "confirmed", false},
		{models.StatusCancelled, "pending", false},
		{models.StatusCancelled, "confirmed", false},
		{models.StatusCancelled, "completed", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+tt.to, func(t *testing.T) {
			appointment := mustCreateAppointment(t, svc, 1, 2)
			setStatus(t, svc, appointment.ID, tt.from)

			updated, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: tt.to})
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, models.AppointmentStatus(tt.to), updated.Status)
				assert.Equal(t, models.AppointmentStatus(tt.to), currentStatus(t, svc, appointment.ID))
				return
			}

			var transitionErr *TransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, models.AppointmentStatus(tt.to), transitionErr.To)
			assert.Contains(t, transitionErr.Error(), string(tt.from))
			assert.Contains(t, transitionErr.Error(), tt.to)
			// Failed transition leaves the stored status untouched.
			assert.Equal(t, tt.from, currentStatus(t, svc, appointment.ID))
		})
	}
}

// The transition table has no explicit rule for an edit that requests the
// status the appointment already has. The implemented contract, asserted
// here, is a no-op success for every state including terminal ones.
func TestEditAppointmentSameStatusIsNoOp(t *testing.T) {
	svc := newTestService(t)

	for _, status := range []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			appointment := mustCreateAppointment(t, svc, 1, 2)
			setStatus(t, svc, appointment.ID, status)

			updated, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: string(status)})
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		})
	}
}

func TestEditAppointmentInvalidStatusValue(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)

	_, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: "rescheduled"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.StatusPending, currentStatus(t, svc, appointment.ID))
}

func TestEditAppointmentReschedule(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)

	updated, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{
		Date: "2027-03-14",
		Time: "15:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "2027-03-14", updated.AppointmentDate)
	assert.Equal(t, "15:30", updated.AppointmentTime)
	assert.Equal(t, models.StatusPending, updated.Status)
}

// Edits do not re-validate "future": a doctor may move an appointment into
// the past to correct a mis-recorded visit.
func TestEditAppointmentAllowsPastReschedule(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)

	updated, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{
		Date: yesterday(),
		Time: "08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, yesterday(), updated.AppointmentDate)
}

func TestEditAppointmentAtomicity(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)
	originalDate := appointment.AppointmentDate

	// A rejected status change must also discard the date edit in the same call.
	_, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{
		Date:   "2027-06-01",
		Status: "completed", // pending -> completed is disallowed
	})
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)

	var stored models.Appointment
	require.NoError(t, svc.DB.First(&stored, appointment.ID).Error)
	assert.Equal(t, originalDate, stored.AppointmentDate)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestEditAppointmentMalformedDateTime(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)

	_, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{Date: "tomorrow"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.EditAppointment(appointment.ID, EditAppointmentInput{Time: "9am"})
	require.ErrorAs(t, err, &validationErr)
}

func TestListAndFilterAppointments(t *testing.T) {
	svc := newTestService(t)

	a1 := mustCreateAppointment(t, svc, 1, 2)
	a2 := mustCreateAppointment(t, svc, 1, 3)
	a3 := mustCreateAppointment(t, svc, 4, 2)
	setStatus(t, svc, a3.ID, models.StatusConfirmed)

	all, err := svc.ListAppointments()
	require.NoError(t, err)
	require.Len(t, all, 3)

	t.Run("no filters matches list", func(t *testing.T) {
		filtered, err := svc.FilterAppointments(FilterAppointmentsInput{})
		require.NoError(t, err)
		assert.Equal(t, all, filtered)
	})

	t.Run("by doctor", func(t *testing.T) {
		filtered, err := svc.FilterAppointments(FilterAppointmentsInput{DoctorID: "2"})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, a1.ID, filtered[0].ID)
		assert.Equal(t, a3.ID, filtered[1].ID)
	})

	t.Run("by patient", func(t *testing.T) {
		filtered, err := svc.FilterAppointments(FilterAppointmentsInput{PatientID: "1"})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, a1.ID, filtered[0].ID)
		assert.Equal(t, a2.ID, filtered[1].ID)
	})

	t.Run("by status", func(t *testing.T) {
		filtered, err := svc.FilterAppointments(FilterAppointmentsInput{Status: "confirmed"})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, a3.ID, filtered[0].ID)
	})

	t.Run("all three filters intersect", func(t *testing.T) {
		filtered, err := svc.FilterAppointments(FilterAppointmentsInput{
			DoctorID: "2", PatientID: "4", Status: "confirmed",
		})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, a3.ID, filtered[0].ID)
	})

	t.Run("disjoint filters yield empty list", func(t *testing.T) {
		filtered, err := svc.FilterAppointments(FilterAppointmentsInput{
			DoctorID: "3", PatientID: "4",
		})
		require.NoError(t, err)
		assert.Empty(t, filtered)
		assert.NotNil(t, filtered)
	})

	t.Run("non-numeric ids rejected", func(t *testing.T) {
		var validationErr *ValidationError
		_, err := svc.FilterAppointments(FilterAppointmentsInput{DoctorID: "dr-house"})
		assert.ErrorAs(t, err, &validationErr)
		_, err = svc.FilterAppointments(FilterAppointmentsInput{PatientID: "abc"})
		assert.ErrorAs(t, err, &validationErr)
	})
}

// Full booking scenario: pending -> confirmed -> cancelled, then the
// terminal cancellation blocks any revival.
func TestAppointmentLifecycleScenario(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)
	assert.Equal(t, models.StatusPending, appointment.Status)

	updated, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	updated, err = svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)

	_, err = svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: "confirmed"})
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.StatusCancelled, currentStatus(t, svc, appointment.ID))
}

func TestCreateThenCompleteDirectlyFails(t *testing.T) {
	svc := newTestService(t)
	appointment := mustCreateAppointment(t, svc, 1, 2)

	_, err := svc.EditAppointment(appointment.ID, EditAppointmentInput{Status: "completed"})
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.StatusPending, transitionErr.From)
	assert.Equal(t, models.StatusCompleted, transitionErr.To)
}
