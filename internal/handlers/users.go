package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"
)

// UserHandler handles user directory requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// DoctorListing is a doctor profile joined with the account name, as shown
// to patients picking a doctor.
type DoctorListing struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Schedule       string `json:"schedule"`
}

// GetDoctors returns every doctor profile with the doctor's name attached.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	doctors := make([]DoctorListing, 0)
	err := h.DB.Model(&models.Doctor{}).
		Select("doctors.id, users.name, doctors.specialization, doctors.schedule").
		Joins("JOIN users ON users.id = doctors.user_id").
		Order("doctors.id").
		Scan(&doctors).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}
