package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"
)

// respondSchedulingError maps the scheduling error taxonomy onto HTTP
// responses. Anything outside the taxonomy is a store failure and surfaces
// as a 500.
func respondSchedulingError(c *gin.Context, err error) {
	var (
		validationErr *scheduling.ValidationError
		notFoundErr   *scheduling.NotFoundError
		conflictErr   *scheduling.ConflictError
		transitionErr *scheduling.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Error())
	case errors.As(err, &transitionErr):
		utils.BadRequest(c, transitionErr.Error())
	case errors.As(err, &notFoundErr):
		utils.NotFound(c, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		utils.Conflict(c, conflictErr.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
