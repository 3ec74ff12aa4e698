package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/internal/service/geocode"
	"github.com/poolmate/carpool/pkg/errors"
	"github.com/poolmate/carpool/pkg/logger"
)

// respondError translates a service or repository error into the matching
// AppError and writes it. Unknown errors become an opaque 500 so internals
// never leak to clients.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed",
			logger.Err(err),
			logger.String("path", c.FullPath()),
		)
	}
	c.JSON(appErr.Status, appErr)
}

func toAppError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, ride.ErrRideNotFound):
		return errors.ErrRideNotFound
	case stderrors.Is(err, geocode.ErrNoResult):
		return errors.ErrPlaceNotFound
	case stderrors.Is(err, ride.ErrRideClosed):
		return errors.ErrRideClosed
	case stderrors.Is(err, ride.ErrNotEnoughSeats):
		return errors.ErrNotEnoughSeats
	case stderrors.Is(err, ride.ErrInvalidCoordinates):
		return errors.ErrInvalidCoordinates
	case stderrors.Is(err, ride.ErrInvalidSeats):
		return errors.ErrInvalidSeats
	case stderrors.Is(err, ride.ErrInvalidSchedule):
		return errors.ErrInvalidSchedule
	case stderrors.Is(err, ride.ErrInvalidDriverName):
		return errors.BadRequest("Driver name is required", err)
	case stderrors.Is(err, geocode.ErrEmptyQuery):
		return errors.BadRequest("Query must not be empty", err)
	default:
		return errors.GetAppError(err)
	}
}
