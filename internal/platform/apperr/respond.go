package apperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status maps err to the HTTP status code the API reports for it.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the response for a failed operation. Not-found errors get an
// empty 404; invalid requests get a 400 carrying the message; anything else is
// a 500 with the cause attached for the access log.
func Respond(c echo.Context, err error) error {
	switch KindOf(err) {
	case KindNotFound:
		return c.NoContent(http.StatusNotFound)
	case KindInvalid:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}
