package practice

import (
	"github.com/incubyte/booking/internal/platform/apperr"
)

var (
	ErrDoctorNotFound      = apperr.NotFound("doctor not found")
	ErrLocationNotFound    = apperr.NotFound("location not found")
	ErrAssociationNotFound = apperr.NotFound("association not found")

	ErrAssociationExists = apperr.Invalid("Doctor is already associated with this location")
	ErrDoctorNameBlank   = apperr.Invalid("first_name and last_name are required")
	ErrAddressBlank      = apperr.Invalid("address is required")
)

func errDoctorExists(first, last string) error {
	return apperr.Invalidf("Doctor: %s %s already exists in the database", first, last)
}

func errLocationExists(address string) error {
	return apperr.Invalidf("Location already exists in the database: %s", address)
}
