package attendance

import (
	"errors"

	mapset "github.com/deckarep/golang-set"
	"github.com/go-playground/validator/v10"
)

// ScanRequest holds the form fields of a scan as received.
type ScanRequest struct {
	UserCode string `validate:"required"`
	RoomCode string `validate:"required"`
	Role     string `validate:"required"`
}

// ScanResult is what a successful scan reports back.
type ScanResult struct {
	RecordID uint
	RoomName string
	Status   Status
}

type requestValidator struct {
	validate     *validator.Validate
	allowedRoles mapset.Set
}

func newRequestValidator(allowedRoles []string) *requestValidator {
	v := &requestValidator{
		validate:     validator.New(),
		allowedRoles: mapset.NewThreadUnsafeSet(),
	}
	for _, role := range allowedRoles {
		if role != "" {
			v.allowedRoles.Add(role)
		}
	}
	return v
}

func (v *requestValidator) check(req ScanRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		return validationError(msgMissingFields, fieldErrs)
	}

	if v.allowedRoles.Cardinality() > 0 && !v.allowedRoles.Contains(req.Role) {
		return validationError(msgInvalidRole, nil)
	}

	return nil
}
