package http

import (
	"github.com/fjod/wavewonders/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = domain.NewValidator()

// missingFields lists the json names of absent required fields. Pointer
// fields count as present when set, even to a zero value.
func missingFields(dto interface{}) []string {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}
