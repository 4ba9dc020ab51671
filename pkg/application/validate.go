package application

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	// Letters plus any Unicode space separator, matching browser-side \s.
	namePattern   = regexp.MustCompile(`^[A-Za-z\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]+$`)
)

// Validate checks every rule independently and returns the resulting error
// mapping. It has no side effects. Fields without rules never appear.
func Validate(state State) Errors {
	err := validation.ValidateStruct(&state,
		validation.Field(&state.FirstName,
			validation.Required.Error(MsgInvalidFirstName),
			validation.Match(namePattern).Error(MsgInvalidFirstName),
		),
		validation.Field(&state.LastName,
			validation.Required.Error(MsgInvalidLastName),
			validation.Match(namePattern).Error(MsgInvalidLastName),
		),
		validation.Field(&state.MobileNo,
			validation.Required.Error(MsgInvalidMobileNo),
			validation.Match(mobilePattern).Error(MsgInvalidMobileNo),
		),
		validation.Field(&state.Email,
			validation.Required.Error(MsgMissingEmail),
		),
		validation.Field(&state.Resume,
			validation.Required.Error(MsgMissingResume),
		),
	)
	return errorsFromValidation(err)
}

// Valid reports whether Validate returns an empty mapping.
func Valid(state State) bool {
	return Validate(state).Empty()
}

func errorsFromValidation(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		// Only a malformed rule set gets here.
		panic(err)
	}
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			errs[field] = fieldErr.Error()
		}
	}
	return errs
}
