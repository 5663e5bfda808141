package card

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	FieldNumber     = "number"
	FieldHolderName = "holder_name"
	FieldExpiry     = "expiry"
	FieldCVV        = "cvv"

	CodeRequired         = "required"
	CodeInvalidNumber    = "invalid_number"
	CodeUnsupportedBrand = "unsupported_brand"
	CodeInvalidExpiry    = "invalid_expiry"
	CodeExpired          = "expired"
	CodeInvalidCVV       = "invalid_cvv"
	CodeTooLong          = "too_long"
)

// Input is the card section of a checkout form, as typed by the buyer.
type Input struct {
	Number     string `json:"number" validate:"required,luhn"`
	HolderName string `json:"holder_name" validate:"required,max=64"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required,number"`
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of an Input.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid card: " + strings.Join(parts, "; ")
}

func (e ValidationError) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator returns a Validator judging expiry against now; a nil now
// means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("luhn", func(fl validator.FieldLevel) bool {
		return IsValidNumber(OnlyDigits(fl.Field().String()))
	})
	return &Validator{validate: v, now: now}
}

// Validate checks every field of in and returns the parsed card, or a
// ValidationError naming each failing field.
func (v *Validator) Validate(in Input) (*Card, error) {
	var errs ValidationError
	if err := v.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	digits := OnlyDigits(in.Number)
	brand := DetectBrand(digits)
	if !errs.Has(FieldNumber) && brand == Unknown {
		errs = append(errs, FieldError{FieldNumber, CodeUnsupportedBrand, "card brand is not accepted"})
	}

	month, year, err := ParseExpiry(in.Expiry)
	if !errs.Has(FieldExpiry) {
		switch {
		case err != nil:
			errs = append(errs, FieldError{FieldExpiry, CodeInvalidExpiry, err.Error()})
		case !expiryInRange(month, year):
			errs = append(errs, FieldError{FieldExpiry, CodeInvalidExpiry, "expiry month or year out of range"})
		case !IsValidExpiryAt(month, year, v.now()):
			errs = append(errs, FieldError{FieldExpiry, CodeExpired, "card is expired"})
		}
	}

	if want := RequiredCVVLength(brand); !errs.Has(FieldCVV) && len(in.CVV) != want {
		errs = append(errs, FieldError{FieldCVV, CodeInvalidCVV, fmt.Sprintf("cvv must have %d digits", want)})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Card{
		Number:     digits,
		HolderName: strings.TrimSpace(in.HolderName),
		ExpMonth:   month,
		ExpYear:    year,
		CVV:        in.CVV,
		Brand:      brand,
	}, nil
}

func fieldError(fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "required":
		return FieldError{fe.Field(), CodeRequired, "is required"}
	case "luhn":
		return FieldError{fe.Field(), CodeInvalidNumber, "card number failed checksum validation"}
	case "number":
		return FieldError{fe.Field(), CodeInvalidCVV, "must contain digits only"}
	case "max":
		return FieldError{fe.Field(), CodeTooLong, "must be at most " + fe.Param() + " characters"}
	}
	return FieldError{fe.Field(), fe.Tag(), "is invalid"}
}
