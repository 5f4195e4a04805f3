package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// User is a single record of the user collection.
// The JSON field names are the persisted format.
type User struct {
	ID    string `json:"id"    validate:"required"`
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
	Age   int    `json:"age"   validate:"gt=0"`
}

// UserInput is the client-supplied data for a new user, before an ID is assigned.
type UserInput struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
	Age   int    `json:"age"   validate:"gt=0"`
}

// UserPatch carries a partial update. Nil fields are left unchanged,
// as are empty name and email values.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"   validate:"omitempty,gt=0"`
}

// Validate checks that all fields of the input are present and well formed.
func (in UserInput) Validate() error {
	return structError(validate.Struct(in))
}

// Validate checks that a stored user satisfies the collection invariants.
func (u User) Validate() error {
	return structError(validate.Struct(u))
}

// Validate checks the fields the patch sets explicitly.
// An explicit age must be positive; zero is not treated as "no change".
func (p UserPatch) Validate() error {
	return structError(validate.Struct(p))
}

// IsEmpty reports whether the patch would leave a user unchanged.
func (p UserPatch) IsEmpty() bool {
	return (p.Name == nil || *p.Name == "") &&
		(p.Email == nil || *p.Email == "") &&
		p.Age == nil
}

// Apply returns a copy of u with the patch applied.
func (u User) Apply(p UserPatch) User {
	if p.Name != nil && *p.Name != "" {
		u.Name = *p.Name
	}
	if p.Email != nil && *p.Email != "" {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	return u
}

// structError converts validator output into domain validation errors.
// The first failing field is reported; the result always matches ErrValidation.
func structError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewValidationError(fe.Field(), tagMessage(fe.Tag()), ErrValidation)
	}

	return NewValidationError("input", err.Error(), ErrValidation)
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "gt":
		return "must be positive"
	default:
		return "is invalid"
	}
}
