package chat

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator that reports fields by their
// query or JSON name.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			if name, _, _ := strings.Cut(fld.Tag.Get(tag), ","); name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validationMessage turns the first validation failure into a client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "Missing " + fe.Field()
	case "max":
		return "Parameter " + fe.Field() + " is too long"
	default:
		return "Invalid " + fe.Field()
	}
}

// CreateRequest asks for a room; an empty code asks the server to pick one.
type CreateRequest struct {
	Room string `query:"room" validate:"max=32"`
}

// JoinRequest adds a user to a room.
type JoinRequest struct {
	Room string `query:"room" validate:"required,max=32"`
	UID  string `query:"uid" validate:"required,max=64"`
	User string `query:"user" validate:"required,max=64"`
}

// MemberRequest identifies a user in a room. It backs leave, typing and send,
// where unknown rooms and users are tolerated.
type MemberRequest struct {
	Room string `query:"room" validate:"max=32"`
	UID  string `query:"uid" validate:"max=64"`
	User string `query:"user" validate:"max=64"`
}

// SendRequest posts a chat message; the text travels in the JSON body.
type SendRequest struct {
	Room string `query:"room" validate:"required,max=32"`
	UID  string `query:"uid" validate:"max=64"`
	User string `query:"user" validate:"max=64"`
}

// SendBody is the JSON body of a send.
type SendBody struct {
	Msg string `json:"msg"`
}

// PollRequest fetches updates after the since cursor. A missing or malformed
// cursor means "from the beginning".
type PollRequest struct {
	Room  string `query:"room" validate:"required,max=32"`
	UID   string `query:"uid" validate:"max=64"`
	Since string `query:"since"`
}

// CheckRequest asks whether a room exists.
type CheckRequest struct {
	Room string `query:"room" validate:"max=32"`
}
