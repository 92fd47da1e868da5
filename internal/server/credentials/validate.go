package credentials

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

// signupInput is checked field by field in declaration order; the first
// failing field is reported.
type signupInput struct {
	Email    string `validate:"required,basicemail"`
	Password string `validate:"required,min=6,maxbytes=72"`
	Username string `validate:"required"`
}

var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

var messages = map[string]string{
	"Email.required":    "Email is required",
	"Email.basicemail":  "Please enter a valid email address",
	"Password.required": "Password is required",
	"Password.min":      "Password must be at least 6 characters long",
	"Password.maxbytes": "Password must be at most 72 bytes long",
	"Username.required": "Username is required",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("basicemail", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		// min/max count runes; bcrypt's limit is in bytes
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= n
		})
		validate = v
	})
	return validate
}

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks already-normalized input and returns a *common.ValidationError
// for the first failing field.
func Validate(email, password, username string) error {
	in := signupInput{
		Email:    email,
		Password: password,
		Username: strings.TrimSpace(username),
	}

	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	msg, ok := messages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = fe.Error()
	}
	return common.NewValidationError(strings.ToLower(fe.StructField()), msg)
}
