package validators

import (
	"net/mail"
	"strings"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/errs"
)

func ValidateSignupRequest(r *dto.SignupRequest) error {
	vErr := &errs.ValidationError{}

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if r.Username == "" {
		vErr.Add("username", "username is required")
	} else if len(r.Username) > 150 {
		vErr.Add("username", "username must be at most 150 characters")
	}

	if r.Email == "" {
		vErr.Add("email", "email is required")
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		vErr.Add("email", "must be a valid email address")
	}

	if len(r.Password) < 8 {
		vErr.Add("password", "password must be at least 8 characters")
	}

	if !vErr.Empty() {
		return vErr
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	vErr := &errs.ValidationError{}

	if strings.TrimSpace(r.Username) == "" {
		vErr.Add("username", "username is required")
	}
	if r.Password == "" {
		vErr.Add("password", "password is required")
	}

	if !vErr.Empty() {
		return vErr
	}
	return nil
}
