package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/errs"
	"github.com/taskboard/taskboard/internal/mail"
	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/internal/telemetry"
	"github.com/taskboard/taskboard/internal/verify"
	"github.com/taskboard/taskboard/pkg/jwt"
)

type AuthService struct {
	users          *repository.UserRepository
	tokens         verify.TokenStore
	mailer         *mail.Service
	recorder       *telemetry.Recorder
	siteName       string
	baseURL        string
	jwtSecret      string
	jwtExpireHours int
	activationTTL  time.Duration
}

func NewAuthService(
	users *repository.UserRepository,
	tokens verify.TokenStore,
	mailer *mail.Service,
	recorder *telemetry.Recorder,
	siteName, baseURL, jwtSecret string,
	jwtExpireHours int,
	activationTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		mailer:         mailer,
		recorder:       recorder,
		siteName:       siteName,
		baseURL:        baseURL,
		jwtSecret:      jwtSecret,
		jwtExpireHours: jwtExpireHours,
		activationTTL:  activationTTL,
	}
}

// Signup creates an inactive account and tries to deliver the
// activation email. The account is committed whether or not the email
// goes out; the returned bool reports delivery so the caller can warn
// the user.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, req telemetry.RequestInfo) (*model.User, bool, error) {
	vErr := &errs.ValidationError{}

	usernameTaken, err := s.users.UsernameTaken(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if usernameTaken {
		vErr.Add("username", "this username is already taken")
	}

	emailTaken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if emailTaken {
		vErr.Add("email", "this email is already registered")
	}

	if !vErr.Empty() {
		return nil, false, vErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return nil, false, err
	}

	sent := s.sendActivationEmail(ctx, user, req)

	s.recorder.Record(ctx, user.ID, "signup_submitted", req, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return user, sent, nil
}

func (s *AuthService) sendActivationEmail(ctx context.Context, user *model.User, req telemetry.RequestInfo) bool {
	token, err := s.tokens.Issue(ctx, user.ID, s.activationTTL)
	if err != nil {
		// Without a token there is no link to send; treat it like a
		// delivery failure so signup still succeeds.
		return false
	}

	activationURL := fmt.Sprintf("%s/auth/activate/%s", s.baseURL, token)
	sent := s.mailer.SendTransactional(ctx, mail.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Activate your %s account", s.siteName),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nPlease confirm your %s account by opening the link below:\n\n%s\n\nThe link expires in %d hours. If you didn't sign up, ignore this email.\n",
			user.Username, s.siteName, activationURL, int(s.activationTTL.Hours()),
		),
	})

	if sent {
		s.recorder.Record(ctx, user.ID, "activation_email_sent", req, map[string]interface{}{
			"user_id": user.ID,
		})
	}
	return sent
}

// AuthResult is a logged-in session: the user plus a bearer token.
type AuthResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Activate redeems a single-use activation token. The first successful
// redemption flips the account active and sends the welcome email;
// the token is gone either way.
func (s *AuthService) Activate(ctx context.Context, token string, req telemetry.RequestInfo) (*AuthResult, error) {
	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, verify.ErrTokenInvalid) {
			return nil, errs.ErrInvalidActivationToken
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := s.users.Activate(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsActive = true
		s.sendWelcomeEmail(ctx, user)
	}

	s.recorder.Record(ctx, user.ID, "signup_activated", req, map[string]interface{}{
		"user_id": user.ID,
	})

	return s.issueSession(user)
}

func (s *AuthService) sendWelcomeEmail(ctx context.Context, user *model.User) {
	sent := s.mailer.SendTransactional(ctx, mail.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Welcome to %s", s.siteName),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour %s account is ready. Log in and create your first workspace to get going.\n",
			user.Username, s.siteName,
		),
	})

	if sent {
		// System-triggered, no acting user.
		s.recorder.Record(ctx, "", "welcome_email_sent", telemetry.RequestInfo{}, map[string]interface{}{
			"user_id": user.ID,
		})
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errs.ErrAccountInactive
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := jwt.GenerateToken(s.jwtSecret, user.ID, s.jwtExpireHours)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
