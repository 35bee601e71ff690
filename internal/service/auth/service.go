package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/repository"
)

// SessionStore maps opaque tokens to employee ids.
type SessionStore interface {
	Put(ctx context.Context, token, employeeID string) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token    string          `json:"token"`
	Employee models.Identity `json:"employee"`
}

// Service authenticates employees and resolves session tokens.
type Service struct {
	employees repository.EmployeeStore
	sessions  SessionStore
	logger    *zap.Logger
	newToken  func() string
}

// NewService wires the authentication service.
func NewService(employees repository.EmployeeStore, sessions SessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		employees: employees,
		sessions:  sessions,
		logger:    logger,
		newToken:  uuid.NewString,
	}
}

// Login checks the credentials and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return LoginResult{}, fmt.Errorf("load employees: %w", err)
	}

	var match *models.Employee
	for i := range employees {
		if employees[i].Username == username {
			match = &employees[i]
			break
		}
	}
	if match == nil || bcrypt.CompareHashAndPassword([]byte(match.PasswordHash), []byte(password)) != nil {
		s.logger.Info("login rejected", zap.String("username", username))
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
	}

	token := s.newToken()
	if err := s.sessions.Put(ctx, token, match.ID); err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("login succeeded", zap.String("employee_id", match.ID))
	return LoginResult{Token: token, Employee: match.Identity()}, nil
}

// Authenticate resolves a token to the caller's identity. The employee must
// still exist.
func (s *Service) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}

	employeeID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return models.Identity{}, fmt.Errorf("load employees: %w", err)
	}

	employee, ok := models.FindEmployee(employees, employeeID)
	if !ok {
		return models.Identity{}, fmt.Errorf("%w: employee account no longer exists", models.ErrUnauthorized)
	}
	return employee.Identity(), nil
}

// Logout revokes a token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// HashPassword produces a bcrypt hash suitable for Employee.PasswordHash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
