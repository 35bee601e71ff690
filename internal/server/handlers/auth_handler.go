package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/service/auth"
)

const (
	identityKey = "identity"
	tokenKey    = "token"
)

// AuthService is the session surface used by the HTTP layer.
type AuthService interface {
	Login(ctx context.Context, username, password string) (auth.LoginResult, error)
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves login/logout and guards authenticated routes.
type AuthHandler struct {
	svc    AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Logout revokes the caller's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequireSession resolves the bearer token and stores the caller identity.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, h.logger, fmt.Errorf("%w: please log in", models.ErrUnauthorized))
			return
		}

		identity, err := h.svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, h.logger, err)
			return
		}

		c.Set(tokenKey, token)
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireManager rejects callers without manager privileges. It must run
// after RequireSession.
func (h *AuthHandler) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).IsManager() {
			abortWithError(c, h.logger, fmt.Errorf("%w: manager role required", models.ErrForbidden))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func callerFrom(c *gin.Context) models.Identity {
	identity, _ := c.Get(identityKey)
	caller, _ := identity.(models.Identity)
	return caller
}
