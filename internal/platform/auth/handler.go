package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// Credential is the slice of a hospital user the auth flows need. The
// hospitaluser repository is adapted to this interface in main so the two
// packages stay decoupled.
type Credential struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsAdmin      bool
	Active       bool
}

type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	AcceptInvite(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type Handler struct {
	users  UserDirectory
	issuer *TokenIssuer
}

func NewHandler(users UserDirectory, issuer *TokenIssuer) *Handler {
	return &Handler{users: users, issuer: issuer}
}

// RegisterRoutes mounts the public auth endpoints and the session-gated
// adminvalidate check.
func (h *Handler) RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc) {
	grp := e.Group("/auth")
	grp.POST("/signin", h.SignIn)
	grp.POST("/invitation/accept", h.AcceptInvitation)
	grp.GET("/adminvalidate", h.AdminValidate, session)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	StatusCode int       `json:"statusCode"`
	Token      string    `json:"token"`
	UserID     uuid.UUID `json:"user_id"`
	IsAdmin    bool      `json:"is_admin"`
}

func (h *Handler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	cred, err := h.users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Same response as a wrong password so sign-in does not leak
		// which emails exist.
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if !cred.Active {
		return echo.NewHTTPError(http.StatusUnauthorized, "account is inactive")
	}
	if !cred.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "not authorized")
	}

	token, err := h.issuer.IssueSession(cred.ID, cred.IsAdmin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue session")
	}

	return c.JSON(http.StatusOK, signInResponse{
		StatusCode: http.StatusOK,
		Token:      token,
		UserID:     cred.ID,
		IsAdmin:    cred.IsAdmin,
	})
}

// AdminValidate is the route-guard session check: a valid admin session gets
// {"statusCode":200}, anything else never reaches this handler (the session
// middleware answers 401).
func (h *Handler) AdminValidate(c echo.Context) error {
	claims := ClaimsFromContext(c.Request().Context())
	if claims == nil || !claims.IsAdmin {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"statusCode": http.StatusOK})
}

type acceptInvitationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

const minPasswordLength = 8

func (h *Handler) AcceptInvitation(c echo.Context) error {
	var req acceptInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}
	if len(req.Password) < minPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	claims, err := h.issuer.Parse(req.Token, KindInvite)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired invitation")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to set password")
	}

	if err := h.users.AcceptInvite(c.Request().Context(), claims.UserID, string(hash)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invitation could not be accepted")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"statusCode": http.StatusOK})
}
