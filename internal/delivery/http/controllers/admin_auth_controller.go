package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/middleware"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"
)

// Login page errors.
const (
	msgLoginEndpointMissing = "Admin login endpoint not found. Please check if the backend is running."
	msgLoginUnreachable     = "Cannot connect to backend. Please check if the server is running on the correct URL."
	msgLoginFailed          = "Login failed. Please try again."
)

// DashboardPath is where a successful login lands.
const DashboardPath = "/admin/dashboard"

// RefreshSessionRequest is the optional body of POST /api/session/refresh.
// Browsers send the refresh cookie instead.
type RefreshSessionRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshSessionResponse reports the new cookie lifetimes. Tokens travel only in cookies.
type RefreshSessionResponse struct {
	User             domain.AdminUser `json:"user"`
	AccessExpiresAt  time.Time        `json:"access_expires_at"`
	RefreshExpiresAt time.Time        `json:"refresh_expires_at"`
}

// RefreshSessionSuccessResponse is the success envelope for POST /api/session/refresh (200).
type RefreshSessionSuccessResponse struct {
	Data  RefreshSessionResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// AdminAuthController handles admin login, logout, and session refresh.
type AdminAuthController struct {
	pages
	Auth    domain.AuthService
	Guard   *middleware.SessionGuard
	Cookies helpers.CookieOptions
	now     func() time.Time
}

func NewAdminAuthController(logger *slog.Logger, v *views.Renderer, auth domain.AuthService, guard *middleware.SessionGuard, cookies helpers.CookieOptions) *AdminAuthController {
	return &AdminAuthController{
		pages:   pages{Logger: logger, Views: v},
		Auth:    auth,
		Guard:   guard,
		Cookies: cookies,
		now:     time.Now,
	}
}

// LoginPage shows the login form, or skips it when a session is already active.
func (c *AdminAuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.Guard.Resolve(w, r); ok {
		redirect(w, r, DashboardPath)
		return
	}
	c.render(w, r, http.StatusOK, views.PageAdminLogin, views.Page{Title: "Admin login", Content: views.LoginView{}})
}

// Login exchanges credentials for a console session.
func (c *AdminAuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	_, tokens, err := c.Auth.Login(r.Context(), username, password)
	if err != nil {
		status := http.StatusUnauthorized
		if domain.BackendStatus(err) == 0 && !errors.Is(err, domain.ErrLoginRejected) && !errors.Is(err, domain.ErrValidation) {
			c.logFailure(r, err)
			status = http.StatusBadGateway
		}
		c.render(w, r, status, views.PageAdminLogin, views.Page{
			Title:   "Admin login",
			Error:   loginErrorMessage(err),
			Content: views.LoginView{Username: username},
		})
		return
	}
	helpers.SetSessionCookies(w, c.Cookies, tokens, c.now())
	redirect(w, r, DashboardPath)
}

func loginErrorMessage(err error) string {
	var rejected *domain.LoginRejectedError
	switch {
	case errors.Is(err, domain.ErrEndpointMissing):
		return msgLoginEndpointMissing
	case errors.Is(err, domain.ErrBackendUnreachable):
		return msgLoginUnreachable
	case errors.As(err, &rejected) && rejected.Message != "":
		return rejected.Message
	}
	if msg := domain.BackendMessage(err); msg != "" {
		return msg
	}
	return msgLoginFailed
}

// Logout revokes the session and clears cookies whatever the backend answered.
func (c *AdminAuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := c.Guard.Resolve(w, r); ok {
		if err := c.Auth.Logout(r.Context(), s); err != nil {
			c.logFailure(r, err)
		}
	}
	helpers.ClearSessionCookies(w, c.Cookies)
	redirect(w, r, middleware.LoginPath)
}

// RefreshSession godoc
// @Summary Rotate the admin session tokens
// @Description Redeems the refresh token from the dc_refresh cookie (or the JSON body) for a new access token and a new refresh token, both set as cookies. A refresh token can be redeemed once.
// @Tags session
// @Accept json
// @Produce json
// @Param body body RefreshSessionRequest false "Refresh token, when no cookie is sent"
// @Success 200 {object} controllers.RefreshSessionSuccessResponse "data contains the user and the new expiry times"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/session/refresh [post]
func (c *AdminAuthController) RefreshSession(w http.ResponseWriter, r *http.Request) {
	token := helpers.CookieValue(r, helpers.RefreshCookie)
	if token == "" {
		var req RefreshSessionRequest
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
		token = req.RefreshToken
	}
	s, tokens, err := c.Auth.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrSessionRevoked) {
			helpers.ClearSessionCookies(w, c.Cookies)
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired refresh token")
			return
		}
		c.logFailure(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not refresh session")
		return
	}
	helpers.SetSessionCookies(w, c.Cookies, tokens, c.now())
	helpers.WriteJSONSuccess(w, http.StatusOK, RefreshSessionResponse{
		User:             s.User,
		AccessExpiresAt:  tokens.AccessExpiresAt,
		RefreshExpiresAt: tokens.RefreshExpiresAt,
	})
}
