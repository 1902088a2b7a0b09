package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/oidc"
	"github.com/BruksfildServices01/barbershop-manager/internal/session"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

const (
	stateCookie    = "oidc_state"
	stateCookieTTL = 600
)

// OIDCProvider is the identity provider side of the login flow.
type OIDCProvider interface {
	AuthCodeURL(ctx context.Context, state string) (string, error)
	Exchange(ctx context.Context, code string) (*oidc.Identity, error)
	LogoutURL(ctx context.Context, returnTo string) string
}

type AuthHandler struct {
	users    *repository.UserGormRepository
	sessions *session.Manager
	provider OIDCProvider
	appURL   string
	secure   bool

	checkDomain func(email string) bool
}

// NewAuthHandler wires local and OIDC login. provider may be nil when no
// identity provider is configured.
func NewAuthHandler(
	users *repository.UserGormRepository,
	sessions *session.Manager,
	provider OIDCProvider,
	appURL string,
	secure bool,
) *AuthHandler {
	return &AuthHandler{
		users:       users,
		sessions:    sessions,
		provider:    provider,
		appURL:      appURL,
		secure:      secure,
		checkDomain: validators.IsEmailDomainValid,
	}
}

var authErrors = merge(httperr.Mapping{
	"invalid_email":        {Status: http.StatusBadRequest, Message: "E-mail inválido."},
	"invalid_email_domain": {Status: http.StatusBadRequest, Message: "O domínio do e-mail informado não parece ser válido."},
	"invalid_credentials":  {Status: http.StatusUnauthorized, Message: "E-mail ou senha incorretos."},
	"email_already_exists": {Status: http.StatusConflict, Message: "Já existe uma conta com este e-mail."},
	"oidc_disabled":        {Status: http.StatusServiceUnavailable, Message: "Login externo indisponível."},
})

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// --------- Local credentials ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if email == "" {
		httperr.Respond(c, httperr.ErrBusiness("invalid_email"), authErrors)
		return
	}
	if !h.checkDomain(email) {
		httperr.Respond(c, httperr.ErrBusiness("invalid_email_domain"), authErrors)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err, authErrors)
		return
	}

	user := &models.User{
		Email:        &email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hashed),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		httperr.Respond(c, err, authErrors)
		return
	}

	h.startSession(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		httperr.Respond(c, notFoundAs(err, "invalid_credentials"), authErrors)
		return
	}

	// OIDC accounts have no password.
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_credentials"), authErrors)
		return
	}

	h.startSession(c, http.StatusOK, user)
}

// --------- OIDC ---------

func (h *AuthHandler) OIDCLogin(c *gin.Context) {
	if h.provider == nil {
		httperr.Respond(c, httperr.ErrBusiness("oidc_disabled"), authErrors)
		return
	}

	state := uuid.NewString()
	url, err := h.provider.AuthCodeURL(c.Request.Context(), state)
	if err != nil {
		httperr.Respond(c, err, authErrors)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieTTL, "/api", "", h.secure, true)
	c.Redirect(http.StatusFound, url)
}

func (h *AuthHandler) OIDCCallback(c *gin.Context) {
	if h.provider == nil {
		httperr.Respond(c, httperr.ErrBusiness("oidc_disabled"), authErrors)
		return
	}

	expected, _ := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/api", "", h.secure, true)

	if expected == "" || c.Query("state") != expected || c.Query("code") == "" {
		c.Redirect(http.StatusFound, h.appURL+"/?login=failed")
		return
	}

	id, err := h.provider.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("oidc exchange failed")
		c.Redirect(http.StatusFound, h.appURL+"/?login=failed")
		return
	}

	user := &models.User{
		ID:              id.Subject,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
	}
	if email := validators.NormalizeEmail(id.Email); email != "" {
		user.Email = &email
	}
	if err := h.users.Upsert(c.Request.Context(), user); err != nil {
		httperr.Respond(c, err, authErrors)
		return
	}

	if _, ok := h.setSessionCookie(c, user); !ok {
		return
	}
	c.Redirect(http.StatusFound, h.appURL+"/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secure, true)

	target := h.appURL + "/"
	if h.provider != nil {
		target = h.provider.LogoutURL(c.Request.Context(), target)
	}
	c.Redirect(http.StatusFound, target)
}

// --------- Session ---------

func (h *AuthHandler) setSessionCookie(c *gin.Context, user *models.User) (string, bool) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	token, err := h.sessions.Mint(user.ID, user.FirstName, email)
	if err != nil {
		httperr.Respond(c, err, authErrors)
		return "", false
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.secure, true)
	return token, true
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *models.User) {
	token, ok := h.setSessionCookie(c, user)
	if !ok {
		return
	}
	c.JSON(status, authResponse{User: user, Token: token})
}
