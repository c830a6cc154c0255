package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauthapi "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/wahyusaputra/motorshop-backend/internal/middleware"
	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type AuthHandler struct {
	svc         service.AuthService
	auth        *middleware.AuthMiddleware
	oauth       *oauth2.Config
	frontendURL string
}

func NewAuthHandler(svc service.AuthService, auth *middleware.AuthMiddleware, clientID, clientSecret, redirectURL, frontendURL string) *AuthHandler {
	var cfg *oauth2.Config
	if clientID != "" {
		cfg = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: googleoauth.Endpoint,
		}
	}
	return &AuthHandler{svc: svc, auth: auth, oauth: cfg, frontendURL: frontendURL}
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.Register(c.Request().Context(), body.Email, body.Password, body.Name, body.Phone, body.Address)
	if err != nil {
		return serviceError(c, err, "account")
	}
	token, err := h.auth.GenerateToken(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to issue token"))
	}
	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		return serviceError(c, err, "account")
	}
	token, err := h.auth.GenerateToken(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to issue token"))
	}
	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: u})
}

func (h *AuthHandler) GoogleRedirect(c echo.Context) error {
	if h.oauth == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "google sign-in is not configured"))
	}
	return c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL("state"))
}

func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if h.oauth == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "google sign-in is not configured"))
	}
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing code"))
	}
	ctx := c.Request().Context()
	tok, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "code exchange failed"))
	}
	svc, err := oauthapi.NewService(ctx, option.WithTokenSource(h.oauth.TokenSource(ctx, tok)))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to reach google"))
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "failed to fetch user info"))
	}
	u, err := h.svc.GoogleLogin(ctx, info.Id, info.Email, info.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "google sign-in failed"))
	}
	token, err := h.auth.GenerateToken(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to issue token"))
	}
	return c.Redirect(http.StatusTemporaryRedirect, googleCallbackURL(h.frontendURL, token, u.Role))
}

// googleCallbackURL builds the frontend landing URL. The frontend routes on
// the role parameter, so it rides along with the token.
func googleCallbackURL(frontendURL, token string, role model.Role) string {
	return frontendURL + "/auth/callback?token=" + url.QueryEscape(token) + "&role=" + url.QueryEscape(string(role))
}

func (h *AuthHandler) Me(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	u, err := h.svc.GetByID(c.Request().Context(), uid)
	if err != nil {
		if err == service.ErrNotFound {
			return serviceError(c, err, "user")
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch user"))
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var body struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.UpdateBasicProfile(c.Request().Context(), uid, body.Name, body.Phone, body.Address)
	if err != nil {
		return serviceError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}
