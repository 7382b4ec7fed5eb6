package auth

import (
	"net/http"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/request"
	"go-hrm/internal/shared/response"
	"go-hrm/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service       Service
	secureCookies bool
}

// NewHandler takes secureCookies=true in production so cookies only travel
// over HTTPS.
func NewHandler(s Service, secureCookies bool) *Handler {
	return &Handler{service: s, secureCookies: secureCookies}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func isWeb(c *gin.Context) bool {
	return request.IsWebClient(request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeSession(c *gin.Context, sess Session) {
	if isWeb(c) {
		h.setCookie(c, accessCookie, sess.AccessToken, int(token.AccessTTL.Seconds()))
		h.setCookie(c, refreshCookie, sess.RefreshToken, int(token.RefreshTTL.Seconds()))
	}
	response.Success(c, http.StatusOK, sess, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.writeSession(c, sess)
}

// Refresh reads the refresh token from the cookie for browsers and from the
// body for everyone else.
func (h *Handler) Refresh(c *gin.Context) {
	var refreshToken string
	if isWeb(c) {
		v, err := c.Cookie(refreshCookie)
		if err != nil || v == "" {
			writeServiceError(c, autherrors.ErrTokenNotFound)
			return
		}
		refreshToken = v
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	sess, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.writeSession(c, sess)
}

func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context(), contextutil.GetUserID(c.Request.Context()))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}
