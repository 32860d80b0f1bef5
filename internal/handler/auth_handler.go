package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/middleware"
	"droppoint-partner-api/internal/service"
	"droppoint-partner-api/internal/utils"
)

const oauthStateCookie = "dp_oauth_state"

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler() *AuthHandler { return &AuthHandler{svc: service.NewAuthService()} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	partner, token, err := h.svc.LoginWithApiKey(req.ApiKey)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.Error(errCode(err)))
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, utils.Success(gin.H{
		"partner_id": partner.PartnerID,
		"name":       partner.Name,
		"token":      token,
	}))
}

// GoogleLogin sends the browser to the Google consent screen with a fresh
// CSRF state bound to a cookie.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
		return
	}
	state := hex.EncodeToString(raw)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.svc.GoogleAuthURL(state))
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, _ := c.Cookie(oauthStateCookie)
	if state == "" || c.Query("state") != state {
		c.JSON(http.StatusForbidden, utils.Error(constant.CodeForbidden))
		return
	}
	partner, token, err := h.svc.LoginWithGoogle(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.Error(errCode(err)))
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, utils.Success(gin.H{
		"partner_id": partner.PartnerID,
		"name":       partner.Name,
		"token":      token,
	}))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)
	if token != "" {
		h.svc.Logout(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := config.C.Security.SessionTTLMinutes * 60
	if maxAge <= 0 {
		maxAge = 86400
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}
