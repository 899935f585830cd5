package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridedispatch/service"
)

func (s *Server) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.cfg.RefreshCookieName, token, maxAge, authCookiePath, s.cfg.CookieDomain, s.cfg.CookieSecure, true)
}

func (s *Server) writeTokens(c *gin.Context, res *service.AuthResult) {
	s.setRefreshCookie(c, res.Tokens.RefreshToken, res.Tokens.RefreshExpiresAt)
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: res.Tokens.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.Tokens.AccessExpiresAt,
		User:        res.User,
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if !s.bindJSON(c, &req) {
		return
	}
	res, err := s.svc.Auth().Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.writeTokens(c, res)
}

func (s *Server) refresh(c *gin.Context) {
	token, _ := c.Cookie(s.cfg.RefreshCookieName)
	res, err := s.svc.Auth().Refresh(c.Request.Context(), token)
	if err != nil {
		s.setRefreshCookie(c, "", time.Time{})
		s.abortWithError(c, err)
		return
	}
	s.writeTokens(c, res)
}

func (s *Server) logout(c *gin.Context) {
	token, _ := c.Cookie(s.cfg.RefreshCookieName)
	s.setRefreshCookie(c, "", time.Time{})
	if err := s.svc.Auth().Logout(c.Request.Context(), currentUserID(c), token); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	user, err := s.svc.Auth().Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
