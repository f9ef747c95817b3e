package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/RodCinelli/gestao-engparente/internal/http/response"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

type UserHandler struct {
	authService services.AuthService
}

func NewUserHandler(authService services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// POST /api/users/register/
func (uh *UserHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	user, err := uh.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, user)
}

// POST /api/users/login/
func (uh *UserHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	res, err := uh.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access":     res.Access,
		"refresh":    res.Refresh,
		"user":       res.User,
		"expires_in": int(uh.authService.AccessTTL().Seconds()),
	})
}

// POST /api/users/token/refresh/
func (uh *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	access, err := uh.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"access": access})
}

// POST /api/users/logout/
//
// The body is optional. Without a refresh token every session of the caller
// is revoked.
func (uh *UserHandler) Logout(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if c.Request.ContentLength > 0 {
		if err := bindJSON(c, &req); err != nil {
			response.FromError(c, err)
			return
		}
	}
	if err := uh.authService.Logout(c.Request.Context(), req.Refresh); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/users/me/
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.authService.Me(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, me)
}

// GET /api/users/
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.authService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, users)
}
