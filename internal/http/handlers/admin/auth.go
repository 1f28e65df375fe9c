package admin

import (
	"time"

	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 后台登录请求，username 可以是登录名或邮箱
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUserView struct {
	ID          uint   `json:"id"`
	UserLogin   string `json:"user_login"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      loginUserView `json:"user"`
}

// Login 使用 WordPress 账号登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "username and password are required", nil)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if service.IsCredentialsError(err) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: loginUserView{
			ID:          user.ID,
			UserLogin:   user.UserLogin,
			DisplayName: user.DisplayName,
			Email:       user.UserEmail,
		},
	})
}

// GetMe 当前登录用户与角色
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	roles, err := h.AuthService.LoadRoles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "load roles failed", err)
		return
	}
	if roles == nil {
		roles = []string{}
	}
	response.Success(c, gin.H{
		"user_id":    userID,
		"user_login": c.GetString("user_login"),
		"roles":      roles,
	})
}
