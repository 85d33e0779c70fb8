package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/domain/auth"
	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/domain/profile"
)

// AccountHandler serves authentication, settings and the profile.
type AccountHandler struct {
	service *backend.Service
}

// NewAccountHandler wires dependencies for account routes.
func NewAccountHandler(service *backend.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

type registerRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email"`
	Password string  `json:"password" binding:"required"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type settingRequest struct {
	Key   string  `json:"key" binding:"required"`
	Value *string `json:"value"`
}

// Login exchanges form credentials for a bearer token.
func (h *AccountHandler) Login(c *gin.Context) {
	username, hasUser := c.GetPostForm("username")
	password, hasPassword := c.GetPostForm("password")
	var issues []ValidationIssue
	if !hasUser {
		issues = append(issues, missing("body", "username"))
	}
	if !hasPassword {
		issues = append(issues, missing("body", "password"))
	}
	if len(issues) > 0 {
		respondInvalid(c, issues...)
		return
	}
	token, err := h.service.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Register creates an account.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.Register(c.Request.Context(), auth.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated user.
func (h *AccountHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword rotates the authenticated user's password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.service.ChangePassword(c.Request.Context(), user, auth.PasswordChange{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpsertSetting stores a key/value setting.
func (h *AccountHandler) UpsertSetting(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req settingRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.UpsertSetting(c.Request.Context(), user.ID, req.Key, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSetting reads one setting.
func (h *AccountHandler) GetSetting(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.GetSetting(c.Request.Context(), user.ID, c.Param("key")))
}

// GetProfile returns the profile, creating it on first access.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.GetProfile(c.Request.Context(), user.ID))
}

// UpdateProfile replaces the profile.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req profile.Profile
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.service.UpdateProfile(c.Request.Context(), user.ID, req))
}
