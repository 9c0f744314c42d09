package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"office-log-backend/internal/auth"
	"office-log-backend/internal/mw"
	"office-log-backend/internal/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies a credential and issues a bearer token. Unknown user and
// wrong password are indistinguishable to the caller.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		badRequest(c, "Username and password are required")
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.serverError(c, err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	ttl := time.Duration(h.cfg.Auth.TokenTTLHours) * time.Hour
	token, err := auth.GenerateToken([]byte(h.cfg.Auth.JWTSecret), user.ID, user.Username, ttl)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
}

type deleteRequest struct {
	AdminPassword string `json:"admin_password"`
}

// confirmPassword implements the second factor on destructive deletes: the
// caller's own stored credential is re-verified at call time, independent
// of the bearer token. Returns false after writing the refusal.
func (h *Handler) confirmPassword(c *gin.Context) bool {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.AdminPassword) == "" {
		badRequest(c, "Admin password required.")
		return false
	}

	userID := c.GetInt64(mw.CtxUserID)
	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
			return false
		}
		h.serverError(c, err)
		return false
	}

	if !auth.CheckPassword(user.Password, req.AdminPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password."})
		return false
	}
	return true
}
