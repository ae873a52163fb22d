package handler

import (
	"net/http"

	"gamoiwere/internal/middleware"
	"gamoiwere/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	users *repository.UserRepository
}

func NewMeHandler(users *repository.UserRepository) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}
	c.JSON(http.StatusOK, u)
}
