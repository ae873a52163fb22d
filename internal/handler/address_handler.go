package handler

import (
	"net/http"
	"strconv"

	"gamoiwere/internal/middleware"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addresses *repository.AddressRepository
}

func NewAddressHandler(addresses *repository.AddressRepository) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

type addressRequest struct {
	Title          string `json:"title"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	StreetAddress  string `json:"street_address" binding:"required"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Region         string `json:"region"`
	IsDefault      bool   `json:"is_default"`
}

func (h *AddressHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.addresses.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load addresses"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AddressHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &models.Address{
		UserID:         userID,
		Title:          req.Title,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		StreetAddress:  req.StreetAddress,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Region:         req.Region,
		IsDefault:      req.IsDefault,
	}
	if err := h.addresses.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save address"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AddressHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}
	a, err := h.addresses.GetByID(uint(id))
	if err != nil || a.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.Title = req.Title
	a.RecipientName = req.RecipientName
	a.RecipientPhone = req.RecipientPhone
	a.StreetAddress = req.StreetAddress
	a.City = req.City
	a.PostalCode = req.PostalCode
	a.Region = req.Region
	a.IsDefault = req.IsDefault
	if err := h.addresses.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save address"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}
	if err := h.addresses.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}
	if err := h.addresses.SetDefault(uint(id), userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"default": true})
}
