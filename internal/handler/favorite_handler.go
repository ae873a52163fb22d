package handler

import (
	"net/http"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/middleware"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorites *repository.FavoriteRepository
}

func NewFavoriteHandler(favorites *repository.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		ProductID string  `json:"product_id" binding:"required"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"` // major units
		ImageURL  string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exists, err := h.favorites.IsFavorite(userID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save favorite"})
		return
	}
	if exists {
		c.JSON(http.StatusOK, gin.H{"favorited": true})
		return
	}
	f := &models.Favorite{
		UserID:    userID,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     domain.ToMinorUnits(req.Price),
		ImageURL:  req.ImageURL,
	}
	if err := h.favorites.Add(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save favorite"})
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.favorites.Remove(userID, c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.favorites.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load favorites"})
		return
	}
	c.JSON(http.StatusOK, list)
}
