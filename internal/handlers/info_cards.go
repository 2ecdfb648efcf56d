package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
	"gorm.io/gorm"
)

type CreateInfoCardRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Link      string `json:"link"`
	SortOrder int    `json:"sort_order"`
}

type UpdateInfoCardRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Icon      *string `json:"icon"`
	Color     *string `json:"color"`
	Link      *string `json:"link"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

// ListInfoCards returns the active cards for the Info view.
func ListInfoCards(ctx *gin.Context) {
	var cards []models.InfoCard

	err := db.DB.
		Where("active = ?", true).
		Order("sort_order asc").
		Find(&cards).Error

	if err != nil {
		log.Printf("Failed to list info cards: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.InfoCardResponse, 0, len(cards))

	for _, card := range cards {
		responses = append(responses, types.NewInfoCardResponse(card))
	}

	ctx.JSON(http.StatusOK, responses)
}

func AdminListInfoCards(ctx *gin.Context) {
	var cards []models.InfoCard

	if err := db.DB.Order("sort_order asc").Find(&cards).Error; err != nil {
		log.Printf("Failed to list info cards: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.InfoCardResponse, 0, len(cards))

	for _, card := range cards {
		responses = append(responses, types.NewInfoCardResponse(card))
	}

	ctx.JSON(http.StatusOK, responses)
}

func AdminCreateInfoCard(ctx *gin.Context) {
	var req CreateInfoCardRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)

	if req.Title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	card := models.InfoCard{
		Title:     req.Title,
		Content:   req.Content,
		Icon:      req.Icon,
		Color:     req.Color,
		Link:      req.Link,
		SortOrder: req.SortOrder,
		Active:    true,
	}

	if err := db.DB.Create(&card).Error; err != nil {
		log.Printf("Failed to create info card: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewInfoCardResponse(card))
}

func AdminUpdateInfoCard(ctx *gin.Context) {
	cardID, err := strconv.ParseUint(ctx.Param("card_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return
	}

	var card models.InfoCard

	if err := db.DB.First(&card, uint(cardID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Info card not found"})
			return
		}
		log.Printf("Failed to fetch info card: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateInfoCardRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Title != nil && *req.Title != "" {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Link != nil {
		updates["link"] = *req.Link
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&card).Updates(updates).Error; err != nil {
		log.Printf("Failed to update info card: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&card, uint(cardID)).Error; err != nil {
		log.Printf("Failed to refresh info card: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewInfoCardResponse(card))
}

func AdminDeleteInfoCard(ctx *gin.Context) {
	cardID, err := strconv.ParseUint(ctx.Param("card_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return
	}

	var card models.InfoCard

	if err := db.DB.First(&card, uint(cardID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Info card not found"})
			return
		}
		log.Printf("Failed to fetch info card: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Delete(&card).Error; err != nil {
		log.Printf("Failed to delete info card: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Info card deleted"})
}
