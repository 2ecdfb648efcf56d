package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/policy"
	"github.com/jambohub/jambohub/internal/types"
	"github.com/jambohub/jambohub/internal/utils"
	"gorm.io/gorm"
)

type UpdateChannelRequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Icon               *string `json:"icon"`
	Active             *bool   `json:"active"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
}

// ListChannels returns the channels the current user may view, each with a
// canPost flag for the composer UI.
func ListChannels(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var channels []models.Channel

	if err := db.DB.Order("created_at asc").Find(&channels).Error; err != nil {
		log.Printf("Failed to list channels: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	accessible := make([]types.ChannelResponse, 0)

	for _, channel := range channels {
		if !policy.CanView(currentUser, channel) {
			continue
		}

		accessible = append(accessible, types.ChannelResponse{
			ID:          channel.ID,
			Name:        channel.Name,
			Description: channel.Description,
			Icon:        channel.Icon,
			Type:        channel.Type,
			Unit:        channel.Unit,
			CanPost:     policy.CanPost(currentUser, channel),
		})
	}

	ctx.JSON(http.StatusOK, accessible)
}

func AdminListChannels(ctx *gin.Context) {
	var channels []models.Channel

	if err := db.DB.Order("created_at asc").Find(&channels).Error; err != nil {
		log.Printf("Failed to list channels: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.AdminChannelResponse, 0, len(channels))

	for _, channel := range channels {
		responses = append(responses, types.NewAdminChannelResponse(channel))
	}

	ctx.JSON(http.StatusOK, responses)
}

func AdminUpdateChannel(ctx *gin.Context) {
	channelID := ctx.Param("channel_id")

	var channel models.Channel

	if err := db.DB.First(&channel, "id = ?", channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
			return
		}
		log.Printf("Failed to fetch channel: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateChannelRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil && *req.Icon != "" {
		updates["icon"] = *req.Icon
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		updates["push_notifications"] = *req.PushNotifications
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&channel).Updates(updates).Error; err != nil {
		log.Printf("Failed to update channel: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&channel, "id = ?", channelID).Error; err != nil {
		log.Printf("Failed to refresh channel: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewAdminChannelResponse(channel))
}
