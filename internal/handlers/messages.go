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
	"github.com/jambohub/jambohub/internal/notify"
	"github.com/jambohub/jambohub/internal/policy"
	"github.com/jambohub/jambohub/internal/types"
	"github.com/jambohub/jambohub/internal/utils"
	"gorm.io/gorm"
)

// Notifier is the shared dispatcher, set from main. A nil Notifier disables
// fan-out (tests, or notification-less deployments).
var Notifier *notify.Dispatcher

type CreateMessageRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func ListMessages(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

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

	if !policy.CanView(currentUser, channel) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var messages []models.Message

	err = db.DB.
		Preload("Author").
		Where("channel_id = ?", channelID).
		Order("created_at asc").
		Find(&messages).Error

	if err != nil {
		log.Printf("Failed to list messages: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.MessageResponse, 0, len(messages))

	for _, message := range messages {
		responses = append(responses, types.NewMessageResponse(message, message.Author))
	}

	ctx.JSON(http.StatusOK, responses)
}

func CreateMessage(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateMessageRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Content = strings.TrimSpace(req.Content)

	if req.Content == "" && req.ImageURL == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message content required"})
		return
	}

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

	if !policy.CanPost(currentUser, channel) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot post in this channel"})
		return
	}

	message := models.Message{
		ChannelID: channel.ID,
		UserID:    currentUser.ID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
	}

	if err := db.DB.Create(&message).Error; err != nil {
		log.Printf("Failed to create message: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// The message is committed; notifications are best-effort from here on.
	if Notifier != nil {
		Notifier.Enqueue(notify.Job{Message: message, Channel: channel, Author: currentUser})
	}

	ctx.JSON(http.StatusCreated, types.NewMessageResponse(message, currentUser))
}

// TogglePin flips a message's pinned flag. Admins and adult leaders only.
func TogglePin(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RoleAdmin && currentUser.Role != types.RoleAdultLeader {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		return
	}

	messageID, err := strconv.ParseUint(ctx.Param("message_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.Message

	if err := db.DB.First(&message, uint(messageID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		log.Printf("Failed to fetch message: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&message).Update("pinned", !message.Pinned).Error; err != nil {
		log.Printf("Failed to toggle pin: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"pinned": !message.Pinned})
}
