package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/utils"
)

type NotificationSettingsRequest struct {
	EmailNotifications *bool `json:"email_notifications"`
}

// UpdateNotificationSettings lets a user toggle their own email
// notifications.
func UpdateNotificationSettings(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req NotificationSettingsRequest

	if err := ctx.BindJSON(&req); err != nil || req.EmailNotifications == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email_notifications required"})
		return
	}

	err = db.DB.Model(&models.User{}).
		Where("id = ?", currentUser.ID).
		Update("email_notifications", *req.EmailNotifications).Error

	if err != nil {
		log.Printf("Failed to update notification settings: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"email_notifications": *req.EmailNotifications})
}
