package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/notify"
	"github.com/jambohub/jambohub/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VAPID is the server's Web Push identity, set from main after
// load-or-generate.
var VAPID notify.VAPIDConfig

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func VapidPublicKey(ctx *gin.Context) {
	if VAPID.PublicKey == "" {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"publicKey": VAPID.PublicKey})
}

// Subscribe registers a browser's push subscription. The endpoint is the
// natural key: resubscribing updates the owner and keys in place.
func Subscribe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubscribeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Endpoint and keys required"})
		return
	}

	status := http.StatusCreated
	message := "Subscribed"

	var existing models.PushSubscription

	err = db.DB.Where("endpoint = ?", req.Endpoint).First(&existing).Error

	if err == nil {
		status = http.StatusOK
		message = "Subscription updated"
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check push subscription: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	subscription := models.PushSubscription{
		UserID:   currentUser.ID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}

	// Upsert on the endpoint so two first-time registrations racing each
	// other both land on the conflict path instead of tripping the unique
	// index.
	err = db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(&subscription).Error

	if err != nil {
		log.Printf("Failed to save push subscription: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(status, gin.H{"message": message})
}

func Unsubscribe(ctx *gin.Context) {
	var req UnsubscribeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Endpoint required"})
		return
	}

	if err := db.DB.Where("endpoint = ?", req.Endpoint).Delete(&models.PushSubscription{}).Error; err != nil {
		log.Printf("Failed to delete push subscription: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}
