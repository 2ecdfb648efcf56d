package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
	"gorm.io/gorm"
)

type UnitRequest struct {
	Name string `json:"name" binding:"required"`
}

func AdminListUnits(ctx *gin.Context) {
	var units []models.Unit

	if err := db.DB.Order("name asc").Find(&units).Error; err != nil {
		log.Printf("Failed to list units: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.UnitResponse, 0, len(units))

	for _, unit := range units {
		var members int64

		if err := db.DB.Model(&models.User{}).Where("unit = ?", unit.Name).Count(&members).Error; err != nil {
			log.Printf("Failed to count unit members: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		responses = append(responses, types.UnitResponse{
			ID:        unit.ID,
			Name:      unit.Name,
			Members:   members,
			CreatedAt: unit.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, responses)
}

// AdminCreateUnit creates the unit and its paired unit-type channel in one
// transaction.
func AdminCreateUnit(ctx *gin.Context) {
	var req UnitRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unit name required"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unit name required"})
		return
	}

	var existing models.Unit

	err := db.DB.Where("name = ?", req.Name).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unit already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check unit name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	unit := models.Unit{
		ID:   uuid.NewString(),
		Name: req.Name,
	}

	channel := models.Channel{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Description:       req.Name + " unit communication",
		Icon:              "🏕️",
		Type:              types.ChannelTypeUnit,
		Unit:              req.Name,
		AllowedRoles:      "admin,adult_leader,youth,parent",
		CanPostRoles:      "admin,adult_leader,youth",
		Active:            true,
		PushNotifications: true,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}
		return tx.Create(&channel).Error
	})

	if err != nil {
		log.Printf("Failed to create unit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.UnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		CreatedAt: unit.CreatedAt,
	})
}

// AdminUpdateUnit renames a unit and cascades atomically: the paired channel
// is renamed and every member is reassigned inside a single transaction.
func AdminUpdateUnit(ctx *gin.Context) {
	unitID := ctx.Param("unit_id")

	var unit models.Unit

	if err := db.DB.First(&unit, "id = ?", unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
			return
		}
		log.Printf("Failed to fetch unit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UnitRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unit name required"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unit name required"})
		return
	}

	oldName := unit.Name

	if req.Name == oldName {
		ctx.JSON(http.StatusOK, types.UnitResponse{ID: unit.ID, Name: unit.Name, CreatedAt: unit.CreatedAt})
		return
	}

	var existing models.Unit

	err := db.DB.Where("name = ? AND id <> ?", req.Name, unit.ID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unit already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check unit name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&unit).Update("name", req.Name).Error; err != nil {
			return err
		}

		channelUpdates := map[string]interface{}{
			"name":        req.Name,
			"unit":        req.Name,
			"description": req.Name + " unit communication",
		}

		err := tx.Model(&models.Channel{}).
			Where("type = ? AND unit = ?", types.ChannelTypeUnit, oldName).
			Updates(channelUpdates).Error

		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("unit = ?", oldName).
			Update("unit", req.Name).Error
	})

	if err != nil {
		log.Printf("Failed to rename unit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.UnitResponse{ID: unit.ID, Name: req.Name, CreatedAt: unit.CreatedAt})
}

// AdminDeleteUnit removes the unit, its paired channel and that channel's
// messages, and clears the unit on former members. The user rows survive.
func AdminDeleteUnit(ctx *gin.Context) {
	unitID := ctx.Param("unit_id")

	var unit models.Unit

	if err := db.DB.First(&unit, "id = ?", unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
			return
		}
		log.Printf("Failed to fetch unit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var channels []models.Channel

		err := tx.Where("type = ? AND unit = ?", types.ChannelTypeUnit, unit.Name).Find(&channels).Error

		if err != nil {
			return err
		}

		for _, channel := range channels {
			if err := tx.Where("channel_id = ?", channel.ID).Delete(&models.Message{}).Error; err != nil {
				return err
			}

			if err := tx.Delete(&channel).Error; err != nil {
				return err
			}
		}

		err = tx.Model(&models.User{}).
			Where("unit = ?", unit.Name).
			Update("unit", "").Error

		if err != nil {
			return err
		}

		return tx.Delete(&unit).Error
	})

	if err != nil {
		log.Printf("Failed to delete unit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Unit deleted"})
}
