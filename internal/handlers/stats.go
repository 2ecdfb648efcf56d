package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
)

// Stats returns active-roster counts per role plus the fixed youth capacity.
func Stats(ctx *gin.Context) {
	roleCounts := make(map[string]int64, len(types.AllRoles))
	var total int64

	for _, role := range types.AllRoles {
		var count int64

		err := db.DB.Model(&models.User{}).
			Where("role = ? AND active = ?", role, true).
			Count(&count).Error

		if err != nil {
			log.Printf("Failed to count users by role: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		roleCounts[role] = count
		total += count
	}

	remaining := int64(types.YouthCapacity) - roleCounts[types.RoleYouth]

	if remaining < 0 {
		remaining = 0
	}

	ctx.JSON(http.StatusOK, gin.H{
		"total_users":           total,
		"roles":                 roleCounts,
		"youth_capacity":        types.YouthCapacity,
		"youth_spots_remaining": remaining,
	})
}
