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
	"github.com/jambohub/jambohub/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username         string `json:"username"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	Unit             string `json:"unit"`
	Patrol           string `json:"patrol"`
	Position         string `json:"position"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergency_contact"`
}

type UpdateUserRequest struct {
	Username           *string `json:"username"`
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Email              *string `json:"email"`
	Password           *string `json:"password"`
	Role               *string `json:"role"`
	Unit               *string `json:"unit"`
	Patrol             *string `json:"patrol"`
	Position           *string `json:"position"`
	Phone              *string `json:"phone"`
	Age                *int    `json:"age"`
	Gender             *string `json:"gender"`
	EmergencyContact   *string `json:"emergency_contact"`
	Active             *bool   `json:"active"`
	EmailNotifications *bool   `json:"email_notifications"`
}

func AdminListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Order("created_at asc").Find(&users).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		responses = append(responses, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, responses)
}

// usernameTaken checks for an exact, case-sensitive collision. excludeID may
// be empty. The unique index on users.username is the backstop for
// registrations racing past this check.
func usernameTaken(username, excludeID string) (bool, error) {
	query := db.DB.Model(&models.User{}).Where("username = ?", username)

	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func AdminCreateUser(ctx *gin.Context) {
	var req CreateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.FirstName == "" || req.Email == "" || req.Role == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "First name, email, and role are required"})
		return
	}

	if !types.IsValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	if req.Username != "" {
		taken, err := usernameTaken(req.Username, "")

		if err != nil {
			log.Printf("Failed to check username: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if taken {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
	}

	password := req.Password

	if password == "" {
		password = types.DefaultPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := models.User{
		ID:               uuid.NewString(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PasswordHash:     string(passwordHash),
		Role:             req.Role,
		Unit:             req.Unit,
		Patrol:           req.Patrol,
		Position:         req.Position,
		Phone:            req.Phone,
		Age:              req.Age,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
		Active:           true,
	}

	if req.Username != "" {
		user.Username = &req.Username
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func AdminUpdateUser(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	var user models.User

	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)

		if username == "" {
			updates["username"] = nil
		} else if username != user.UsernameString() {
			taken, err := usernameTaken(username, user.ID)

			if err != nil {
				log.Printf("Failed to check username: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}

			if taken {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
				return
			}

			updates["username"] = username
		}
	}

	if req.FirstName != nil && *req.FirstName != "" {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil && *req.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		if !types.IsValidRole(*req.Role) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		updates["role"] = *req.Role
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Patrol != nil {
		updates["patrol"] = *req.Patrol
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.EmergencyContact != nil {
		updates["emergency_contact"] = *req.EmergencyContact
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}

	if req.Password != nil && *req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)

		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("Failed to refresh user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func AdminDeleteUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID := ctx.Param("user_id")

	var user models.User

	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if user.ID == currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PushSubscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})

	if err != nil {
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// AdminResetPassword sets the role-dependent default secret and clears the
// password_changed flag so the UI prompts for a new password at next login.
func AdminResetPassword(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	var user models.User

	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	password := types.DefaultPassword

	if user.Role == types.RoleAdmin {
		password = types.AdminDefaultPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	updates := map[string]interface{}{
		"password_hash":    string(passwordHash),
		"password_changed": false,
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to reset password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset to default"})
}
