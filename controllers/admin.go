package controllers

import (
	"net/http"

	"studyhub-backend/config"
	"studyhub-backend/models"
	"studyhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminMiddleware allows only users with the admin flag through
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userId")
		if !exists {
			utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
			return
		}

		var user models.User
		if err := config.DB.First(&user, "id = ?", userID).Error; err != nil || !user.IsAdmin {
			utils.RespondWithError(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

// GetUsers lists all registered users
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func DeleteUser(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	targetUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if userID.(string) == targetUUID.String() {
		utils.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	result := config.DB.Where("id = ?", targetUUID).Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
