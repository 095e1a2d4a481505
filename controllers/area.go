package controllers

import (
	"errors"
	"net/http"

	"studyhub-backend/config"
	"studyhub-backend/models"
	"studyhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAreaInput defines the expected JSON structure for creating an area
type CreateAreaInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateAreaInput defines the expected JSON structure for updating an area
type UpdateAreaInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AreaWithCounts is an area row annotated with its task totals
type AreaWithCounts struct {
	models.Area
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
}

// GetAreas lists the user's areas with task counts, newest first
func GetAreas(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var areas []AreaWithCounts
	if err := config.DB.Raw(`
		SELECT a.*,
		       COUNT(t.id) AS total_tasks,
		       COUNT(CASE WHEN t.completed THEN 1 END) AS completed_tasks
		FROM areas a
		LEFT JOIN tasks t ON t.area_id = a.id AND t.deleted_at IS NULL
		WHERE a.user_id = ? AND a.deleted_at IS NULL
		GROUP BY a.id
		ORDER BY a.created_at DESC
	`, userUUID).Scan(&areas).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve areas")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "areas": areas})
}

// CreateArea creates a new study area for the user
func CreateArea(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Area name is required")
		return
	}

	area := models.Area{
		UserID:      userUUID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := config.DB.Create(&area).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create area")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Area created", "area": area})
}

// UpdateArea updates an existing area owned by the user
func UpdateArea(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	areaUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid area ID format")
		return
	}

	var input UpdateAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var area models.Area
	if err := config.DB.Where("user_id = ? AND id = ?", userID, areaUUID).
		First(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Area not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		area.Name = *input.Name
	}
	if input.Description != nil {
		area.Description = *input.Description
	}

	if err := config.DB.Save(&area).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update area")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Area updated", "area": area})
}

// DeleteArea soft deletes an area and its tasks
func DeleteArea(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	areaUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid area ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, areaUUID).
		Delete(&models.Area{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete area")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Area not found")
		return
	}

	// Remove the area's tasks as well
	config.DB.Where("area_id = ?", areaUUID).Delete(&models.Task{})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Area deleted"})
}
