package controllers

import (
	"errors"
	"net/http"
	"time"

	"studyhub-backend/config"
	"studyhub-backend/models"
	"studyhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTaskInput defines the expected JSON structure for creating a task
type CreateTaskInput struct {
	Title  string    `json:"title" binding:"required"`
	AreaID uuid.UUID `json:"areaId" binding:"required"`
}

// TaskWithArea is a task row annotated with its area name
type TaskWithArea struct {
	models.Task
	AreaName string `json:"areaName"`
}

// GetTasks lists all of the user's tasks across areas, pending first
func GetTasks(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var tasks []TaskWithArea
	if err := config.DB.Raw(`
		SELECT t.*, a.name AS area_name
		FROM tasks t
		INNER JOIN areas a ON a.id = t.area_id AND a.deleted_at IS NULL
		WHERE a.user_id = ? AND t.deleted_at IS NULL
		ORDER BY t.completed ASC, t.created_at DESC
	`, userID).Scan(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

// GetTasksByArea lists the tasks of one of the user's areas
func GetTasksByArea(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	areaUUID, err := uuid.Parse(c.Param("areaId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid area ID format")
		return
	}

	// Area must belong to the requesting user
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

	var tasks []models.Task
	if err := config.DB.Where("area_id = ?", areaUUID).
		Order("completed ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

// CreateTask creates a task inside one of the user's areas
func CreateTask(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Title and area are required")
		return
	}

	var area models.Area
	if err := config.DB.Where("user_id = ? AND id = ?", userID, input.AreaID).
		First(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Area not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	task := models.Task{
		AreaID: input.AreaID,
		Title:  input.Title,
	}

	if err := config.DB.Create(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Task created", "task": task})
}

// ToggleTask flips a task's completion state and stamps the completion time
func ToggleTask(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	taskUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var task models.Task
	if err := config.DB.Joins("INNER JOIN areas ON areas.id = tasks.area_id").
		Where("tasks.id = ? AND areas.user_id = ? AND areas.deleted_at IS NULL", taskUUID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	task.Completed = !task.Completed
	if task.Completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := config.DB.Model(&models.Task{}).Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"completed":    task.Completed,
			"completed_at": task.CompletedAt,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update task")
		return
	}

	message := "Task marked as pending"
	if task.Completed {
		message = "Task completed"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "task": task})
}

// DeleteTask soft deletes a task owned by the user
func DeleteTask(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	taskUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var task models.Task
	if err := config.DB.Joins("INNER JOIN areas ON areas.id = tasks.area_id").
		Where("tasks.id = ? AND areas.user_id = ? AND areas.deleted_at IS NULL", taskUUID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted"})
}
