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

// CreateExamInput defines the expected JSON structure for creating an exam
type CreateExamInput struct {
	Title       string     `json:"title" binding:"required"`
	Date        string     `json:"date" binding:"required"` // YYYY-MM-DD
	Description string     `json:"description"`
	AreaID      *uuid.UUID `json:"areaId"`
}

// UpdateExamInput defines the expected JSON structure for updating an exam
type UpdateExamInput struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"` // YYYY-MM-DD
	Description *string `json:"description"`
}

// GetExams lists the user's exams ordered by due date
func GetExams(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var exams []models.Exam
	if err := config.DB.Where("user_id = ?", userID).
		Order("due_date ASC").
		Find(&exams).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve exams")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "exams": exams})
}

// GetUpcomingExams lists up to five exams due within the next 30 days
func GetUpcomingExams(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	today := utils.BeginningOfDay(time.Now())
	limit := today.AddDate(0, 0, 30)

	var exams []models.Exam
	if err := config.DB.Where("user_id = ? AND due_date >= ? AND due_date <= ?",
		userID, utils.FormatDate(today), utils.FormatDate(limit)).
		Order("due_date ASC").
		Limit(5).
		Find(&exams).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve exams")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "exams": exams})
}

// CreateExam creates an exam with its reminder flag unset
func CreateExam(c *gin.Context) {
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

	var input CreateExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Title and date are required")
		return
	}

	dueDate, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date")
		return
	}

	if input.AreaID != nil {
		var area models.Area
		if err := config.DB.Where("user_id = ? AND id = ?", userUUID, *input.AreaID).
			First(&area).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Area not found")
			return
		}
	}

	exam := models.Exam{
		UserID:      userUUID,
		AreaID:      input.AreaID,
		Title:       input.Title,
		DueDate:     dueDate,
		Description: input.Description,
	}

	if err := config.DB.Create(&exam).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create exam")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Exam created", "exam": exam})
}

// UpdateExam updates an exam's title, date or description. The reminder
// flag is owned by the dispatcher and is never written here.
func UpdateExam(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	examUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid exam ID format")
		return
	}

	var input UpdateExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var exam models.Exam
	if err := config.DB.Where("user_id = ? AND id = ?", userID, examUUID).
		First(&exam).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Exam not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Date != nil {
		dueDate, err := utils.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date")
			return
		}
		updates["due_date"] = dueDate
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&models.Exam{}).Where("id = ?", exam.ID).
			Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update exam")
			return
		}
	}

	if err := config.DB.First(&exam, "id = ?", exam.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Exam updated", "exam": exam})
}

// DeleteExam soft deletes an exam owned by the user
func DeleteExam(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	examUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid exam ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, examUUID).
		Delete(&models.Exam{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete exam")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Exam not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Exam deleted"})
}
