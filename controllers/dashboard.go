package controllers

import (
	"net/http"
	"time"

	"studyhub-backend/config"
	"studyhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type TopArea struct {
	Name           string `json:"name"`
	CompletedTasks int    `json:"completedTasks"`
}

type AreaBreakdown struct {
	Name           string `json:"name"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	PendingTasks   int    `json:"pendingTasks"`
}

type NextExam struct {
	Title       string    `json:"title"`
	DueDate     time.Time `json:"dueDate"`
	Description string    `json:"description"`
}

// GetDashboardStats aggregates the user's study statistics
func GetDashboardStats(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	// Task totals across all areas
	var taskStats TaskStats
	config.DB.Raw(`
		SELECT COUNT(t.id) AS total,
		       COUNT(CASE WHEN t.completed THEN 1 END) AS completed,
		       COUNT(CASE WHEN NOT t.completed THEN 1 END) AS pending
		FROM tasks t
		INNER JOIN areas a ON a.id = t.area_id AND a.deleted_at IS NULL
		WHERE a.user_id = ? AND t.deleted_at IS NULL
	`, userID).Scan(&taskStats)

	// Area with the most completed tasks
	var topArea TopArea
	hasTopArea := config.DB.Raw(`
		SELECT a.name, COUNT(CASE WHEN t.completed THEN 1 END) AS completed_tasks
		FROM areas a
		LEFT JOIN tasks t ON t.area_id = a.id AND t.deleted_at IS NULL
		WHERE a.user_id = ? AND a.deleted_at IS NULL
		GROUP BY a.id, a.name
		ORDER BY completed_tasks DESC
		LIMIT 1
	`, userID).Scan(&topArea).RowsAffected > 0

	// Next 3 exams
	today := utils.BeginningOfDay(time.Now())
	var nextExams []NextExam
	config.DB.Raw(`
		SELECT title, due_date, description
		FROM exams
		WHERE user_id = ? AND due_date >= ? AND deleted_at IS NULL
		ORDER BY due_date ASC
		LIMIT 3
	`, userID, utils.FormatDate(today)).Scan(&nextExams)

	// Per-area breakdown for the chart
	var breakdown []AreaBreakdown
	config.DB.Raw(`
		SELECT a.name,
		       COUNT(t.id) AS total_tasks,
		       COUNT(CASE WHEN t.completed THEN 1 END) AS completed_tasks,
		       COUNT(CASE WHEN NOT t.completed THEN 1 END) AS pending_tasks
		FROM areas a
		LEFT JOIN tasks t ON t.area_id = a.id AND t.deleted_at IS NULL
		WHERE a.user_id = ? AND a.deleted_at IS NULL
		GROUP BY a.id, a.name
		ORDER BY total_tasks DESC
	`, userID).Scan(&breakdown)

	var totalAreas int64
	config.DB.Raw(`
		SELECT COUNT(*) FROM areas WHERE user_id = ? AND deleted_at IS NULL
	`, userID).Scan(&totalAreas)

	areas := gin.H{"total": totalAreas}
	if hasTopArea {
		areas["mostStudied"] = topArea
	} else {
		areas["mostStudied"] = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"tasks":        taskStats,
			"areas":        areas,
			"nextExams":    nextExams,
			"tasksPerArea": breakdown,
		},
	})
}
