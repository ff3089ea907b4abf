package tasks

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tasknest/TN-Backend/internal/db"
	"github.com/tasknest/TN-Backend/internal/utils"
	"gorm.io/gorm"
)

// The create form posts the task name under "task"; updates from the detail
// page send it as "name". Both shapes come from the original frontend.
type createTaskRequest struct {
	Task     string `json:"task"`
	DueDate  string `json:"dueDate"`
	Category string `json:"category"`
}

type updateTaskRequest struct {
	Name     string `json:"name"`
	DueDate  string `json:"dueDate"`
	Category string `json:"category"`
}

// parseDueDate accepts the date-input format the frontend sends (YYYY-MM-DD)
// or a full RFC3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// CreateTaskHandler creates a task owned by the session user.
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Task == "" || req.DueDate == "" || req.Category == "" {
		utils.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid due date")
		return
	}

	task := Task{
		ID:       utils.GenerateUUID(),
		Name:     req.Task,
		DueDate:  dueDate,
		Category: req.Category,
		UserID:   userID,
	}
	if err := db.DB.Create(&task).Error; err != nil {
		log.Println("Task creation failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.JSON(w, http.StatusCreated, task)
}

// ListTasksHandler returns the session user's tasks, soonest due first.
func ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks := []Task{}
	if err := db.DB.Where("user_id = ?", userID).Order("due_date ASC").Find(&tasks).Error; err != nil {
		log.Println("Task list failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, tasks)
}

// findOwnedTask loads a task scoped to its owner. Another user's task is
// indistinguishable from a missing one.
func findOwnedTask(id, userID string) (Task, error) {
	var task Task
	err := db.DB.First(&task, "id = ? AND user_id = ?", id, userID).Error
	return task, err
}

// GetTaskHandler returns one of the session user's tasks.
func GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	task, err := findOwnedTask(chi.URLParam(r, "id"), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Println("Task fetch failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, task)
}

// UpdateTaskHandler replaces a task's name, due date and category.
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Name == "" || req.DueDate == "" || req.Category == "" {
		utils.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid due date")
		return
	}

	task, err := findOwnedTask(chi.URLParam(r, "id"), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Println("Task fetch failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	task.Name = req.Name
	task.DueDate = dueDate
	task.Category = req.Category
	if err := db.DB.Save(&task).Error; err != nil {
		log.Println("Task update failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, task)
}

// DeleteTaskHandler removes one of the session user's tasks.
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	task, err := findOwnedTask(chi.URLParam(r, "id"), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Println("Task fetch failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		log.Println("Task delete failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
