package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ksuda/task-workflow-api/internal/dto"
	apierrors "github.com/ksuda/task-workflow-api/internal/errors"
	"github.com/ksuda/task-workflow-api/internal/middleware"
	"github.com/ksuda/task-workflow-api/internal/models"
	"github.com/ksuda/task-workflow-api/internal/services"
	"github.com/ksuda/task-workflow-api/internal/utils"
)

// TaskHandler exposes the task workflow over HTTP. All business rules
// live in the service; the handler only binds requests and shapes
// responses.
type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks filtered by assignee, status, and priority.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		AssigneeUsername: c.Query("assignee"),
		Pagination:       params,
	}

	// ?mine=true narrows to the caller's own tasks
	if c.Query("mine") == "true" {
		input.AssigneeUsername = actor.Username
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !status.IsValid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := models.TaskPriority(priorityStr)
		if !priority.IsValid() {
			apierrors.BadRequest(c, "Invalid priority filter")
			return
		}
		input.Priority = &priority
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a specific task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task in status ASSIGNED.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Assignee    string              `json:"assignee" binding:"required"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *time.Time          `json:"due_date"`
		Tags        []string            `json:"tags"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		AssigneeUsername: req.Assignee,
		Priority:         req.Priority,
		DueDate:          req.DueDate,
		Tags:             req.Tags,
	})
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// SubmitTask moves an assigned or rejected task into review.
func (h *TaskHandler) SubmitTask(c *gin.Context) {
	h.transition(c, func(actor *models.User, taskID uint64) (*models.Task, error) {
		return h.taskService.SubmitTask(actor, taskID)
	})
}

// ApproveTask accepts a submitted task.
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	h.transition(c, func(actor *models.User, taskID uint64) (*models.Task, error) {
		return h.taskService.ApproveTask(actor, taskID)
	})
}

// RejectTask sends a submitted task back with a reason.
func (h *TaskHandler) RejectTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type RejectTaskRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.RejectTask(actor, taskID, req.Reason)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListComments returns the task's comment stream in insertion order.
func (h *TaskHandler) ListComments(c *gin.Context) {
	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	comments, err := h.taskService.ListComments(taskID)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	commentDTOs := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		commentDTOs[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": commentDTOs})
}

// AddComment appends a comment to the task's activity log.
func (h *TaskHandler) AddComment(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type AddCommentRequest struct {
		Body string `json:"body"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.taskService.AddComment(actor, taskID, req.Body)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// AddChecklistItem appends an item to the task's checklist.
func (h *TaskHandler) AddChecklistItem(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type AddChecklistItemRequest struct {
		Text string `json:"text"`
	}

	var req AddChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.taskService.AddChecklistItem(actor, taskID, req.Text)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChecklistItemDTO(*item))
}

// ToggleChecklistItem flips a checklist item's completion flag.
func (h *TaskHandler) ToggleChecklistItem(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid checklist item ID")
		return
	}

	item, toggleErr := h.taskService.ToggleChecklistItem(actor, taskID, itemID)
	if toggleErr != nil {
		apierrors.RespondWithWorkflowError(c, toggleErr)
		return
	}

	c.JSON(http.StatusOK, dto.ToChecklistItemDTO(*item))
}

// transition handles the submit/approve body-less transition endpoints.
func (h *TaskHandler) transition(c *gin.Context, do func(*models.User, uint64) (*models.Task, error)) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := do(actor, taskID)
	if err != nil {
		apierrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
