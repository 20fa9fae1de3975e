package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ksuda/task-workflow-api/internal/constants"
	apierrors "github.com/ksuda/task-workflow-api/internal/errors"
)

// RequireTaskID validates the :id route parameter and stores the parsed
// task id in context. Existence and authorization are decided in the
// service layer so that denial never depends on which handler ran.
func RequireTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the parsed task id from context
func GetTaskID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return 0, false
	}

	taskID, ok := value.(uint64)
	return taskID, ok
}
