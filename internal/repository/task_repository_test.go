package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ksuda/task-workflow-api/internal/models"
	"github.com/ksuda/task-workflow-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormTaskRepository_List_AppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	assigneeID := uint64(2)
	status := models.TaskStatusSubmitted

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE tasks\\.assignee_id = \\? AND tasks\\.status = \\?").
		WithArgs(assigneeID, status).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE tasks\\.assignee_id = \\? AND tasks\\.status = \\? ORDER BY tasks\\.id ASC").
		WithArgs(assigneeID, status).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tasks, total, err := repo.List(TaskFilter{
		AssigneeID: &assigneeID,
		Status:     &status,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, tasks)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_List_NoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	mock.ExpectQuery("SELECT \\* FROM `tasks` ORDER BY tasks\\.id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.List(TaskFilter{})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_List_Paginates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))

	mock.ExpectQuery("SELECT \\* FROM `tasks` ORDER BY tasks\\.id ASC LIMIT \\? OFFSET \\?").
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := repo.List(TaskFilter{
		Pagination: utils.PaginationParams{Page: 2, Limit: 5, Offset: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindChecklistItem_ScopedToTask(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	// First() adds ORDER BY id and a parameterized LIMIT
	mock.ExpectQuery("SELECT \\* FROM `checklist_items` WHERE task_id = \\? AND id = \\?").
		WithArgs(uint64(7), uint64(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "text", "is_completed"}).
			AddRow(3, 7, "outline", false))

	item, err := repo.FindChecklistItem(7, 3)
	require.NoError(t, err)
	assert.Equal(t, "outline", item.Text)
	assert.False(t, item.IsCompleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
