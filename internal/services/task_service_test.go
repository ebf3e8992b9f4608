package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

func TestRollupStatus(t *testing.T) {
	complete := []models.SubTask{
		{Text: "a", Completed: true},
		{Text: "b", Completed: true},
	}
	mixed := []models.SubTask{
		{Text: "a", Completed: true},
		{Text: "b", Completed: false},
	}

	// All sub-tasks complete pulls the task to completed.
	require.Equal(t, models.TaskStatusCompleted, RollupStatus(complete, models.TaskStatusPending))

	// An incomplete sub-task pushes a completed task back to pending.
	require.Equal(t, models.TaskStatusPending, RollupStatus(mixed, models.TaskStatusCompleted))

	// A pending task with mixed sub-tasks stays pending.
	require.Equal(t, models.TaskStatusPending, RollupStatus(mixed, models.TaskStatusPending))

	// Cancelled stands while any sub-task is incomplete.
	require.Equal(t, models.TaskStatusCancelled, RollupStatus(mixed, models.TaskStatusCancelled))

	// No sub-tasks: the direct status stands.
	require.Equal(t, models.TaskStatusCompleted, RollupStatus(nil, models.TaskStatusCompleted))
	require.Equal(t, models.TaskStatusPending, RollupStatus(nil, models.TaskStatusPending))
}

func TestCompletionRate(t *testing.T) {
	task := &models.Task{SubTasks: []models.SubTask{
		{Completed: true},
		{Completed: true},
		{Completed: false},
	}}
	require.Equal(t, 67, CompletionRate(task))

	require.Equal(t, 0, CompletionRate(&models.Task{}))
	require.Equal(t, 100, CompletionRate(&models.Task{Status: models.TaskStatusCompleted}))
}

type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	userID  uint64
}

func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{}, &models.SubTask{})
	suite.Require().NoError(err)

	user := &models.User{Email: "owner@example.com", Username: "owner", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(user).Error)
	suite.userID = user.ID

	suite.service = NewTaskService(repository.NewTaskRepository(suite.db))
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) TestCreateWithSubTasks() {
	task, err := suite.service.Create(CreateTaskInput{
		UserID:      suite.userID,
		Title:       "Plan the week",
		Description: "Sunday evening routine",
		SubTasks:    []string{"review calendar", "pick priorities"},
	})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Len(task.SubTasks, 2)
	suite.False(task.SubTasks[0].Completed)
}

func (suite *TaskServiceTestSuite) TestToggleSubTaskRollsUpStatus() {
	task, err := suite.service.Create(CreateTaskInput{
		UserID:   suite.userID,
		Title:    "Two steps",
		SubTasks: []string{"first", "second"},
	})
	suite.Require().NoError(err)

	task, err = suite.service.ToggleSubTask(task.ID, suite.userID, task.SubTasks[0].ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, task.Status)

	task, err = suite.service.ToggleSubTask(task.ID, suite.userID, task.SubTasks[1].ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, task.Status)

	// Un-completing one sub-task drops the task back to pending.
	task, err = suite.service.ToggleSubTask(task.ID, suite.userID, task.SubTasks[0].ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, task.Status)
}

func (suite *TaskServiceTestSuite) TestAddSubTaskReopensCompletedTask() {
	task, err := suite.service.Create(CreateTaskInput{
		UserID:   suite.userID,
		Title:    "Almost done",
		SubTasks: []string{"only step"},
	})
	suite.Require().NoError(err)

	task, err = suite.service.ToggleSubTask(task.ID, suite.userID, task.SubTasks[0].ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, task.Status)

	task, err = suite.service.AddSubTask(task.ID, suite.userID, "one more thing")
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Len(task.SubTasks, 2)
}

func (suite *TaskServiceTestSuite) TestDirectStatusOnlySticksWithoutSubTasks() {
	plain, err := suite.service.Create(CreateTaskInput{UserID: suite.userID, Title: "No steps"})
	suite.Require().NoError(err)

	status := models.TaskStatusCompleted
	plain, err = suite.service.Update(plain.ID, suite.userID, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, plain.Status)

	withSteps, err := suite.service.Create(CreateTaskInput{
		UserID:   suite.userID,
		Title:    "With steps",
		SubTasks: []string{"incomplete"},
	})
	suite.Require().NoError(err)

	withSteps, err = suite.service.Update(withSteps.ID, suite.userID, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, withSteps.Status)
}

func (suite *TaskServiceTestSuite) TestOwnerScoping() {
	other := &models.User{Email: "other@example.com", Username: "other", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(other).Error)

	task, err := suite.service.Create(CreateTaskInput{UserID: suite.userID, Title: "Mine"})
	suite.Require().NoError(err)

	_, err = suite.service.Get(task.ID, other.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	err = suite.service.Delete(task.ID, other.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.Require().NoError(suite.service.Delete(task.ID, suite.userID))

	var count int64
	suite.db.Model(&models.SubTask{}).Where("task_id = ?", task.ID).Count(&count)
	suite.Zero(count)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
