package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

func TestWeeklySuccessRate(t *testing.T) {
	// Wednesday 2026-01-14; the week runs Sunday 2026-01-11 through
	// Saturday 2026-01-17.
	reference := time.Date(2026, 1, 14, 15, 0, 0, 0, time.Local)

	records := []models.DailyHabitRecord{
		{Date: "2026-01-11", Status: models.HabitStatusCompleted},
		{Date: "2026-01-12", Status: models.HabitStatusCompleted},
		{Date: "2026-01-13", Status: models.HabitStatusCompleted},
		{Date: "2026-01-14", Status: models.HabitStatusPending},
		{Date: "2026-01-15", Status: models.HabitStatusSkipped},
		{Date: "2026-01-16", Status: models.HabitStatusPending},
		{Date: "2026-01-17", Status: models.HabitStatusPending},
	}

	// 3 completed out of 7 tracked days rounds to 43.
	require.Equal(t, 43, WeeklySuccessRate(records, reference))
}

func TestWeeklySuccessRateIgnoresOtherWeeks(t *testing.T) {
	reference := time.Date(2026, 1, 14, 9, 0, 0, 0, time.Local)

	records := []models.DailyHabitRecord{
		// Saturday of the previous week.
		{Date: "2026-01-10", Status: models.HabitStatusCompleted},
		// Sunday of the next week.
		{Date: "2026-01-18", Status: models.HabitStatusCompleted},
		{Date: "2026-01-12", Status: models.HabitStatusCompleted},
		{Date: "2026-01-13", Status: models.HabitStatusPending},
	}

	require.Equal(t, 50, WeeklySuccessRate(records, reference))
}

func TestWeeklySuccessRateEmpty(t *testing.T) {
	require.Equal(t, 0, WeeklySuccessRate(nil, time.Now()))
}

type HabitServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *HabitService
	userID  uint64
}

func (suite *HabitServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Habit{}, &models.DailyHabitRecord{})
	suite.Require().NoError(err)

	user := &models.User{Email: "owner@example.com", Username: "owner", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(user).Error)
	suite.userID = user.ID

	suite.service = NewHabitService(repository.NewHabitRepository(suite.db))
}

func (suite *HabitServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HabitServiceTestSuite) TestCreateSeedsTodayRecord() {
	habit, err := suite.service.Create(CreateHabitInput{
		UserID: suite.userID,
		Name:   "Morning run",
		Color:  "green",
	})
	suite.Require().NoError(err)
	suite.Require().Len(habit.DailyRecords, 1)
	suite.Equal(TodayDateString(), habit.DailyRecords[0].Date)
	suite.Equal(models.HabitStatusPending, habit.DailyRecords[0].Status)
}

func (suite *HabitServiceTestSuite) TestGetLazilyCreatesTodayRecord() {
	habit, err := suite.service.Create(CreateHabitInput{UserID: suite.userID, Name: "Read"})
	suite.Require().NoError(err)

	// Drop every record, then a read should bring today's back.
	suite.Require().NoError(suite.db.Where("habit_id = ?", habit.ID).Delete(&models.DailyHabitRecord{}).Error)

	habit, err = suite.service.Get(habit.ID, suite.userID)
	suite.Require().NoError(err)
	suite.Require().Len(habit.DailyRecords, 1)
	suite.Equal(TodayDateString(), habit.DailyRecords[0].Date)
}

func (suite *HabitServiceTestSuite) TestSetDailyStatusUpserts() {
	habit, err := suite.service.Create(CreateHabitInput{UserID: suite.userID, Name: "Stretch"})
	suite.Require().NoError(err)

	today := TodayDateString()

	habit, err = suite.service.SetDailyStatus(habit.ID, suite.userID, today, models.HabitStatusCompleted)
	suite.Require().NoError(err)
	suite.Require().Len(habit.DailyRecords, 1)
	suite.Equal(models.HabitStatusCompleted, habit.DailyRecords[0].Status)
	suite.NotNil(habit.DailyRecords[0].CompletedAt)

	// Flipping back clears the completion timestamp, still one row.
	habit, err = suite.service.SetDailyStatus(habit.ID, suite.userID, today, models.HabitStatusSkipped)
	suite.Require().NoError(err)
	suite.Require().Len(habit.DailyRecords, 1)
	suite.Equal(models.HabitStatusSkipped, habit.DailyRecords[0].Status)
	suite.Nil(habit.DailyRecords[0].CompletedAt)
}

func (suite *HabitServiceTestSuite) TestSetDailyStatusValidation() {
	habit, err := suite.service.Create(CreateHabitInput{UserID: suite.userID, Name: "Water"})
	suite.Require().NoError(err)

	_, err = suite.service.SetDailyStatus(habit.ID, suite.userID, "not-a-date", models.HabitStatusCompleted)
	suite.ErrorIs(err, ErrInvalidDate)

	_, err = suite.service.SetDailyStatus(habit.ID, suite.userID, TodayDateString(), models.HabitStatus("done"))
	suite.ErrorIs(err, ErrInvalidHabitStatus)

	_, err = suite.service.SetDailyStatus(habit.ID+100, suite.userID, TodayDateString(), models.HabitStatusCompleted)
	suite.ErrorIs(err, ErrHabitNotFound)
}

func (suite *HabitServiceTestSuite) TestDeleteCascadesRecords() {
	habit, err := suite.service.Create(CreateHabitInput{UserID: suite.userID, Name: "Sleep early"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Delete(habit.ID, suite.userID))

	var count int64
	suite.db.Model(&models.DailyHabitRecord{}).Where("habit_id = ?", habit.ID).Count(&count)
	suite.Zero(count)
}

func (suite *HabitServiceTestSuite) TestStats() {
	first, err := suite.service.Create(CreateHabitInput{UserID: suite.userID, Name: "One"})
	suite.Require().NoError(err)
	_, err = suite.service.Create(CreateHabitInput{UserID: suite.userID, Name: "Two"})
	suite.Require().NoError(err)

	_, err = suite.service.SetDailyStatus(first.ID, suite.userID, TodayDateString(), models.HabitStatusCompleted)
	suite.Require().NoError(err)

	stats, err := suite.service.Stats(suite.userID)
	suite.Require().NoError(err)
	suite.Equal(2, stats.TotalHabits)
	suite.Len(stats.Habits, 2)
	// One habit fully completed this week, the other at zero.
	suite.Equal(50, stats.AverageSuccessRate)
}

func TestHabitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HabitServiceTestSuite))
}
