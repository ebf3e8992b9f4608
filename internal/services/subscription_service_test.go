package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

type SubscriptionServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	service     *SubscriptionService
	noteService *NoteService
	userID      uint64
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Reminder{},
		&models.Subscription{},
	)
	suite.Require().NoError(err)

	user := &models.User{Email: "free@example.com", Username: "free", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(user).Error)
	suite.userID = user.ID

	noteRepo := repository.NewNoteRepository(suite.db)
	suite.service = NewSubscriptionService(
		repository.NewSubscriptionRepository(suite.db),
		repository.NewUserRepository(suite.db),
		noteRepo,
		repository.NewReminderRepository(suite.db),
	)
	suite.noteService = NewNoteService(noteRepo, suite.service, NewCalendarService(""))
}

func (suite *SubscriptionServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SubscriptionServiceTestSuite) TestFreePlanDailyNoteQuota() {
	first, err := suite.noteService.Create(CreateNoteInput{UserID: suite.userID, Title: "one"})
	suite.Require().NoError(err)
	suite.Equal(1, first.RemainingToday)

	second, err := suite.noteService.Create(CreateNoteInput{UserID: suite.userID, Title: "two"})
	suite.Require().NoError(err)
	suite.Equal(0, second.RemainingToday)

	_, err = suite.noteService.Create(CreateNoteInput{UserID: suite.userID, Title: "three"})
	suite.Require().ErrorIs(err, ErrNoteQuotaExceeded)

	var quotaErr *QuotaError
	suite.Require().ErrorAs(err, &quotaErr)
	suite.Equal(2, quotaErr.Limit)
	suite.Contains(quotaErr.Reason, "Upgrade to Pro")
}

func (suite *SubscriptionServiceTestSuite) TestQuotaIgnoresYesterdaysNotes() {
	// Two notes created yesterday should not count against today.
	yesterday := time.Now().AddDate(0, 0, -1)
	for _, title := range []string{"old one", "old two"} {
		note := &models.Note{UserID: suite.userID, Title: title, Category: models.CategoryOther}
		suite.Require().NoError(suite.db.Create(note).Error)
		suite.Require().NoError(suite.db.Model(note).Update("created_at", yesterday).Error)
	}

	decision, err := suite.service.CanCreateNote(suite.userID)
	suite.Require().NoError(err)
	suite.True(decision.Allowed)
	suite.Equal(2, decision.Remaining)
}

func (suite *SubscriptionServiceTestSuite) TestAdminBypassesQuota() {
	admin := &models.User{Email: "admin@example.com", Username: "admin", PasswordHash: "x", IsAdmin: true}
	suite.Require().NoError(suite.db.Create(admin).Error)

	for i := 0; i < 5; i++ {
		_, err := suite.noteService.Create(CreateNoteInput{UserID: admin.ID, Title: "note"})
		suite.Require().NoError(err)
	}
}

func (suite *SubscriptionServiceTestSuite) TestProPlanRaisesLimits() {
	suite.Require().NoError(suite.service.ActivatePlan(suite.userID, models.PlanPro, "cus_123", "sub_123"))

	plan, err := suite.service.ResolvePlan(suite.userID)
	suite.Require().NoError(err)
	suite.Equal(models.PlanPro, plan)

	decision, err := suite.service.CanCreateNote(suite.userID)
	suite.Require().NoError(err)
	suite.True(decision.Allowed)
	suite.Equal(10, decision.Remaining)
}

func (suite *SubscriptionServiceTestSuite) TestCancelDropsBackToFree() {
	suite.Require().NoError(suite.service.ActivatePlan(suite.userID, models.PlanPro, "cus_123", "sub_123"))
	suite.Require().NoError(suite.service.Cancel(suite.userID))

	plan, err := suite.service.ResolvePlan(suite.userID)
	suite.Require().NoError(err)
	suite.Equal(models.PlanFree, plan)

	// Re-activation reuses the single row per user.
	suite.Require().NoError(suite.service.ActivatePlan(suite.userID, models.PlanPro, "cus_123", "sub_456"))

	var count int64
	suite.db.Model(&models.Subscription{}).Where("user_id = ?", suite.userID).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *SubscriptionServiceTestSuite) TestMonthlyReminderQuota() {
	// Free plan allows 5 sent reminders per month; seed 5 sent this month.
	for i := 0; i < 5; i++ {
		reminder := &models.Reminder{
			UserID:    suite.userID,
			NoteID:    1,
			UserEmail: "free@example.com",
			NoteTitle: "t",
			NoteText:  "x",
			RemindAt:  time.Now().Add(-time.Hour),
			Sent:      true,
		}
		suite.Require().NoError(suite.db.Create(reminder).Error)
	}

	remaining, err := suite.service.RemainingRemindersThisMonth(suite.userID)
	suite.Require().NoError(err)
	suite.Zero(remaining)

	decision, err := suite.service.CanCreateReminder(suite.userID)
	suite.Require().NoError(err)
	suite.False(decision.Allowed)
	suite.Equal(5, decision.Limit)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
