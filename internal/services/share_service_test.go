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

type ShareServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *ShareService
	owner     *models.User
	recipient *models.User
	note      *models.Note
}

func (suite *ShareServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Task{},
		&models.SubTask{},
		&models.Habit{},
		&models.DailyHabitRecord{},
		&models.Reminder{},
		&models.Share{},
		&models.PublicShare{},
	)
	suite.Require().NoError(err)

	suite.owner = &models.User{Email: "owner@example.com", Username: "owner", PasswordHash: "x"}
	suite.recipient = &models.User{Email: "friend@example.com", Username: "friend", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(suite.owner).Error)
	suite.Require().NoError(suite.db.Create(suite.recipient).Error)

	suite.note = &models.Note{UserID: suite.owner.ID, Title: "Shared note", Text: "hello", Category: models.CategoryOther}
	suite.Require().NoError(suite.db.Create(suite.note).Error)

	suite.service = NewShareService(
		repository.NewShareRepository(suite.db),
		repository.NewUserRepository(suite.db),
		repository.NewNoteRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		repository.NewHabitRepository(suite.db),
		repository.NewReminderRepository(suite.db),
	)
}

func (suite *ShareServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ShareServiceTestSuite) shareNote(permission models.SharePermission) *models.Share {
	share, err := suite.service.ShareItem(ShareItemInput{
		ItemID:      suite.note.ID,
		OwnerID:     suite.owner.ID,
		RecipientID: suite.recipient.ID,
		Type:        models.ShareTypeNote,
		Permission:  permission,
	})
	suite.Require().NoError(err)
	return share
}

func (suite *ShareServiceTestSuite) TestShareUpsertsPermission() {
	first := suite.shareNote(models.PermissionRead)
	second := suite.shareNote(models.PermissionWrite)

	suite.Equal(first.ID, second.ID)
	suite.Equal(models.PermissionWrite, second.Permission)

	var count int64
	suite.db.Model(&models.Share{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *ShareServiceTestSuite) TestShareValidation() {
	_, err := suite.service.ShareItem(ShareItemInput{
		ItemID:      suite.note.ID,
		OwnerID:     suite.owner.ID,
		RecipientID: suite.owner.ID,
		Type:        models.ShareTypeNote,
		Permission:  models.PermissionRead,
	})
	suite.ErrorIs(err, ErrSelfShare)

	_, err = suite.service.ShareItem(ShareItemInput{
		ItemID:      suite.note.ID,
		OwnerID:     suite.recipient.ID,
		RecipientID: suite.owner.ID,
		Type:        models.ShareTypeNote,
		Permission:  models.PermissionRead,
	})
	suite.ErrorIs(err, ErrNotItemOwner)

	_, err = suite.service.ShareItem(ShareItemInput{
		ItemID:      suite.note.ID,
		OwnerID:     suite.owner.ID,
		RecipientID: suite.recipient.ID,
		Type:        models.ShareType("folder"),
		Permission:  models.PermissionRead,
	})
	suite.ErrorIs(err, ErrInvalidShareType)

	_, err = suite.service.ShareItem(ShareItemInput{
		ItemID:      suite.note.ID,
		OwnerID:     suite.owner.ID,
		RecipientID: suite.recipient.ID + 100,
		Type:        models.ShareTypeNote,
		Permission:  models.PermissionRead,
	})
	suite.ErrorIs(err, ErrRecipientNotFound)
}

func (suite *ShareServiceTestSuite) TestDeleteShareAuthorization() {
	stranger := &models.User{Email: "nosy@example.com", Username: "nosy", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(stranger).Error)

	share := suite.shareNote(models.PermissionRead)

	suite.ErrorIs(suite.service.DeleteShare(share.ID, stranger.ID), ErrShareDeleteForbidden)

	// The recipient may decline the grant.
	suite.Require().NoError(suite.service.DeleteShare(share.ID, suite.recipient.ID))

	share = suite.shareNote(models.PermissionRead)
	suite.Require().NoError(suite.service.DeleteShare(share.ID, suite.owner.ID))
}

func (suite *ShareServiceTestSuite) TestListFilters() {
	suite.shareNote(models.PermissionRead)

	task := &models.Task{UserID: suite.owner.ID, Title: "Shared task", Status: models.TaskStatusPending}
	suite.Require().NoError(suite.db.Create(task).Error)
	_, err := suite.service.ShareItem(ShareItemInput{
		ItemID:      task.ID,
		OwnerID:     suite.owner.ID,
		RecipientID: suite.recipient.ID,
		Type:        models.ShareTypeTask,
		Permission:  models.PermissionRead,
	})
	suite.Require().NoError(err)

	all, err := suite.service.SharedWithMe(suite.recipient.ID, nil)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	noteType := models.ShareTypeNote
	onlyNotes, err := suite.service.SharedWithMe(suite.recipient.ID, &noteType)
	suite.Require().NoError(err)
	suite.Len(onlyNotes, 1)
	suite.Equal(models.ShareTypeNote, onlyNotes[0].Type)

	byMe, err := suite.service.SharedByMe(suite.owner.ID, nil)
	suite.Require().NoError(err)
	suite.Len(byMe, 2)
}

func (suite *ShareServiceTestSuite) TestPublicShareLifecycle() {
	share, err := suite.service.CreatePublicShare(suite.note.ID, suite.owner.ID, 0)
	suite.Require().NoError(err)
	suite.NotEmpty(share.Token)
	suite.Nil(share.ExpiresAt)

	// Idempotent: a second call returns the same link.
	again, err := suite.service.CreatePublicShare(suite.note.ID, suite.owner.ID, 7)
	suite.Require().NoError(err)
	suite.Equal(share.ID, again.ID)
	suite.Equal(share.Token, again.Token)

	note, err := suite.service.ResolvePublicToken(share.Token)
	suite.Require().NoError(err)
	suite.Equal(suite.note.ID, note.ID)

	_, err = suite.service.ResolvePublicToken("unknown-token")
	suite.ErrorIs(err, ErrPublicShareNotFound)

	suite.Require().NoError(suite.service.DeletePublicShare(share.ID, suite.owner.ID))
	_, err = suite.service.ResolvePublicToken(share.Token)
	suite.ErrorIs(err, ErrPublicShareNotFound)
}

func (suite *ShareServiceTestSuite) TestExpiredPublicShareResolvesAsNotFound() {
	share, err := suite.service.CreatePublicShare(suite.note.ID, suite.owner.ID, 7)
	suite.Require().NoError(err)

	past := time.Now().Add(-time.Hour)
	suite.Require().NoError(suite.db.Model(&models.PublicShare{}).
		Where("id = ?", share.ID).
		Update("expires_at", past).Error)

	_, err = suite.service.ResolvePublicToken(share.Token)
	suite.ErrorIs(err, ErrPublicShareNotFound)
}

func (suite *ShareServiceTestSuite) TestNoteAccess() {
	ok, _, err := suite.service.NoteAccess(suite.recipient.ID, suite.note.ID)
	suite.Require().NoError(err)
	suite.False(ok)

	suite.shareNote(models.PermissionWrite)

	ok, permission, err := suite.service.NoteAccess(suite.recipient.ID, suite.note.ID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(models.PermissionWrite, permission)
}

func TestShareServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShareServiceTestSuite))
}
