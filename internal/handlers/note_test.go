package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/constants"
	"github.com/lmercat/productivity-api/internal/dto"
	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
	"github.com/lmercat/productivity-api/internal/services"
)

type NoteHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	user   *models.User
	other  *models.User
}

// fakeAuth injects the user straight into the request context, standing
// in for the session middleware.
func fakeAuth(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func (suite *NoteHandlerTestSuite) SetupTest() {
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

	suite.user = &models.User{Email: "user@example.com", Username: "user", PasswordHash: "x"}
	suite.other = &models.User{Email: "other@example.com", Username: "other", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(suite.user).Error)
	suite.Require().NoError(suite.db.Create(suite.other).Error)

	noteRepo := repository.NewNoteRepository(suite.db)
	subscriptionService := services.NewSubscriptionService(
		repository.NewSubscriptionRepository(suite.db),
		repository.NewUserRepository(suite.db),
		noteRepo,
		repository.NewReminderRepository(suite.db),
	)
	noteService := services.NewNoteService(noteRepo, subscriptionService, services.NewCalendarService(""))
	handler := NewNoteHandler(noteService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	notes := suite.router.Group("/api/notes", fakeAuth(suite.user.ID))
	notes.GET("", handler.ListNotes)
	notes.POST("", handler.CreateNote)
	notes.GET("/:id", handler.GetNote)
	notes.PATCH("/:id", handler.UpdateNote)
	notes.DELETE("/:id", handler.DeleteNote)

	asOther := suite.router.Group("/other/notes", fakeAuth(suite.other.ID))
	asOther.DELETE("/:id", handler.DeleteNote)
	asOther.GET("/:id", handler.GetNote)
}

func (suite *NoteHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *NoteHandlerTestSuite) postJSON(path string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *NoteHandlerTestSuite) TestCreateNote() {
	w := suite.postJSON("/api/notes", map[string]string{
		"title":    "Groceries",
		"text":     "milk, bread",
		"category": "perso",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.CreateNoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Groceries", response.Note.Title)
	suite.Equal(models.CategoryPersonal, response.Note.Category)
	suite.Equal(1, response.RemainingToday)
}

func (suite *NoteHandlerTestSuite) TestCreateNoteQuotaExceeded() {
	for i := 0; i < 2; i++ {
		w := suite.postJSON("/api/notes", map[string]string{"title": fmt.Sprintf("note %d", i)})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.postJSON("/api/notes", map[string]string{"title": "one too many"})
	suite.Require().Equal(http.StatusForbidden, w.Code)

	var response struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Limit          int `json:"limit"`
			RemainingToday int `json:"remaining_today"`
		} `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("QUOTA_EXCEEDED", response.Code)
	suite.Equal(2, response.Details.Limit)
	suite.Equal(0, response.Details.RemainingToday)
	suite.Contains(response.Message, "Upgrade to Pro")
}

func (suite *NoteHandlerTestSuite) TestCreateNoteInvalidCategory() {
	w := suite.postJSON("/api/notes", map[string]string{"title": "x", "category": "nope"})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func (suite *NoteHandlerTestSuite) TestGetAndDeleteScopedToOwner() {
	w := suite.postJSON("/api/notes", map[string]string{"title": "Private"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.CreateNoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	// Another user sees 404, not 403: existence is not leaked.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/other/notes/%d", created.Note.ID), nil)
	w2 := httptest.NewRecorder()
	suite.router.ServeHTTP(w2, req)
	suite.Equal(http.StatusNotFound, w2.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/other/notes/%d", created.Note.ID), nil)
	w2 = httptest.NewRecorder()
	suite.router.ServeHTTP(w2, req)
	suite.Equal(http.StatusNotFound, w2.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.Note.ID), nil)
	w2 = httptest.NewRecorder()
	suite.router.ServeHTTP(w2, req)
	suite.Equal(http.StatusOK, w2.Code)
}

func (suite *NoteHandlerTestSuite) TestUpdateNote() {
	w := suite.postJSON("/api/notes", map[string]string{"title": "Draft"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.CreateNoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	body, err := json.Marshal(map[string]string{"title": "Final", "category": "urgent"})
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/notes/%d", created.Note.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	suite.router.ServeHTTP(w2, req)

	suite.Require().Equal(http.StatusOK, w2.Code)

	var updated dto.NoteDTO
	suite.Require().NoError(json.Unmarshal(w2.Body.Bytes(), &updated))
	suite.Equal("Final", updated.Title)
	suite.Equal(models.CategoryUrgent, updated.Category)
}

func (suite *NoteHandlerTestSuite) TestListNotes() {
	for _, title := range []string{"first", "second"} {
		w := suite.postJSON("/api/notes", map[string]string{"title": title})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Notes []dto.NoteDTO `json:"notes"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Notes, 2)
}

func TestNoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(NoteHandlerTestSuite))
}
