package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lmercat/productivity-api/internal/models"
)

// CalendarService pushes note events to an external calendar webhook.
// The integration is best effort: failures are logged, never surfaced
// to the caller.
type CalendarService struct {
	webhookURL string
	client     *http.Client
}

func NewCalendarService(webhookURL string) *CalendarService {
	return &CalendarService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

type calendarNotePayload struct {
	Event     string `json:"event"`
	NoteID    uint64 `json:"note_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// NotifyNoteCreated posts the new note to the configured webhook. It is a
// no-op when no webhook URL is configured.
func (s *CalendarService) NotifyNoteCreated(note *models.Note) {
	if s == nil || s.webhookURL == "" {
		return
	}

	payload := calendarNotePayload{
		Event:     "note.created",
		NoteID:    note.ID,
		Title:     note.Title,
		Category:  string(note.Category),
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warn("Failed to encode calendar payload")
		return
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.WithError(err).Warn("Failed to notify calendar webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Warn("Calendar webhook rejected note event")
	}
}
