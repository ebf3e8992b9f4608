package dto

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
)

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	Text      string              `json:"text"`
	Category  models.NoteCategory `json:"category"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// CreateNoteResponse carries the created note with the remaining daily quota
type CreateNoteResponse struct {
	Note           NoteDTO `json:"note"`
	RemainingToday int     `json:"remaining_today"`
}

// PublicNoteDTO represents a note resolved through a public link. The
// owner's identity is not exposed.
type PublicNoteDTO struct {
	Title     string              `json:"title"`
	Text      string              `json:"text"`
	Category  models.NoteCategory `json:"category"`
	CreatedAt time.Time           `json:"created_at"`
}

// ReminderDTO represents a reminder in API responses
type ReminderDTO struct {
	ID        uint64    `json:"id"`
	NoteID    uint64    `json:"note_id"`
	NoteTitle string    `json:"note_title"`
	NoteText  string    `json:"note_text"`
	RemindAt  time.Time `json:"remind_at"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID,
		Title:     note.Title,
		Text:      note.Text,
		Category:  note.Category,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	items := make([]NoteDTO, len(notes))
	for i, note := range notes {
		items[i] = ToNoteDTO(note)
	}
	return items
}

// ToPublicNoteDTO converts a Note model to PublicNoteDTO
func ToPublicNoteDTO(note models.Note) PublicNoteDTO {
	return PublicNoteDTO{
		Title:     note.Title,
		Text:      note.Text,
		Category:  note.Category,
		CreatedAt: note.CreatedAt,
	}
}

// ToReminderDTO converts a Reminder model to ReminderDTO
func ToReminderDTO(reminder models.Reminder) ReminderDTO {
	return ReminderDTO{
		ID:        reminder.ID,
		NoteID:    reminder.NoteID,
		NoteTitle: reminder.NoteTitle,
		NoteText:  reminder.NoteText,
		RemindAt:  reminder.RemindAt,
		Sent:      reminder.Sent,
		CreatedAt: reminder.CreatedAt,
	}
}

// ToReminderDTOs converts a slice of reminders
func ToReminderDTOs(reminders []models.Reminder) []ReminderDTO {
	items := make([]ReminderDTO, len(reminders))
	for i, reminder := range reminders {
		items[i] = ToReminderDTO(reminder)
	}
	return items
}
