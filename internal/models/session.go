package models

import "time"

// Message roles in the conversation history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation history
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session stores temporary conversation state for a WhatsApp lead.
// It lives in Redis under "session:<phone>" with a sliding 1 hour TTL;
// expiry is a hard deletion, there is no archive.
type Session struct {
	History      []Message `json:"history"`
	CapturedDate string    `json:"data,omitempty"`    // YYYY-MM-DD once parsed from a message
	CapturedTime string    `json:"horario,omitempty"` // HH:MM once parsed from a message
	CreatedAt    time.Time `json:"created_at"`
}

// HasCapture reports whether both a date and a time have been captured,
// which is what the scheduling flow needs before calling the booking engine.
func (s *Session) HasCapture() bool {
	return s.CapturedDate != "" && s.CapturedTime != ""
}

// Append adds a message to the in-memory history. The caller is responsible
// for persisting the session afterwards.
func (s *Session) Append(role, content string) {
	s.History = append(s.History, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}
