package services

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/noralabs/nora-backend/internal/models"
)

var (
	datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timePattern = regexp.MustCompile(`\b([01]?\d|2[0-3]):[0-5]\d\b`)
)

// DialogResultKind discriminates what the router produced for a turn
type DialogResultKind string

const (
	ResultCapture  DialogResultKind = "capture"  // date+time stored on the session
	ResultPrompt   DialogResultKind = "prompt"   // asked the lead for date/time
	ResultBooking  DialogResultKind = "booking"  // structured booking outcome
	ResultFallback DialogResultKind = "fallback" // generative reply
)

// DialogResult is the single result type every turn produces. Outcome is
// set only for ResultBooking; Text is set for everything else.
type DialogResult struct {
	Kind    DialogResultKind
	Text    string
	Outcome *models.BookingOutcome
}

// DisplayText returns the user-facing text for any result kind. The
// delivery boundary uses this uniformly.
func (r *DialogResult) DisplayText() string {
	if r.Outcome != nil {
		return r.Outcome.Message
	}
	return r.Text
}

// DialogEngine routes each inbound message: captures date/time tokens,
// classifies intent, dispatches scheduling to the booking engine and falls
// back to the generative model for everything else.
type DialogEngine struct {
	sessions *SessionStore
	booking  *BookingService
	llm      LLMClient
}

// NewDialogEngine creates a new dialog engine
func NewDialogEngine(sessions *SessionStore, booking *BookingService, llm LLMClient) *DialogEngine {
	return &DialogEngine{
		sessions: sessions,
		booking:  booking,
		llm:      llm,
	}
}

// HandleMessage processes one inbound message for a phone number. The
// inbound text is appended to the history before any branching, and every
// branch persists the session before returning.
func (d *DialogEngine) HandleMessage(ctx context.Context, phone, text string) (*DialogResult, error) {
	session, err := d.sessions.LoadSession(ctx, phone)
	if err != nil {
		return nil, err
	}
	session.Append(models.RoleUser, text)

	// Date+time capture short-circuits the turn entirely
	dateToken := datePattern.FindString(text)
	timeToken := timePattern.FindString(text)
	if dateToken != "" && timeToken != "" {
		session.CapturedDate = dateToken
		session.CapturedTime = timeToken

		confirmation := fmt.Sprintf("Data %s e horário %s capturados.", dateToken, timeToken)
		session.Append(models.RoleAssistant, confirmation)
		if err := d.sessions.SaveSession(ctx, phone, session); err != nil {
			return nil, err
		}
		return &DialogResult{Kind: ResultCapture, Text: confirmation}, nil
	}

	intent := DetectIntent(text)

	if intent == IntentSchedule {
		if !session.HasCapture() {
			prompt := "Claro! Para agendarmos, por favor me informe a data no formato AAAA-MM-DD " +
				"e o horário no formato HH:MM que você deseja."
			session.Append(models.RoleAssistant, prompt)
			if err := d.sessions.SaveSession(ctx, phone, session); err != nil {
				return nil, err
			}
			return &DialogResult{Kind: ResultPrompt, Text: prompt}, nil
		}

		// Distance is not captured in this flow yet, so every booking runs
		// with distance 0.
		outcome := d.booking.ProcessBooking(ctx, phone, session.CapturedDate, session.CapturedTime, 0)
		session.Append(models.RoleAssistant, outcome.Message)
		if err := d.sessions.SaveSession(ctx, phone, session); err != nil {
			return nil, err
		}
		return &DialogResult{Kind: ResultBooking, Outcome: outcome}, nil
	}

	// Everything else, including price and cancel, goes to the generative
	// fallback over the recent history.
	reply, err := d.llm.GenerateReply(ctx, RecentHistory(session, RecentHistoryLimit), text)
	if err != nil {
		log.Printf("LLM fallback failed for %s: %v", phone, err)
		reply = llmErrorPlaceholder
	}
	session.Append(models.RoleAssistant, reply)
	if err := d.sessions.SaveSession(ctx, phone, session); err != nil {
		return nil, err
	}
	return &DialogResult{Kind: ResultFallback, Text: reply}, nil
}
