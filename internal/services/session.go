package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noralabs/nora-backend/internal/models"
)

// SessionTTL is how long a session survives without activity. Every save
// resets the countdown (sliding window); expiry is a hard deletion.
const SessionTTL = time.Hour

// RecentHistoryLimit caps how many turns are handed to the LLM as context.
// The full history stays in the stored session regardless.
const RecentHistoryLimit = 10

// SessionStore keeps per-lead conversation state in Redis, keyed by phone
// number. At most one live session exists per phone at a time.
//
// Load-modify-save is not atomic: two concurrent messages from the same
// phone can interleave and the last writer wins. Same-user concurrency is
// low enough in practice that we accept this instead of locking per phone.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a session store on the given Redis client
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    SessionTTL,
	}
}

func sessionKey(phone string) string {
	return "session:" + phone
}

// LoadSession fetches the session for a phone number. A missing or expired
// key yields a fresh empty session, never an error.
func (s *SessionStore) LoadSession(ctx context.Context, phone string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &models.Session{
				History:   []models.Message{},
				CreatedAt: time.Now().UTC(),
			}, nil
		}
		return nil, fmt.Errorf("failed to load session for %s: %w", phone, err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupted session data: start over rather than wedging the lead
		log.Printf("⚠️  Discarding corrupted session for %s: %v", phone, err)
		return &models.Session{
			History:   []models.Message{},
			CreatedAt: time.Now().UTC(),
		}, nil
	}
	return &session, nil
}

// SaveSession persists the session and resets its TTL
func (s *SessionStore) SaveSession(ctx context.Context, phone string, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session for %s: %w", phone, err)
	}
	if err := s.client.Set(ctx, sessionKey(phone), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session for %s: %w", phone, err)
	}
	return nil
}

// AppendMessage adds one message to the session history as a single
// load-push-save unit
func (s *SessionStore) AppendMessage(ctx context.Context, phone, role, content string) error {
	session, err := s.LoadSession(ctx, phone)
	if err != nil {
		return err
	}
	session.Append(role, content)
	return s.SaveSession(ctx, phone, session)
}

// ClearSession deletes the session outright. No-op if absent.
func (s *SessionStore) ClearSession(ctx context.Context, phone string) error {
	return s.client.Del(ctx, sessionKey(phone)).Err()
}

// ActiveSessions counts live sessions (for the health endpoint)
func (s *SessionStore) ActiveSessions(ctx context.Context) int {
	keys, err := s.client.Keys(ctx, "session:*").Result()
	if err != nil {
		return 0
	}
	return len(keys)
}

// RecentHistory returns the last n turns of a session's history
func RecentHistory(session *models.Session, n int) []models.Message {
	if len(session.History) <= n {
		return session.History
	}
	return session.History[len(session.History)-n:]
}
