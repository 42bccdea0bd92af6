package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"
)

// Well-known app_state keys.
const (
	StateKeyGoals             = "nutrition_goals"
	StateKeyCardioCheckpoint  = "cardio_session_checkpoint"
	StateKeyWorkoutCheckpoint = "workout_session_checkpoint"
	StateKeySyncCursor        = "backend_sync_cursor"
	StateKeyBackendAuth       = "backend_auth_token"
)

// GetState retrieves a JSON document by key and decodes it into out. The
// second return value is false when the key is absent. A malformed payload
// is treated as absent data: the offending key is cleared and logged, never
// propagated, so corrupt local storage cannot crash a reader.
func (s *Store) GetState(key string, out any) (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Warn("clearing corrupt app state")
		if clearErr := s.ClearState(key); clearErr != nil {
			return false, clearErr
		}
		return false, nil
	}
	return true, nil
}

// SetState stores a value as a JSON document under key
func (s *Store) SetState(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(data))
	return err
}

// ClearState removes a key. Clearing an absent key is not an error.
func (s *Store) ClearState(key string) error {
	_, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, key)
	return err
}
