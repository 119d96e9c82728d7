package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/jonboulle/clockwork"
)

// StateFileName is the snooze state file kept in the user's home directory
const StateFileName = ".break_reminder_state.json"

// SnoozeStore persists the per-day snooze counter to a small JSON file
type SnoozeStore struct {
	path  string
	clock clockwork.Clock
}

// NewSnoozeStore creates a store backed by the file at path
func NewSnoozeStore(path string, clock clockwork.Clock) *SnoozeStore {
	return &SnoozeStore{path: path, clock: clock}
}

// DefaultStatePath returns the per-user location of the snooze state file
func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(homeDir, StateFileName), nil
}

// Path returns the file backing the store
func (s *SnoozeStore) Path() string {
	return s.path
}

// Load returns today's snooze count. A missing, malformed or stale record
// counts as zero.
func (s *SnoozeStore) Load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read snooze state %s: %v", s.path, err)
		}
		return 0
	}

	var state models.SnoozeState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("Ignoring malformed snooze state %s: %v", s.path, err)
		return 0
	}

	return state.CountOn(s.clock.Now())
}

// Save records count as today's snooze count, replacing any previous record
func (s *SnoozeStore) Save(count int) error {
	data, err := json.Marshal(models.NewSnoozeState(s.clock.Now(), count))
	if err != nil {
		return fmt.Errorf("encode snooze state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write snooze state %s: %w", s.path, err)
	}

	return nil
}
