// Package leads captures contact-form submissions together with the
// calculator state they were made from. Submissions live in memory only.
package leads

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/roi-calculator/internal/calculator"
	"go.uber.org/zap"
)

// ErrValidation is wrapped by every validation failure.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when no lead has the requested id.
var ErrNotFound = errors.New("lead not found")

// RequiredFieldsMessage is shown when a mandatory field is missing.
const RequiredFieldsMessage = "Veuillez remplir tous les champs obligatoires."

// Submission is what the contact form posts.
type Submission struct {
	FirstName      string           `json:"firstName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	AcceptInfo     bool             `json:"acceptInfo"`
	CalculatorData calculator.Input `json:"calculatorData"`
}

// Lead is a stored submission.
type Lead struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Submission
}

// Validate checks the mandatory fields: first name, email and consent.
func (s Submission) Validate() error {
	var missing []string
	if strings.TrimSpace(s.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(s.Email) == "" {
		missing = append(missing, "email")
	}
	if !s.AcceptInfo {
		missing = append(missing, "acceptInfo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (missing %s)", ErrValidation, RequiredFieldsMessage, strings.Join(missing, ", "))
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(s.Email)); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, s.Email)
	}
	return nil
}

// Store keeps leads for the lifetime of the process.
type Store struct {
	logger *zap.Logger
	now    func() time.Time

	mu    sync.RWMutex
	leads map[string]Lead
}

// NewStore returns an empty store. A nil now uses time.Now.
func NewStore(logger *zap.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Store{logger: logger, now: now, leads: make(map[string]Lead)}
}

// Submit validates s and records it.
func (st *Store) Submit(s Submission) (Lead, error) {
	if err := s.Validate(); err != nil {
		st.logger.Info("lead rejected",
			zap.String("op", "leads.Submit"),
			zap.Error(err),
		)
		return Lead{}, err
	}

	s.FirstName = strings.TrimSpace(s.FirstName)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)

	lead := Lead{
		ID:         uuid.New().String(),
		Timestamp:  st.now().UTC(),
		Submission: s,
	}

	st.mu.Lock()
	st.leads[lead.ID] = lead
	st.mu.Unlock()

	st.logger.Info("lead captured",
		zap.String("op", "leads.Submit"),
		zap.String("id", lead.ID),
		zap.Float64("clientCount", s.CalculatorData.ClientCount),
		zap.Float64("devicePrice", s.CalculatorData.DevicePrice),
	)
	return lead, nil
}

// Get returns the lead with the given id.
func (st *Store) Get(id string) (Lead, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	lead, ok := st.leads[id]
	if !ok {
		return Lead{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return lead, nil
}

// List returns every lead, oldest first.
func (st *Store) List() []Lead {
	st.mu.RLock()
	out := make([]Lead, 0, len(st.leads))
	for _, lead := range st.leads {
		out = append(out, lead)
	}
	st.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
