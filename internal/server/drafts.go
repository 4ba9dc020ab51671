package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/goliatone/go-jobform/pkg/application"
)

// DefaultMaxDrafts bounds a store built without WithMaxDrafts.
const DefaultMaxDrafts = 1000

// Draft is one browser's application form. Handlers must go through Do; the
// form itself is not safe for concurrent use.
type Draft struct {
	ID string
	// Token is the form token pages for this draft carry; state-changing
	// requests must echo it.
	Token string

	mu   sync.Mutex
	form *application.Form
}

// Do runs fn with exclusive access to the draft's form.
func (d *Draft) Do(fn func(form *application.Form) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.form)
}

type draftEntry struct {
	draft   *Draft
	touched time.Time
}

// DraftStore keeps drafts in memory keyed by id. Drafts idle for longer than
// the TTL are dropped; expiry is checked on access and swept at most once per
// TTL. At most MaxDrafts are held: making room evicts the least recently
// used draft.
type DraftStore struct {
	mu        sync.Mutex
	drafts    map[string]*draftEntry
	ttl       time.Duration
	maxDrafts int
	clock     clockwork.Clock
	lastSweep time.Time
}

// DraftOption tunes a DraftStore.
type DraftOption func(*DraftStore)

// WithMaxDrafts caps the number of drafts held. Values below 1 keep the
// default.
func WithMaxDrafts(n int) DraftOption {
	return func(s *DraftStore) {
		if n > 0 {
			s.maxDrafts = n
		}
	}
}

// NewDraftStore builds a store. A nil clock uses the real clock.
func NewDraftStore(ttl time.Duration, clock clockwork.Clock, opts ...DraftOption) *DraftStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &DraftStore{
		drafts:    make(map[string]*draftEntry),
		ttl:       ttl,
		maxDrafts: DefaultMaxDrafts,
		clock:     clock,
		lastSweep: clock.Now(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// MaxDrafts reports the cap on held drafts.
func (s *DraftStore) MaxDrafts() int {
	return s.maxDrafts
}

// TTL reports how long an idle draft is kept.
func (s *DraftStore) TTL() time.Duration {
	return s.ttl
}

// Resolve returns the live draft for id, creating a fresh one when id is
// unknown or expired. created reports whether a new draft was made.
func (s *DraftStore) Resolve(id string) (draft *Draft, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweepLocked(now)

	if entry, ok := s.drafts[id]; ok && id != "" {
		if now.Sub(entry.touched) < s.ttl {
			entry.touched = now
			return entry.draft, false
		}
		delete(s.drafts, id)
	}

	for len(s.drafts) >= s.maxDrafts {
		s.evictOldestLocked()
	}

	draft = &Draft{ID: uuid.NewString(), Token: uuid.NewString(), form: application.New()}
	s.drafts[draft.ID] = &draftEntry{draft: draft, touched: now}
	return draft, true
}

// Delete drops a draft.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Len reports the number of drafts held, expired ones included until swept.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *DraftStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, entry := range s.drafts {
		if now.Sub(entry.touched) >= s.ttl {
			delete(s.drafts, id)
		}
	}
	s.lastSweep = now
}

func (s *DraftStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, entry := range s.drafts {
		if oldestID == "" || entry.touched.Before(oldest) {
			oldestID, oldest = id, entry.touched
		}
	}
	delete(s.drafts, oldestID)
}
