// Package records owns the canonical student roster.
//
// The Store keeps the list in memory in insertion order and writes the
// whole list to a storage.Storage after every add, update, and delete.
// Validation always runs before any write, and a change reaches memory
// only after the write succeeded, so a failed call leaves nothing behind.
//
// A Store is not safe for concurrent use; callers serialize access
// (see package session).
package records

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RecentWindow is how far back Stats counts a record as a recent addition.
const RecentWindow = 7 * 24 * time.Hour

// Store is the record store.
type Store struct {
	storage  storage.Storage
	key      string
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	validate *validator.Validate

	records []types.Student
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now. Tests use it to pin dateAdded and the
// recent-additions window.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Open loads the roster stored under key, or starts empty when the key is
// absent.
//
// Lists written before records carried ids are given fresh ids and
// written back once.
func Open(st storage.Storage, key string, logger *slog.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		storage:  st,
		key:      key,
		log:      logger,
		now:      time.Now,
		newID:    uuid.NewString,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, found, err := st.Get(key)
	if err != nil {
		return nil, fmt.Errorf("records.Open: load %q: %w", key, err)
	}
	if !found {
		s.log.Info("no stored roster, starting empty", slog.String("key", key))
		return s, nil
	}

	var loaded []types.Student
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("records.Open: decode %q: %w", key, err)
	}

	assigned := 0
	for i := range loaded {
		if loaded[i].ID == "" {
			loaded[i].ID = s.newID()
			assigned++
		}
	}

	if assigned > 0 {
		if err := s.persist(loaded); err != nil {
			return nil, fmt.Errorf("records.Open: write back ids: %w", err)
		}
		s.log.Info("assigned ids to stored records", slog.Int("count", assigned))
	} else {
		s.records = loaded
	}

	s.log.Info("roster loaded", slog.Int("records", len(s.records)))
	return s, nil
}

// newValidator reports fields by their json names ("age", not "Age").
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Add validates in and appends a new record with DateAdded set to now.
func (s *Store) Add(in types.StudentInput) (types.Student, error) {
	in = normalize(in)
	if err := s.check(in, ""); err != nil {
		return types.Student{}, err
	}

	rec := types.Student{
		ID:        s.newID(),
		Name:      in.Name,
		Age:       in.Age,
		Email:     in.Email,
		Course:    in.Course,
		Phone:     in.Phone,
		DateAdded: s.now().UTC().Truncate(time.Millisecond),
	}

	next := append(s.List(), rec)
	if err := s.persist(next); err != nil {
		return types.Student{}, fmt.Errorf("Add: %w", err)
	}

	s.log.Debug("student added", slog.String("id", rec.ID))
	return rec, nil
}

// Update replaces every field of the record with id except ID and
// DateAdded. The duplicate-email check ignores the record itself, so
// re-saving a record unchanged succeeds.
func (s *Store) Update(id string, in types.StudentInput) (types.Student, error) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return types.Student{}, fmt.Errorf("Update %s: %w", id, ErrNotFound)
	}
	return s.updateAt(idx, in)
}

// UpdateAt is Update addressed by position in List order.
func (s *Store) UpdateAt(index int, in types.StudentInput) (types.Student, error) {
	if err := s.checkIndex(index); err != nil {
		return types.Student{}, err
	}
	return s.updateAt(index, in)
}

func (s *Store) updateAt(idx int, in types.StudentInput) (types.Student, error) {
	old := s.records[idx]

	in = normalize(in)
	if err := s.check(in, old.ID); err != nil {
		return types.Student{}, err
	}

	rec := types.Student{
		ID:        old.ID,
		Name:      in.Name,
		Age:       in.Age,
		Email:     in.Email,
		Course:    in.Course,
		Phone:     in.Phone,
		DateAdded: old.DateAdded,
	}

	next := s.List()
	next[idx] = rec
	if err := s.persist(next); err != nil {
		return types.Student{}, fmt.Errorf("Update: %w", err)
	}

	s.log.Debug("student updated", slog.String("id", rec.ID))
	return rec, nil
}

// Delete removes the record with id.
func (s *Store) Delete(id string) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("Delete %s: %w", id, ErrNotFound)
	}
	return s.deleteAt(idx)
}

// DeleteAt removes the record at index.
func (s *Store) DeleteAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	return s.deleteAt(index)
}

func (s *Store) deleteAt(idx int) error {
	id := s.records[idx].ID

	next := make([]types.Student, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	if err := s.persist(next); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	s.log.Debug("student deleted", slog.String("id", id))
	return nil
}

// IsDuplicateEmail reports whether any record other than excludeID has
// email, compared case-insensitively. Pass "" to exclude nothing.
func (s *Store) IsDuplicateEmail(email, excludeID string) bool {
	for _, r := range s.records {
		if r.ID != excludeID && strings.EqualFold(r.Email, email) {
			return true
		}
	}
	return false
}

// IsDuplicateEmailAt is IsDuplicateEmail excluding by position.
// excludeIndex -1 excludes nothing.
func (s *Store) IsDuplicateEmailAt(email string, excludeIndex int) bool {
	for i, r := range s.records {
		if i != excludeIndex && strings.EqualFold(r.Email, email) {
			return true
		}
	}
	return false
}

// Stats summarizes the roster as of now.
func (s *Store) Stats() types.Stats {
	st := types.Stats{Total: len(s.records)}
	if st.Total == 0 {
		return st
	}

	weekAgo := s.now().Add(-RecentWindow)
	sum := 0
	for _, r := range s.records {
		if !r.DateAdded.Before(weekAgo) {
			st.RecentAdditions++
		}
		sum += r.Age
	}
	st.AverageAge = int(math.Floor(float64(sum)/float64(st.Total) + 0.5))

	return st
}

// List returns a copy of the roster in insertion order.
func (s *Store) List() []types.Student {
	out := make([]types.Student, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Get returns the record with id.
func (s *Store) Get(id string) (types.Student, error) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return types.Student{}, fmt.Errorf("Get %s: %w", id, ErrNotFound)
	}
	return s.records[idx], nil
}

// At returns the record at index.
func (s *Store) At(index int) (types.Student, error) {
	if err := s.checkIndex(index); err != nil {
		return types.Student{}, err
	}
	return s.records[index], nil
}

// IndexOf returns the position of id, or -1.
func (s *Store) IndexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.records) {
		return &IndexError{Index: index, Len: len(s.records)}
	}
	return nil
}

// persist writes next and, only if the write succeeds, makes it the
// in-memory roster.
func (s *Store) persist(next []types.Student) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	if err := s.storage.Set(s.key, raw); err != nil {
		s.log.Error("failed to persist roster",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return fmt.Errorf("persist: %w", err)
	}
	s.records = next
	return nil
}
