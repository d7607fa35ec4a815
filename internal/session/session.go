// Package session turns presentation intents (submit the form, page
// forward, arm a delete, ...) into record store and view state calls, and
// keeps the two consistent after every change.
//
// A Session is the one object the presentation layer talks to. It holds
// the store, the view, and the per-record delete confirmations, and it
// serializes every call with a mutex so an HTTP server can share it.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aanand-mishra/student-records/internal/export"
	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/view"
)

// ErrDeleteNotArmed is returned by ConfirmDelete when RequestDelete was
// not called for that record first.
var ErrDeleteNotArmed = errors.New("delete was not requested for this student")

// Empty-state messages shown in place of the table.
const (
	MessageNoStudents = "No students registered yet"
	MessageNoMatches  = "No students found"
)

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	store      *records.Store
	view       *view.State
	pending    map[string]DeleteState
	exportOpts export.Options
	now        func() time.Time
	log        *slog.Logger
}

// Options configures a Session.
type Options struct {
	PageSize int
	Export   export.Options

	// Now is the clock used for export file names. Nil means time.Now.
	Now func() time.Time
}

// New wraps store in a Session with a fresh view on page 1.
func New(store *records.Store, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		store:      store,
		view:       view.New(store, opts.PageSize),
		pending:    make(map[string]DeleteState),
		exportOpts: opts.Export,
		now:        now,
		log:        logger,
	}
}

// Submit adds a record when editID is empty and updates the record editID
// otherwise. A new record sends the view back to page 1.
func (s *Session) Submit(editID string, in types.StudentInput) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if editID == "" {
		rec, err := s.store.Add(in)
		if err != nil {
			return Result{}, err
		}
		s.view.Recompute()
		s.view.ResetToFirst()
		s.log.Info("student added", slog.String("id", rec.ID))
		return Result{Student: rec, Notification: success("Student added successfully!")}, nil
	}

	rec, err := s.store.Update(editID, in)
	if err != nil {
		return Result{}, err
	}
	// The edit may have moved the record out of the current filter.
	s.view.Recompute()
	s.view.ClampToLast()
	s.log.Info("student updated", slog.String("id", rec.ID))
	return Result{Student: rec, Notification: success("Student updated successfully!")}, nil
}

// RequestEdit returns the record to load into the form.
func (s *Session) RequestEdit(id string) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Get(id)
}

// RequestDelete arms the delete confirmation for id.
func (s *Session) RequestDelete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(id); err != nil {
		return err
	}
	s.pending[id] = PendingConfirm
	return nil
}

// CancelDelete disarms id. Cancelling a record that is not armed is a
// no-op.
func (s *Session) CancelDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, id)
}

// ConfirmDelete deletes an armed record and pulls the page back if the
// delete emptied the last page.
func (s *Session) ConfirmDelete(id string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[id] != PendingConfirm {
		return Result{}, fmt.Errorf("ConfirmDelete %s: %w", id, ErrDeleteNotArmed)
	}

	rec, err := s.store.Get(id)
	if err != nil {
		delete(s.pending, id)
		return Result{}, err
	}
	if err := s.store.Delete(id); err != nil {
		return Result{}, err
	}
	delete(s.pending, id)

	s.view.Recompute()
	s.view.ClampToLast()
	s.log.Info("student deleted", slog.String("id", id))
	return Result{Student: rec, Notification: failure("Student deleted successfully!")}, nil
}

// Search sets the search term and returns to page 1.
func (s *Session) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.SetSearchTerm(term)
}

// NextPage moves forward one page. It reports false on the last page.
func (s *Session) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.Next()
}

// PreviousPage moves back one page. It reports false on page 1.
func (s *Session) PreviousPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.Previous()
}

// Stats returns the dashboard summary.
func (s *Session) Stats() types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Stats()
}

// Export renders the whole roster, in store order, as CSV.
func (s *Session) Export() (export.Document, Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := export.CSV(s.store.List(), s.now(), s.exportOpts)
	if err != nil {
		return export.Document{}, Notification{}, err
	}
	s.log.Info("roster exported",
		slog.String("file", doc.Filename),
		slog.Int("records", s.store.Len()))
	return doc, success("Data exported successfully!"), nil
}

// Snapshot is everything the presentation layer needs to render.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.view.CurrentPageRecords()
	rows := make([]Row, 0, len(page))
	for _, r := range page {
		state := s.pending[r.ID]
		rows = append(rows, Row{Student: r, DeleteState: state})
	}

	v := View{
		Records:     rows,
		CurrentPage: s.view.CurrentPage(),
		TotalPages:  s.view.TotalPages(),
		HasPrevious: s.view.CanPrevious(),
		HasNext:     s.view.CanNext(),
		SearchTerm:  s.view.SearchTerm(),
		Stats:       s.store.Stats(),
	}
	switch {
	case s.store.Len() == 0:
		v.EmptyMessage = MessageNoStudents
	case len(s.view.Filtered()) == 0:
		v.EmptyMessage = MessageNoMatches
	}
	return v
}
