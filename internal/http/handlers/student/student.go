// Package student contains all HTTP handlers for the student roster.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function receives the session once, at route registration,
// and returns the http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("POST /api/students", student.New(sess))
//
// The handlers only translate HTTP into session intents and session
// results into JSON. Validation, persistence, and paging live behind the
// session.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/export"
	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/session"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Register mounts every roster route on router.
//
// Route table:
//
//	GET    /api/students                       → current page snapshot
//	POST   /api/students                       → add a student
//	GET    /api/students/{id}                  → load a student into the form
//	PUT    /api/students/{id}                  → update a student
//	POST   /api/students/{id}/delete           → arm the delete confirmation
//	POST   /api/students/{id}/delete/confirm   → delete an armed student
//	POST   /api/students/{id}/delete/cancel    → disarm
//	PUT    /api/view/search                    → set the search term
//	POST   /api/view/next                      → next page
//	POST   /api/view/previous                  → previous page
//	GET    /api/stats                          → dashboard statistics
//	GET    /api/courses                        → course list for the form
//	GET    /api/export                         → CSV download
func Register(router *http.ServeMux, sess *session.Session) {
	router.HandleFunc("GET /api/students", List(sess))
	router.HandleFunc("POST /api/students", New(sess))
	router.HandleFunc("GET /api/students/{id}", GetByID(sess))
	router.HandleFunc("PUT /api/students/{id}", Update(sess))
	router.HandleFunc("POST /api/students/{id}/delete", RequestDelete(sess))
	router.HandleFunc("POST /api/students/{id}/delete/confirm", ConfirmDelete(sess))
	router.HandleFunc("POST /api/students/{id}/delete/cancel", CancelDelete(sess))
	router.HandleFunc("PUT /api/view/search", Search(sess))
	router.HandleFunc("POST /api/view/next", Page(sess, 1))
	router.HandleFunc("POST /api/view/previous", Page(sess, -1))
	router.HandleFunc("GET /api/stats", Stats(sess))
	router.HandleFunc("GET /api/courses", Courses())
	router.HandleFunc("GET /api/export", Export(sess))
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/students
// Returns the page the view currently points at, with paging flags,
// stats, and each row's delete state.
// ─────────────────────────────────────────────────────────────────────────────
func List(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, sess.Snapshot())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "Rakesh", "age": 20, "email": "rakesh@test.com",
//	  "course": "Data Science", "phone": "9876543210" }
//
// Success response (201 Created):
//
//	{ "student": {...}, "notification": { "kind": "success", "message": "Student added successfully!" } }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or a broken rule
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		result, err := sess.Submit("", in)
		if err != nil {
			writeError(w, err)
			return
		}

		slog.Info("student created", slog.String("id", result.Student.ID))
		response.WriteJSON(w, http.StatusCreated, result)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
// Returns one student so the form can be filled for editing.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, err := sess.RequestEdit(id)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every field except id and dateAdded. Same body as New.
// ─────────────────────────────────────────────────────────────────────────────
func Update(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		result, err := sess.Submit(id, in)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, result)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// RequestDelete handles POST /api/students/{id}/delete
// First step of the two-step delete. Nothing is removed yet; the row is
// marked pending_confirm in the returned snapshot.
// ─────────────────────────────────────────────────────────────────────────────
func RequestDelete(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("delete requested", slog.String("id", id))

		if err := sess.RequestDelete(id); err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, sess.Snapshot())
	}
}

// ConfirmDelete handles POST /api/students/{id}/delete/confirm
func ConfirmDelete(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		result, err := sess.ConfirmDelete(id)
		if err != nil {
			writeError(w, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, result)
	}
}

// CancelDelete handles POST /api/students/{id}/delete/cancel
func CancelDelete(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess.CancelDelete(r.PathValue("id"))
		response.WriteJSON(w, http.StatusOK, sess.Snapshot())
	}
}

type searchRequest struct {
	Term string `json:"term"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles PUT /api/view/search
//
//	{ "term": "data" }
//
// An empty term clears the filter. The view returns to page 1.
// ─────────────────────────────────────────────────────────────────────────────
func Search(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		sess.Search(req.Term)
		response.WriteJSON(w, http.StatusOK, sess.Snapshot())
	}
}

type pageResponse struct {
	Moved bool         `json:"moved"`
	View  session.View `json:"view"`
}

// Page handles POST /api/view/next and POST /api/view/previous.
// moved is false when the view was already at that end.
func Page(sess *session.Session, delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var moved bool
		if delta > 0 {
			moved = sess.NextPage()
		} else {
			moved = sess.PreviousPage()
		}
		response.WriteJSON(w, http.StatusOK, pageResponse{Moved: moved, View: sess.Snapshot()})
	}
}

// Stats handles GET /api/stats
func Stats(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, sess.Stats())
	}
}

// Courses handles GET /api/courses
func Courses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, types.Courses)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Export handles GET /api/export
// Streams the whole roster as student_records_<date>.csv.
//
// Error responses:
//
//	400 Bad Request  — the roster is empty ("No data to export!")
//
// ─────────────────────────────────────────────────────────────────────────────
func Export(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, note, err := sess.Export()
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("X-Notification", note.Message)
		if err := response.Attachment(w, doc.Filename, doc.ContentType, doc.Content); err != nil {
			slog.Error("error writing export", slog.String("error", err.Error()))
		}
	}
}

// decodeInput reads the form payload. On failure it has already written
// the 400 response and returns false.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.StudentInput, bool) {
	var in types.StudentInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return in, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return in, false
	}

	return in, true
}

// writeError maps session and store errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	var verr *records.ValidationError

	switch {
	case errors.As(err, &verr):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr))
	case errors.Is(err, records.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.Message("Student not found"))
	case errors.Is(err, session.ErrDeleteNotArmed):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	case errors.Is(err, export.ErrNothingToExport):
		response.WriteJSON(w, http.StatusBadRequest, response.Message("No data to export!"))
	default:
		slog.Error("internal error", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
