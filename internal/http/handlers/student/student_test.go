package student_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/session"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	store, err := records.Open(memory.New(), "records", nil)
	require.NoError(t, err)

	router := http.NewServeMux()
	student.Register(router, session.New(store, session.Options{PageSize: 5}, nil))
	return router
}

func do(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func payload(email string, age int) map[string]any {
	return map[string]any{
		"name":   "John Doe",
		"age":    age,
		"email":  email,
		"course": "Computer Science",
		"phone":  "9876543210",
	}
}

func TestStudentHandlers(t *testing.T) {
	router := newRouter(t)

	var created session.Result

	t.Run("CreateStudent", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/students", payload("john@example.com", 20))
		require.Equal(t, http.StatusCreated, w.Code)

		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotEmpty(t, created.Student.ID)
		assert.Equal(t, "Student added successfully!", created.Notification.Message)
	})

	t.Run("CreateDuplicateEmail", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/students", payload("JOHN@example.com", 22))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, response.StatusError, resp.Status)
		assert.Equal(t, records.RuleDuplicateEmail, resp.Rule)
		assert.Equal(t, "A student with this email already exists.", resp.Error)
	})

	t.Run("CreateAgeOutOfRange", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/students", payload("young@example.com", 15))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, records.RuleAgeRange, resp.Rule)
	})

	t.Run("CreateEmptyBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/students", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetStudent", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/students/"+created.Student.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "john@example.com", got["email"])
		assert.Contains(t, got, "dateAdded")
	})

	t.Run("GetStudentNotFound", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/students/does-not-exist", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UpdateStudent", func(t *testing.T) {
		body := payload("john@example.com", 21)
		body["name"] = "John Updated"
		w := do(router, http.MethodPut, "/api/students/"+created.Student.ID, body)
		require.Equal(t, http.StatusOK, w.Code)

		var res session.Result
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, "John Updated", res.Student.Name)
		assert.Equal(t, created.Student.DateAdded, res.Student.DateAdded)
	})

	t.Run("SearchAndList", func(t *testing.T) {
		w := do(router, http.MethodPut, "/api/view/search", map[string]string{"term": "nobody"})
		require.Equal(t, http.StatusOK, w.Code)

		var v session.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Empty(t, v.Records)
		assert.Equal(t, session.MessageNoMatches, v.EmptyMessage)

		do(router, http.MethodPut, "/api/view/search", map[string]string{"term": ""})
		w = do(router, http.MethodGet, "/api/students", nil)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Len(t, v.Records, 1)
		assert.Equal(t, 1, v.Stats.Total)
	})

	t.Run("PageBoundaries", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/view/previous", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Moved bool `json:"moved"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Moved)
	})

	t.Run("Export", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/export", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "student_records_")
		lines := strings.Split(w.Body.String(), "\n")
		assert.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[1], `"John Updated",21,"john@example.com"`))
	})

	t.Run("DeleteRequiresConfirmation", func(t *testing.T) {
		id := created.Student.ID

		w := do(router, http.MethodPost, "/api/students/"+id+"/delete/confirm", nil)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = do(router, http.MethodPost, "/api/students/"+id+"/delete", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var v session.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		require.Len(t, v.Records, 1)
		assert.Equal(t, session.PendingConfirm, v.Records[0].DeleteState)

		w = do(router, http.MethodPost, "/api/students/"+id+"/delete/cancel", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(router, http.MethodPost, "/api/students/"+id+"/delete", nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = do(router, http.MethodPost, "/api/students/"+id+"/delete/confirm", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(router, http.MethodGet, "/api/stats", nil)
		var stats map[string]int
		require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
		assert.Equal(t, 0, stats["totalStudents"])
	})

	t.Run("ExportEmpty", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/export", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "No data to export!", resp.Error)
	})

	t.Run("Courses", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/courses", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var courses []string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&courses))
		assert.Contains(t, courses, "Computer Science")
	})
}
