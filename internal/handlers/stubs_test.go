package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/agenda-api/internal/apperr"
	"github.com/agendafacil/agenda-api/internal/middleware"
	"github.com/agendafacil/agenda-api/internal/models"
	"github.com/agendafacil/agenda-api/internal/validators"
)

// ---------- in-memory repositories ----------

type stubAppointmentRepo struct {
	items []*models.Appointment
	seq   int
}

func (r *stubAppointmentRepo) List(_ context.Context, userID, date string) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0)
	for _, ap := range r.items {
		if ap.UserID != userID {
			continue
		}
		if date != "" && ap.Date != date {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *stubAppointmentRepo) Get(_ context.Context, userID, id string) (*models.Appointment, error) {
	for _, ap := range r.items {
		if ap.ID == id && ap.UserID == userID {
			clone := *ap
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("appointment not found")
}

func (r *stubAppointmentRepo) Create(_ context.Context, ap *models.Appointment) error {
	r.seq++
	ap.ID = fmt.Sprintf("ap-%d", r.seq)
	ap.CreatedAt = time.Now().Add(-time.Minute)
	ap.UpdatedAt = ap.CreatedAt
	clone := *ap
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubAppointmentRepo) Save(_ context.Context, ap *models.Appointment) error {
	for i, cur := range r.items {
		if cur.ID == ap.ID {
			ap.UpdatedAt = time.Now()
			clone := *ap
			r.items[i] = &clone
			return nil
		}
	}
	return apperr.NotFound("appointment not found")
}

func (r *stubAppointmentRepo) Delete(_ context.Context, userID, id string) error {
	for i, ap := range r.items {
		if ap.ID == id && ap.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("appointment not found")
}

type stubTaskRepo struct {
	items []*models.Task
	seq   int
}

func (r *stubTaskRepo) List(_ context.Context, userID, status, priority string) ([]models.Task, error) {
	out := make([]models.Task, 0)
	for _, task := range r.items {
		if task.UserID != userID {
			continue
		}
		if status != "" && task.Status != status {
			continue
		}
		if priority != "" && task.Priority != priority {
			continue
		}
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubTaskRepo) Get(_ context.Context, userID, id string) (*models.Task, error) {
	for _, task := range r.items {
		if task.ID == id && task.UserID == userID {
			clone := *task
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("task not found")
}

func (r *stubTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.seq++
	task.ID = fmt.Sprintf("task-%d", r.seq)
	// creation instants strictly increase so newest-first order is stable
	task.CreatedAt = time.Now().Add(time.Duration(r.seq-1000) * time.Second)
	task.UpdatedAt = task.CreatedAt
	clone := *task
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubTaskRepo) Save(_ context.Context, task *models.Task) error {
	for i, cur := range r.items {
		if cur.ID == task.ID {
			task.UpdatedAt = time.Now()
			clone := *task
			r.items[i] = &clone
			return nil
		}
	}
	return apperr.NotFound("task not found")
}

func (r *stubTaskRepo) Delete(_ context.Context, userID, id string) error {
	for i, task := range r.items {
		if task.ID == id && task.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("task not found")
}

type stubUserRepo struct {
	users map[string]*models.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*models.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := r.users[user.Email]; exists {
		return apperr.Conflict("this email is already registered")
	}
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

// ---------- router plumbing ----------

// testIdentity stands in for RequireAuth: the X-User-ID header becomes the
// authenticated caller.
func testIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, c.GetHeader("X-User-ID"))
	}
}

func newAppointmentRouter(repo *stubAppointmentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validators.RegisterBindings()

	h := NewAppointmentHandler(repo)
	r := gin.New()
	g := r.Group("/api", testIdentity())
	g.GET("/appointments", h.List)
	g.POST("/appointments", h.Create)
	g.PUT("/appointments/:id", h.Update)
	g.DELETE("/appointments/:id", h.Delete)
	return r
}

func newTaskRouter(repo *stubTaskRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validators.RegisterBindings()

	h := NewTaskHandler(repo)
	r := gin.New()
	g := r.Group("/api", testIdentity())
	g.GET("/tasks", h.List)
	g.POST("/tasks", h.Create)
	g.PUT("/tasks/:id", h.Update)
	g.DELETE("/tasks/:id", h.Delete)
	return r
}

func doRequest(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
