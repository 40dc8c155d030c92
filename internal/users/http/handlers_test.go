package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigflow/gigflow-backend/internal/auth"
	authdomain "github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/users/domain"
)

type fakeService struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeService() *fakeService {
	employer := authdomain.UserTypeEmployer
	return &fakeService{
		users: map[int64]*domain.User{
			1: {ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "secret-hash", UserType: &employer, CreatedAt: time.Now()},
			2: {ID: 2, Username: "bob", Email: "bob@example.com"},
		},
		nextID: 3,
	}
}

func (f *fakeService) Register(_ context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == req.Username {
			return nil, &domain.FieldError{Field: "username", Message: "A user with that username already exists."}
		}
	}
	u := &domain.User{ID: f.nextID, Username: req.Username, Email: req.Email, PasswordHash: "hashed", UserType: req.UserType}
	f.users[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeService) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeService) Update(_ context.Context, callerID, targetID int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	u, ok := f.users[targetID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if callerID != targetID {
		return nil, domain.ErrForbidden
	}
	req.Apply(u)
	return u, nil
}

func (f *fakeService) Delete(_ context.Context, callerID, targetID int64) error {
	if _, ok := f.users[targetID]; !ok {
		return domain.ErrNotFound
	}
	if callerID != targetID {
		return domain.ErrForbidden
	}
	delete(f.users, targetID)
	return nil
}

// asUser authenticates requests carrying X-Test-User as that user id.
func asUser(c *gin.Context) {
	if raw := c.GetHeader("X-Test-User"); raw != "" {
		id, _ := strconv.ParseInt(raw, 10, 64)
		auth.SetUser(c, &authdomain.Principal{ID: id}, nil)
	}
	c.Next()
}

func setup(t *testing.T) (*gin.Engine, *fakeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := newFakeService()
	r := gin.New()
	g := r.Group("/api/v1/users")
	g.Use(asUser)
	New(svc).Register(g)
	return r, svc
}

func do(r *gin.Engine, method, path, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.FormatInt(userID, 10))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSignup(t *testing.T) {
	r, svc := setup(t)

	rr := do(r, http.MethodPost, "/api/v1/users",
		`{"username":"carol","email":"carol@example.com","password":"long enough","user_type":"freelancer"}`, 0)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "User created successfully!")
	assert.NotContains(t, rr.Body.String(), "hashed")
	assert.NotContains(t, rr.Body.String(), "password")
	assert.Len(t, svc.users, 3)
}

func TestSignup_Rejections(t *testing.T) {
	r, _ := setup(t)

	t.Run("already authenticated", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/v1/users", `{}`, 1)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("invalid fields", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/v1/users",
			`{"username":"dave","email":"not-an-email","password":"long enough","user_type":"admin"}`, 0)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body struct {
			Detail string              `json:"detail"`
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Invalid data", body.Detail)
		assert.Contains(t, body.Errors, "email")
		assert.Contains(t, body.Errors, "user_type")
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		body := `{"username":"erin","email":"erin@example.com","password":"` + strings.Repeat("a", 100) + `"}`
		rr := do(r, http.MethodPost, "/api/v1/users", body, 0)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"password"`)

		rr = do(r, http.MethodPut, "/api/v1/users/1", `{"password":"`+strings.Repeat("a", 73)+`"}`, 1)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"password"`)
	})

	t.Run("duplicate username", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/v1/users",
			`{"username":"alice","email":"a2@example.com","password":"long enough"}`, 0)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "A user with that username already exists.")
	})
}

func TestMe(t *testing.T) {
	r, _ := setup(t)

	rr := do(r, http.MethodGet, "/api/v1/users", "", 0)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"Please Sign-up"}`, rr.Body.String())

	rr = do(r, http.MethodGet, "/api/v1/users", "", 1)
	require.Equal(t, http.StatusOK, rr.Code)
	var page struct {
		Count   int           `json:"count"`
		Next    *string       `json:"next"`
		Results []domain.User `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Count)
	assert.Nil(t, page.Next)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "alice", page.Results[0].Username)

	rr = do(r, http.MethodGet, "/api/v1/users?page=2", "", 1)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(r, http.MethodGet, "/api/v1/users?page=9223372036854775807", "", 1)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Invalid page."}`, rr.Body.String())
}

func TestUpdate(t *testing.T) {
	r, svc := setup(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPut, "/api/v1/users/1", `{}`, 0).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/v1/users/abc", `{}`, 1).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPut, "/api/v1/users/2", `{"first_name":"x"}`, 1).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/v1/users/99", `{"first_name":"x"}`, 1).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/v1/users/1", `{"username":"  "}`, 1).Code)

	rr := do(r, http.MethodPut, "/api/v1/users/1", `{"first_name":"Alice"}`, 1)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "User updated successfully!")
	assert.Equal(t, "Alice", svc.users[1].FirstName)
	assert.Equal(t, "alice@example.com", svc.users[1].Email)
}

func TestDelete(t *testing.T) {
	r, svc := setup(t)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/api/v1/users/2", "", 1).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/v1/users/1", "", 1).Code)
	assert.NotContains(t, svc.users, int64(1))
}
