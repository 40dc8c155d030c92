package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigflow/gigflow-backend/internal/auth"
	authdomain "github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/projects/domain"
	"github.com/gigflow/gigflow-backend/internal/projects/repository"
	"github.com/gigflow/gigflow-backend/internal/projects/service"
)

var (
	listCols = []string{
		"id", "user_id", "name", "description", "category_id", "name",
		"deadline", "price", "created_at", "updated_at", "total",
	}
	rowCols = listCols[:len(listCols)-1]
)

var principals = map[string]*authdomain.Principal{
	"employer":   {ID: 7, Username: "emp", UserType: authdomain.UserTypeEmployer},
	"freelancer": {ID: 8, Username: "free", UserType: authdomain.UserTypeFreelancer},
}

func setup(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := gin.New()
	g := r.Group("/api/v1/projects")
	g.Use(func(c *gin.Context) {
		if p, ok := principals[c.GetHeader("X-Test-User")]; ok {
			auth.SetUser(c, p, nil)
		}
		c.Next()
	})
	New(service.NewProjectService(repository.NewProjectRepository(db))).Register(g)
	return r, mock
}

func do(r *gin.Engine, method, path, body, as string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("X-Test-User", as)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type page struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []domain.Project `json:"results"`
}

func TestList_CategoryFilter(t *testing.T) {
	r, mock := setup(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("AND strpos(lower(c.name), lower($1)) > 0")).
		WithArgs("dev", 10, 0).
		WillReturnRows(sqlmock.NewRows(listCols).
			AddRow(2, 7, "Backend API", "REST backend", 2, "Development", "1 month", "900.50", now, now, 1))

	rr := do(r, http.MethodGet, "/api/v1/projects?category=dev", "", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Backend API", got.Results[0].Name)
	assert.Equal(t, "Development", got.Results[0].CategoryName)
	assert.Equal(t, "900.50", got.Results[0].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyParamIsIgnored(t *testing.T) {
	r, mock := setup(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.deleted_at IS NULL\nORDER BY p.id")).
		WithArgs(1, 0).
		WillReturnRows(sqlmock.NewRows(listCols).
			AddRow(1, 7, "Website Redesign", "d", 1, "Design", "2 weeks", "150.00", now, now, 2))

	rr := do(r, http.MethodGet, "/api/v1/projects?name=&page_size=1", "", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	require.NotNil(t, got.Next)
	assert.Contains(t, *got.Next, "page=2")
	assert.Nil(t, got.Previous)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_HugePageNeverReachesDatabase(t *testing.T) {
	r, mock := setup(t)

	rr := do(r, http.MethodGet, "/api/v1/projects?page=9223372036854775807", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Invalid page."}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	r, mock := setup(t)

	mock.ExpectQuery(regexp.QuoteMeta("AND p.id = $1;")).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	rr := do(r, http.MethodGet, "/api/v1/projects/5", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Project not found"}`, rr.Body.String())
}

func TestCreate(t *testing.T) {
	r, mock := setup(t)
	now := time.Now()
	body := `{"name":"Logo","description":"A logo","category":1,"deadline":"1 week","price":150}`

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/v1/projects", body, "").Code)

	rr := do(r, http.MethodPost, "/api/v1/projects", body, "freelancer")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"detail":"Just employers can create a project"}`, rr.Body.String())

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs(int64(7), "Logo", "A logo", int64(1), "1 week", "150").
		WillReturnRows(sqlmock.NewRows(rowCols).
			AddRow(9, 7, "Logo", "A logo", 1, "Design", "1 week", "150.00", now, now))

	rr = do(r, http.MethodPost, "/api/v1/projects", body, "employer")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"price":"150.00"`)
	assert.Contains(t, rr.Body.String(), `"user":7`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Validation(t *testing.T) {
	r, _ := setup(t)

	rr := do(r, http.MethodPost, "/api/v1/projects",
		`{"name":"Logo","description":"d","category":1,"deadline":"soon","price":"-5"}`, "employer")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"price"`)

	rr = do(r, http.MethodPost, "/api/v1/projects",
		`{"name":"  ","description":"d","category":1,"deadline":"soon","price":"5.999"}`, "employer")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"price"`)

	rr = do(r, http.MethodPost, "/api/v1/projects",
		`{"name":"  ","description":"d","category":1,"deadline":"soon","price":"5.99"}`, "employer")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "This field may not be blank.")
}

func TestUpdate(t *testing.T) {
	r, mock := setup(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("AND p.id = $1 AND p.user_id = $2;")).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows(rowCols).
			AddRow(3, 7, "Logo", "d", 1, "Design", "asap", "20.00", now, now))
	mock.ExpectQuery(`UPDATE projects`).
		WithArgs(int64(3), int64(7), "Logo", "d", int64(1), "asap", "25.50").
		WillReturnRows(sqlmock.NewRows(rowCols).
			AddRow(3, 7, "Logo", "d", 1, "Design", "asap", "25.50", now, now))

	rr := do(r, http.MethodPut, "/api/v1/projects/3", `{"price":"25.50"}`, "employer")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Project updated successfully!")

	mock.ExpectQuery(regexp.QuoteMeta("AND p.id = $1 AND p.user_id = $2;")).
		WithArgs(int64(3), int64(8)).
		WillReturnError(sql.ErrNoRows)
	rr = do(r, http.MethodPut, "/api/v1/projects/3", `{"price":"1"}`, "freelancer")
	assert.Equal(t, http.StatusNotFound, rr.Code, "someone else's project is not visible")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_BlankText(t *testing.T) {
	r, mock := setup(t)

	for _, body := range []string{`{"description":""}`, `{"description":"   "}`, `{"name":" "}`, `{"deadline":""}`} {
		rr := do(r, http.MethodPut, "/api/v1/projects/3", body, "employer")
		require.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Contains(t, rr.Body.String(), "This field may not be blank.", body)
	}

	rr := do(r, http.MethodPost, "/api/v1/projects",
		`{"name":"Logo","description":" ","category":1,"deadline":"soon","price":"5"}`, "employer")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"description"`)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	r, mock := setup(t)

	rr := do(r, http.MethodDelete, "/api/v1/projects/3", "", "freelancer")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	mock.ExpectExec(`SET deleted_at = now\(\)`).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/v1/projects/3", "", "employer").Code)

	mock.ExpectExec(`SET deleted_at = now\(\)`).
		WithArgs(int64(7), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/v1/projects/4", "", "employer").Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/v1/projects/"+strconv.Itoa(-1), "", "employer").Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
