package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/dsl"
	"github.com/reoring/flatmap/middleware"
)

type Signup struct {
	Email string `form:"email"`
	Age   int    `form:"age"`
}

func signupMapping() *flatmap.Class[Signup] {
	return dsl.MustBuild(dsl.Struct[Signup](
		dsl.Prop(func(s *Signup) *string { return &s.Email }, dsl.Text(flatmap.Mandatory())),
		dsl.Prop(func(s *Signup) *int { return &s.Age }, dsl.Int[int]()),
	))
}

func echoHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := middleware.ValueFromContext[Signup](r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		require.NoError(t, j.NewEncoder(w).Encode(v))
	})
}

func TestForm_BindsPostBody(t *testing.T) {
	h := middleware.Form[Signup](signupMapping())(echoHandler(t))
	req := httptest.NewRequest(http.MethodPost, "/signup?age=41", strings.NewReader("email=a%40b.c"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got Signup
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, Signup{Email: "a@b.c", Age: 41}, got)
}

func TestForm_RejectsUnboundRequest(t *testing.T) {
	h := middleware.Form[Signup](signupMapping())(echoHandler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup?age=41", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.JSONEq(t, `{"issues":[]}`, rec.Body.String())
}

func TestForm_Optional(t *testing.T) {
	h := middleware.Form[Signup](signupMapping(), middleware.Optional())(echoHandler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestForm_BrokenMappingIsServerError(t *testing.T) {
	broken := flatmap.NewClass[Signup]()
	called := false
	h := middleware.Form[Signup](broken, middleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		called = true
		require.ErrorIs(t, err, flatmap.ErrInvalidMapping)
		middleware.DefaultErrorHandler(w, r, err)
	}))(echoHandler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup?email=x", nil))

	require.True(t, called)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload struct {
		Issues []middleware.IssueJSON `json:"issues"`
	}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Issues)
	require.Equal(t, flatmap.CodeInvalidMapping, payload.Issues[0].Code)
}

func TestForm_MalformedBody(t *testing.T) {
	h := middleware.Form[Signup](signupMapping())(echoHandler(t))
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("email=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), flatmap.CodeParseError)
}
