package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/tokens"
)

func newMiddleware() *Middleware {
	return New(tokens.NewService([]byte("test-secret")))
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"id":   PrincipalID(c),
		"kind": PrincipalKind(c),
	})
}

func doRequest(t *testing.T, h echo.HandlerFunc, prepare func(*http.Request)) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h(c)
}

func TestRequireLogin_MissingToken(t *testing.T) {
	m := newMiddleware()

	_, err := doRequest(t, m.RequireLogin(okHandler), nil)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireLogin_BearerHeader(t *testing.T) {
	m := newMiddleware()
	token, err := m.Tokens.Issue("user-42", models.KindUser)
	require.NoError(t, err)

	var gotID, gotKind string
	h := m.RequireLogin(func(c echo.Context) error {
		gotID = PrincipalID(c)
		gotKind = PrincipalKind(c)
		return c.NoContent(http.StatusOK)
	})

	rec, err := doRequest(t, h, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-42", gotID)
	require.Equal(t, models.KindUser, gotKind)
}

func TestRequireLogin_CookieFallback(t *testing.T) {
	m := newMiddleware()
	token, err := m.Tokens.Issue("user-42", models.KindUser)
	require.NoError(t, err)

	rec, err := doRequest(t, m.RequireLogin(okHandler), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireLogin_BadToken(t *testing.T) {
	m := newMiddleware()

	_, err := doRequest(t, m.RequireLogin(okHandler), func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestCompanyOnly(t *testing.T) {
	m := newMiddleware()

	userToken, err := m.Tokens.Issue("user-1", models.KindUser)
	require.NoError(t, err)
	companyToken, err := m.Tokens.Issue("company-1", models.KindCompany)
	require.NoError(t, err)

	_, err = doRequest(t, m.CompanyOnly(okHandler), func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+userToken)
	})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)

	rec, err := doRequest(t, m.CompanyOnly(okHandler), func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+companyToken)
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}
