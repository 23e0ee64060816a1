package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    int
		wantErr string
	}{
		{"absent uses default", "/", 20, ""},
		{"number", "/?limit=50", 50, ""},
		{"negative passes through", "/?limit=-5", -5, ""},
		{"not a number", "/?limit=abc", 0, "invalid limit"},
		{"decimal", "/?limit=2.5", 0, "invalid limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(tt.target)
			got, err := queryInt(c, "limit", 20)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			assert.Equal(t, tt.wantErr, he.Message)
		})
	}
}

func TestWriteError(t *testing.T) {
	c, rec := newContext("/")
	require.NoError(t, writeError(c, usecase.NewHTTPError(http.StatusConflict, "isbn already exists")))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"isbn already exists"}`, rec.Body.String())

	// 想定外のエラーは中身を出さない
	c, rec = newContext("/")
	require.NoError(t, writeError(c, errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
