package handler

import (
	"encoding/json"
	"hydration/internal/application/dto"
	"hydration/internal/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc *fakeReminderService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewSettingsHandler(svc, logger.Discard())
	e := echo.New()
	e.GET("/api/hydration", h.GetSettings)
	e.PUT("/api/hydration/enabled", h.SetEnabled)
	e.PUT("/api/hydration/interval", h.SetInterval)
	e.POST("/api/hydration/test", h.SendTest)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.PreferenceResponse {
	t.Helper()
	var resp dto.PreferenceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	svc := newFakeReminderService()
	rec := serve(t, svc, http.MethodGet, "/api/hydration", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Enabled)
	assert.Equal(t, 7200, resp.IntervalSeconds)
	assert.Equal(t, "enabled", resp.State)
	assert.Contains(t, resp.AllowedIntervals, 5400)
	require.Len(t, resp.Scheduled, 1)
	assert.Equal(t, "repeating", resp.Scheduled[0].Trigger)
}

func TestSettingsHandler_GetSettingsBackendDown(t *testing.T) {
	svc := newFakeReminderService()
	svc.failList = true
	rec := serve(t, svc, http.MethodGet, "/api/hydration", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSettingsHandler_SetEnabled(t *testing.T) {
	svc := newFakeReminderService()
	rec := serve(t, svc, http.MethodPut, "/api/hydration/enabled", `{"enabled":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Enabled)
	assert.Empty(t, resp.Scheduled)
	assert.Equal(t, []string{"SetEnabled"}, svc.calls)
}

func TestSettingsHandler_SetEnabledRequiresField(t *testing.T) {
	svc := newFakeReminderService()
	rec := serve(t, svc, http.MethodPut, "/api/hydration/enabled", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestSettingsHandler_SetInterval(t *testing.T) {
	svc := newFakeReminderService()
	rec := serve(t, svc, http.MethodPut, "/api/hydration/interval", `{"interval_seconds":3600}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3600, decode(t, rec).IntervalSeconds)
}

func TestSettingsHandler_SetIntervalRejectsNonPositive(t *testing.T) {
	svc := newFakeReminderService()
	rec := serve(t, svc, http.MethodPut, "/api/hydration/interval", `{"interval_seconds":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestSettingsHandler_FailureIsBadGateway(t *testing.T) {
	svc := newFakeReminderService()
	svc.fail = true

	rec := serve(t, svc, http.MethodPut, "/api/hydration/interval", `{"interval_seconds":3600}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = serve(t, svc, http.MethodPost, "/api/hydration/test", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSettingsHandler_SendTest(t *testing.T) {
	svc := newFakeReminderService()
	rec := serve(t, svc, http.MethodPost, "/api/hydration/test", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"SendTestNow"}, svc.calls)
}
