package activities_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tron2005/markvera/internal/fitness/activities"
	"github.com/tron2005/markvera/internal/importer"
	"github.com/tron2005/markvera/internal/trainingload"
)

var start = time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC)

func newHandler(t *testing.T) (*activities.Handler, *Mockservice) {
	ctrl := gomock.NewController(t)
	mockService := NewMockservice(ctrl)
	return activities.NewHandler(mockService, time.UTC, 1<<20), mockService
}

func TestHandler_HandleList(t *testing.T) {
	h, mockService := newHandler(t)

	req, err := http.NewRequest("GET", "/fitness/user-1/activities?from=2024-03-04&to=2024-03-10", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1"})

	mockService.EXPECT().
		ListSessions(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, rng activities.Range) ([]trainingload.Session, error) {
			require.NotNil(t, rng.From)
			require.NotNil(t, rng.To)
			assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), *rng.From)
			return []trainingload.Session{{
				ID:              "manual:1",
				Source:          trainingload.SourceManual,
				SourceID:        "1",
				Start:           start,
				DurationSeconds: 3600,
				Sport:           trainingload.SportRun,
			}}, nil
		})

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleList).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var sessions []trainingload.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "manual:1", sessions[0].ID)
	assert.Equal(t, trainingload.SportRun, sessions[0].Sport)
}

func TestHandler_HandleList_InvalidRange(t *testing.T) {
	h, _ := newHandler(t)

	req, err := http.NewRequest("GET", "/fitness/user-1/activities?from=yesterday", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleList).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleAddManual(t *testing.T) {
	h, mockService := newHandler(t)

	entry := activities.ManualEntry{
		Sport:           "BodyCombat",
		Start:           start,
		DurationSeconds: 3300,
		AvgHeartRate:    trainingload.Float(150),
	}
	entryJson, err := json.Marshal(entry)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/fitness/user-1/activities", bytes.NewBuffer(entryJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1"})

	mockService.EXPECT().
		AddManual(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, e activities.ManualEntry) (activities.ManualEntry, error) {
			assert.Equal(t, "BodyCombat", e.Sport)
			assert.Equal(t, 3300.0, e.DurationSeconds)
			e.ID = "12"
			return e, nil
		})

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleAddManual).ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var added activities.ManualEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Equal(t, "12", added.ID)
	assert.True(t, start.Equal(added.Start))
}

func TestHandler_HandleAddManual_BadRequests(t *testing.T) {
	h, mockService := newHandler(t)

	req, err := http.NewRequest("POST", "/fitness/user-1/activities", strings.NewReader("{}"))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleAddManual).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req, err = http.NewRequest("POST", "/fitness/user-1/activities", strings.NewReader("{not json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.HandleAddManual).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	mockService.EXPECT().
		AddManual(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(activities.ManualEntry{}, activities.ErrInvalidActivity)
	req, err = http.NewRequest("POST", "/fitness/user-1/activities", strings.NewReader(`{"sport":"run"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.HandleAddManual).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleDeleteManual(t *testing.T) {
	h, mockService := newHandler(t)

	mockService.EXPECT().DeleteManual(gomock.Any(), "user-1", "12").Return(nil)
	mockService.EXPECT().DeleteManual(gomock.Any(), "user-1", "13").Return(activities.ErrActivityNotFound)

	req, err := http.NewRequest("DELETE", "/fitness/user-1/activities/12", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1", "id": "12"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleDeleteManual).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp activities.DeleteActivityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "12", resp.DeletedID)

	req, err = http.NewRequest("DELETE", "/fitness/user-1/activities/13", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1", "id": "13"})
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.HandleDeleteManual).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func multipartUpload(t *testing.T, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "morning-ride.fit")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", "/fitness/user-1/activities/fit", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return mux.SetURLVars(req, map[string]string{"userId": "user-1"})
}

func TestHandler_HandleImportFIT(t *testing.T) {
	h, mockService := newHandler(t)

	mockService.EXPECT().
		ImportFIT(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r io.Reader) (trainingload.Session, error) {
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "fit bytes", string(content))
			return trainingload.Session{ID: "fit:abc", Source: trainingload.SourceFIT, SourceID: "abc"}, nil
		})

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleImportFIT).ServeHTTP(rr, multipartUpload(t, []byte("fit bytes")))
	require.Equal(t, http.StatusCreated, rr.Code)

	var session trainingload.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	assert.Equal(t, "fit:abc", session.ID)
}

func TestHandler_HandleImportFIT_Errors(t *testing.T) {
	h, mockService := newHandler(t)

	mockService.EXPECT().
		ImportFIT(gomock.Any(), "user-1", gomock.Any()).
		Return(trainingload.Session{}, activities.ErrDuplicateActivity)
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleImportFIT).ServeHTTP(rr, multipartUpload(t, []byte("fit bytes")))
	assert.Equal(t, http.StatusConflict, rr.Code)

	mockService.EXPECT().
		ImportFIT(gomock.Any(), "user-1", gomock.Any()).
		Return(trainingload.Session{}, importer.ErrNoSession)
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.HandleImportFIT).ServeHTTP(rr, multipartUpload(t, []byte("fit bytes")))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	// not a multipart request
	req, err := http.NewRequest("POST", "/fitness/user-1/activities/fit", strings.NewReader("raw"))
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.HandleImportFIT).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Profile(t *testing.T) {
	h, mockService := newHandler(t)

	mockService.EXPECT().GetProfile(gomock.Any(), "nobody").Return(trainingload.Profile{}, activities.ErrProfileNotFound)
	req, err := http.NewRequest("GET", "/fitness/nobody/profile", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"userId": "nobody"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleGetProfile).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	mockService.EXPECT().
		PutProfile(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p trainingload.Profile) (trainingload.Profile, error) {
			assert.Equal(t, trainingload.SexFemale, p.Sex)
			require.NotNil(t, p.MaxHR)
			assert.Equal(t, 185.0, *p.MaxHR)
			p.Version = 1700000000000
			return p, nil
		})
	req, err = http.NewRequest("PUT", "/fitness/user-1/profile", strings.NewReader(`{"maxHr":185,"sex":"Žena"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1"})
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.HandlePutProfile).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var stored trainingload.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stored))
	assert.EqualValues(t, 1700000000000, stored.Version)
}

func TestHandler_HandleAddRestingHR(t *testing.T) {
	h, mockService := newHandler(t)

	mockService.EXPECT().AddRestingHR(gomock.Any(), "user-1", trainingload.NewDate(2024, 3, 4), 48.0).Return(nil)

	req, err := http.NewRequest("POST", "/fitness/user-1/resting-hr", strings.NewReader(`{"date":"2024-03-04","heartRate":48}`))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"userId": "user-1"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleAddRestingHR).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
