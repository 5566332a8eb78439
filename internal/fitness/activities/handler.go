package activities

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tron2005/markvera/internal/importer"
	"github.com/tron2005/markvera/internal/telemetry/tracing"
	"github.com/tron2005/markvera/internal/trainingload"
	"github.com/tron2005/markvera/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=activities_test

type service interface {
	ListSessions(ctx context.Context, userID string, rng Range) ([]trainingload.Session, error)
	AddManual(ctx context.Context, userID string, entry ManualEntry) (ManualEntry, error)
	DeleteManual(ctx context.Context, userID, id string) error
	ImportFIT(ctx context.Context, userID string, r io.Reader) (trainingload.Session, error)
	GetProfile(ctx context.Context, userID string) (trainingload.Profile, error)
	PutProfile(ctx context.Context, userID string, profile trainingload.Profile) (trainingload.Profile, error)
	AddRestingHR(ctx context.Context, userID string, date trainingload.Date, heartRate float64) error
}

type DeleteActivityResponse struct {
	DeletedID string `json:"deletedId"`
}

type RestingHRRequest struct {
	Date      trainingload.Date `json:"date"`
	HeartRate float64           `json:"heartRate"`
}

type Handler struct {
	service       service
	location      *time.Location
	maxUploadSize int64
}

func NewHandler(service service, location *time.Location, maxUploadSize int64) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:       service,
		location:      location,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	rng, err := ParseRange(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessions, err := h.service.ListSessions(ctx, userID, rng)
	if err != nil {
		log.Errorf("list activities of %s: %s", userID, err)
		http.Error(w, "failed to list activities", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, sessions, http.StatusOK)
}

func (h *Handler) HandleAddManual(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.manual.add")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["userId"]
	var entry ManualEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("add manual activity, unmarshal json params: %s", err)
		http.Error(w, "add activity failed", http.StatusBadRequest)
		return
	}

	added, err := h.service.AddManual(ctx, userID, entry)
	if errors.Is(err, ErrInvalidActivity) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("add manual activity for %s: %s", userID, err)
		http.Error(w, "add activity failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("manual activity %s added for %s", added.ID, userID)
	h.writeJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleDeleteManual(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.manual.delete")
	defer span.End()

	vars := mux.Vars(r)
	userID, id := vars["userId"], vars["id"]
	if id == "" {
		http.Error(w, "error, activity id empty", http.StatusBadRequest)
		return
	}

	err := h.service.DeleteManual(ctx, userID, id)
	if errors.Is(err, ErrActivityNotFound) {
		http.Error(w, "activity not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete activity %s of %s: %s", id, userID, err)
		http.Error(w, "delete activity failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, DeleteActivityResponse{DeletedID: id}, http.StatusOK)
}

func (h *Handler) HandleImportFIT(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.fit.import")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	maxMemory := h.maxUploadSize
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		log.Errorf("import fit, parse multipart form: %s", err)
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	log.Debugf("importing fit file %s (%d bytes) for %s", fileHeader.Filename, fileHeader.Size, userID)

	session, err := h.service.ImportFIT(ctx, userID, file)
	switch {
	case errors.Is(err, ErrDuplicateActivity):
		http.Error(w, "file already imported", http.StatusConflict)
		return
	case errors.Is(err, importer.ErrNoSession), errors.Is(err, importer.ErrNotActivity), errors.Is(err, importer.ErrEmptyFile):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		log.Errorf("import fit file %s for %s: %s", fileHeader.Filename, userID, err)
		http.Error(w, "failed to import fit file", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.profile.get")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	profile, err := h.service.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get profile of %s: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, profile, http.StatusOK)
}

func (h *Handler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.profile.put")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["userId"]
	var profile trainingload.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("put profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}
	profile.Sex = trainingload.ParseSex(string(profile.Sex))

	stored, err := h.service.PutProfile(ctx, userID, profile)
	if err != nil {
		log.Errorf("put profile of %s: %s", userID, err)
		http.Error(w, "failed to store profile", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, stored, http.StatusOK)
}

func (h *Handler) HandleAddRestingHR(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.restinghr.add")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	var req RestingHRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid resting heart rate", http.StatusBadRequest)
		return
	}

	err := h.service.AddRestingHR(ctx, userID, req.Date, req.HeartRate)
	if errors.Is(err, ErrInvalidActivity) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("add resting heart rate of %s: %s", userID, err)
		http.Error(w, "failed to store resting heart rate", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any, status int) {
	resp, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, status)
}
