// Package api exposes amenity lookups, dataset refreshes, health and metrics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/kiez/internal/catalog"
	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/UnknownOlympus/kiez/internal/ranker"
	"github.com/UnknownOlympus/kiez/internal/service"
	"github.com/gorilla/mux"
)

// Finder answers nearest amenity lookups.
type Finder interface {
	Nearest(ctx context.Context, category models.Category, query models.GeoPoint, k int) (service.Answer, error)
}

// Refresher reloads every dataset.
type Refresher interface {
	Refresh(ctx context.Context) (service.Report, error)
}

// SnapshotReader exposes the currently published catalog snapshot.
type SnapshotReader interface {
	Current() *catalog.Snapshot
}

type categoryStatus struct {
	Category   models.Category `json:"category"`
	Loaded     bool            `json:"loaded"`
	Candidates int             `json:"candidates"`
	Source     string          `json:"source,omitempty"`
	FetchedAt  *time.Time      `json:"fetched_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the HTTP API.
type Handler struct {
	log          *slog.Logger
	finder       Finder
	refresher    Refresher
	store        SnapshotReader
	defaultLimit int
}

func NewHandler(log *slog.Logger, finder Finder, refresher Refresher, store SnapshotReader, defaultLimit int) *Handler {
	return &Handler{
		log:          log,
		finder:       finder,
		refresher:    refresher,
		store:        store,
		defaultLimit: defaultLimit,
	}
}

// HandleCategories lists every category with the state of its dataset.
func (h *Handler) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	snapshot := h.store.Current()

	statuses := make([]categoryStatus, 0, len(models.Categories()))
	for _, category := range models.Categories() {
		status := categoryStatus{Category: category}
		if ds, ok := snapshot.Dataset(category); ok {
			fetchedAt := ds.FetchedAt
			status.Loaded = true
			status.Candidates = len(ds.Candidates)
			status.Source = ds.Source
			status.FetchedAt = &fetchedAt
		}
		statuses = append(statuses, status)
	}

	h.writeJSON(w, http.StatusOK, statuses)
}

// HandleNearest ranks the candidates of one category against ?lat=&lon=.
func (h *Handler) HandleNearest(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			h.writeError(w, http.StatusBadRequest, errors.New("limit must be an integer"))
			return
		}
	}

	answer, err := h.finder.Nearest(r.Context(), category, query, limit)
	switch {
	case errors.Is(err, service.ErrDatasetNotLoaded):
		h.writeError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, ranker.ErrInvalidQuery), errors.Is(err, ranker.ErrInvalidArgument):
		h.writeError(w, http.StatusBadRequest, err)
	case err != nil:
		h.log.ErrorContext(r.Context(), "Nearest lookup failed", "category", category, "error", err)
		h.writeError(w, http.StatusInternalServerError, err)
	default:
		h.writeJSON(w, http.StatusOK, answer)
	}
}

// HandleRefresh reloads every dataset and reports the outcome per category.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	report, err := h.refresher.Refresh(r.Context())
	switch {
	case errors.Is(err, service.ErrRefreshInProgress):
		h.writeError(w, http.StatusConflict, err)
	case err != nil:
		h.log.WarnContext(r.Context(), "Refresh triggered over HTTP finished with failures", "error", err)
		h.writeJSON(w, http.StatusBadGateway, report)
	default:
		h.writeJSON(w, http.StatusOK, report)
	}
}

// HandleHealth answers OK once every category has been loaded.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Current()

	status, body := http.StatusOK, "OK"
	for _, category := range models.Categories() {
		if !snapshot.Loaded(category) {
			status, body = http.StatusServiceUnavailable, "dataset not loaded: "+string(category)
			break
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func parseQuery(r *http.Request) (models.GeoPoint, error) {
	values := r.URL.Query()

	lat, err := strconv.ParseFloat(values.Get("lat"), 64)
	if err != nil {
		return models.GeoPoint{}, errors.New("lat must be a decimal number")
	}
	lon, err := strconv.ParseFloat(values.Get("lon"), 64)
	if err != nil {
		return models.GeoPoint{}, errors.New("lon must be a decimal number")
	}

	return models.NewGeoPoint(lat, lon), nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
