package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Roma7-7-7/fuel-stations/internal/schedule"
	"github.com/Roma7-7-7/fuel-stations/internal/service"
)

const maxLimit = 1000

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type (
	errorResponse struct {
		Error string `json:"error"`
	}

	scheduleResponse struct {
		Open       schedule.Status `json:"open"`
		AlwaysOpen bool            `json:"always_open"`
		Blocks     []string        `json:"blocks"`
	}

	indexPage struct {
		Filter  service.Filter
		Listing service.Listing
		Error   string
	}
)

func (s *Server) listStations(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	listing, err := s.stations.List(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) getStation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	st, ok, err := s.stations.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "station not found"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) evaluateSchedule(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	parsed := schedule.Parse(text)

	res := scheduleResponse{
		Open:       s.evaluator.IsOpenNow(text),
		AlwaysOpen: parsed.AlwaysOpen,
		Blocks:     make([]string, 0, len(parsed.Blocks)),
	}
	for _, b := range parsed.Blocks {
		res.Blocks = append(res.Blocks, b.String())
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{}
	status := http.StatusOK

	f, err := parseFilter(r)
	if err != nil {
		status = http.StatusBadRequest
		page.Error = err.Error()
	} else {
		if f.Limit == 0 {
			f.Limit = 100
		}
		page.Filter = f
		page.Listing, err = s.stations.List(r.Context(), f)
		switch {
		case errors.Is(err, service.ErrStationsNotAvailable):
			status = http.StatusServiceUnavailable
			page.Error = "Station data has not been downloaded yet, try again in a minute."
		case err != nil:
			s.log.ErrorContext(r.Context(), "failed to list stations", "error", err)
			status = http.StatusInternalServerError
			page.Error = "Failed to load stations."
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, page); err != nil {
		s.log.ErrorContext(r.Context(), "failed to render index", "error", err)
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrStationsNotAvailable) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

var errInvalidLimit = errors.New("limit must be an integer between 0 and 1000")

func parseFilter(r *http.Request) (service.Filter, error) {
	q := r.URL.Query()
	res := service.Filter{
		Province:     q.Get("province"),
		Municipality: q.Get("municipality"),
		Brand:        q.Get("brand"),
	}

	switch strings.ToLower(q.Get("open")) {
	case "1", "true", "yes":
		res.OpenNow = true
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 || limit > maxLimit {
			return res, errInvalidLimit
		}
		res.Limit = limit
	}

	return res, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
