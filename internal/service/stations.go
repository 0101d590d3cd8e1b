package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Roma7-7-7/fuel-stations/internal/dal"
	"github.com/Roma7-7-7/fuel-stations/internal/schedule"
)

//go:generate mockgen -package mocks -destination mocks/stations.go . StationsStore,StationsProvider

var ErrStationsNotAvailable = errors.New("stations not available")

var refreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "stations_refresh_total",
	Help: "Number of station refreshes by result",
}, []string{"result"})

var stationsCount = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "stations_count",
	Help: "Number of stations in the last stored snapshot",
})

func init() {
	prometheus.MustRegister(refreshTotal, stationsCount)
}

type (
	StationsStore interface {
		GetSnapshot() (dal.Snapshot, bool, error)
		GetStation(id string) (dal.Station, bool, error)
		PutSnapshot(s dal.Snapshot) error
	}

	StationsProvider interface {
		Stations(ctx context.Context) (dal.Snapshot, error)
	}

	// StationView is a station as served to clients, with its schedule evaluated.
	StationView struct {
		dal.Station
		Open  schedule.Status `json:"open"`
		Hours []string        `json:"hours,omitempty"`
	}

	Filter struct {
		Province     string
		Municipality string
		Brand        string
		OpenNow      bool
		Limit        int
	}

	Listing struct {
		SourceDate  string        `json:"source_date"`
		FetchedAt   time.Time     `json:"fetched_at"`
		EvaluatedAt time.Time     `json:"evaluated_at"`
		Total       int           `json:"total"`
		Stations    []StationView `json:"stations"`
	}

	Stations struct {
		store    StationsStore
		provider StationsProvider
		clock    Clock

		fetchTimeout time.Duration
		log          *slog.Logger
		mx           *sync.Mutex
	}
)

func NewStations(store StationsStore, provider StationsProvider, clock Clock, fetchTimeout time.Duration, log *slog.Logger) *Stations {
	return &Stations{
		store:        store,
		provider:     provider,
		clock:        clock,
		fetchTimeout: fetchTimeout,
		log:          log.With("component", "service").With("service", "stations"),
		mx:           &sync.Mutex{},
	}
}

// Refresh downloads the current station list and replaces the stored snapshot.
func (s *Stations) Refresh(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.log.InfoContext(ctx, "refreshing stations")

	ctx, cancelFunc := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancelFunc()

	snap, err := s.provider.Stations(ctx)
	if err != nil {
		refreshTotal.WithLabelValues("fetch_error").Inc()
		return fmt.Errorf("get stations: %w", err)
	}

	if err = s.store.PutSnapshot(snap); err != nil {
		refreshTotal.WithLabelValues("store_error").Inc()
		return fmt.Errorf("put stations snapshot: %w", err)
	}

	refreshTotal.WithLabelValues("success").Inc()
	stationsCount.Set(float64(len(snap.Stations)))
	s.log.InfoContext(ctx, "refreshed stations", "count", len(snap.Stations), "source_date", snap.SourceDate)

	return nil
}

// List returns the stations matching f, each evaluated against the current time.
// Total counts all matches before Limit is applied.
func (s *Stations) List(ctx context.Context, f Filter) (Listing, error) {
	snap, ok, err := s.store.GetSnapshot()
	if err != nil {
		return Listing{}, fmt.Errorf("get stations snapshot: %w", err)
	}
	if !ok {
		return Listing{}, ErrStationsNotAvailable
	}

	now := s.clock.Now()
	province := fold(f.Province)
	municipality := fold(f.Municipality)
	brand := fold(f.Brand)

	res := Listing{
		SourceDate:  snap.SourceDate,
		FetchedAt:   snap.FetchedAt,
		EvaluatedAt: now,
		Stations:    make([]StationView, 0),
	}
	for _, st := range snap.Stations {
		if province != "" && fold(st.Province) != province {
			continue
		}
		if municipality != "" && fold(st.Municipality) != municipality {
			continue
		}
		if brand != "" && !strings.Contains(fold(st.Brand), brand) {
			continue
		}

		view := newStationView(st, now)
		if f.OpenNow && view.Open != schedule.Open {
			continue
		}

		res.Total++
		if f.Limit > 0 && len(res.Stations) >= f.Limit {
			continue
		}
		res.Stations = append(res.Stations, view)
	}

	s.log.DebugContext(ctx, "listed stations", "total", res.Total, "returned", len(res.Stations))
	return res, nil
}

func (s *Stations) Get(_ context.Context, id string) (StationView, bool, error) {
	st, ok, err := s.store.GetStation(id)
	if err != nil {
		return StationView{}, false, fmt.Errorf("get station id=%s: %w", id, err)
	}
	if !ok {
		return StationView{}, false, nil
	}
	return newStationView(st, s.clock.Now()), true, nil
}

func newStationView(st dal.Station, now time.Time) StationView {
	res := StationView{
		Station: st,
		Open:    schedule.IsOpenNow(st.Schedule, now),
	}

	parsed := schedule.Parse(st.Schedule)
	if parsed.AlwaysOpen {
		res.Hours = []string{"24H"}
		return res
	}
	for _, b := range parsed.Blocks {
		res.Hours = append(res.Hours, b.String())
	}
	return res
}

// fold normalizes names for comparison: "Cádiz", "CADIZ" and " cadiz " are equal.
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, s)
	if err != nil {
		res = s
	}
	return strings.ToUpper(res)
}
