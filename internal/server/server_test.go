package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Roma7-7-7/fuel-stations/internal/dal/testutil"
	"github.com/Roma7-7-7/fuel-stations/internal/schedule"
	"github.com/Roma7-7-7/fuel-stations/internal/server"
	"github.com/Roma7-7-7/fuel-stations/internal/server/mocks"
	"github.com/Roma7-7-7/fuel-stations/internal/service"
	"github.com/Roma7-7-7/fuel-stations/pkg/clock"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func listing() service.Listing {
	return service.Listing{
		SourceDate:  "17/11/2025 10:15:42",
		FetchedAt:   time.Date(2025, time.November, 17, 10, 16, 0, 0, time.UTC),
		EvaluatedAt: clock.At(time.Monday, 10, 0),
		Total:       3,
		Stations: []service.StationView{
			{Station: testutil.NewStation("1").WithBrand("REPSOL").Build(), Open: schedule.Open, Hours: []string{"L-V:07:00-22:00"}},
			{Station: testutil.NewStation("2").WithBrand("").Build(), Open: schedule.Closed},
			{Station: testutil.NewStation("3").WithSchedule("").Build(), Open: schedule.Unknown},
		},
	}
}

func newTestServer(t *testing.T, setup func(*mocks.MockStationsService)) *httptest.Server {
	t.Helper()

	svc := mocks.NewMockStationsService(gomock.NewController(t))
	if setup != nil {
		setup(svc)
	}
	srv := httptest.NewServer(server.New(":0", svc, clock.NewMockAt(time.Monday, 15, 0), discardLog).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestServer_ListStations(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(*mocks.MockStationsService)
		wantStatus int
		wantBody   func(t *testing.T, body []byte)
	}{
		{
			name:  "success_with_filter",
			query: "?province=madrid&brand=rep&open=true&limit=10",
			setup: func(m *mocks.MockStationsService) {
				m.EXPECT().List(gomock.Any(), service.Filter{Province: "madrid", Brand: "rep", OpenNow: true, Limit: 10}).Return(listing(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var got struct {
					Total    int `json:"total"`
					Stations []struct {
						ID   string `json:"id"`
						Open *bool  `json:"open"`
					} `json:"stations"`
				}
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, 3, got.Total)
				require.Len(t, got.Stations, 3)
				if assert.NotNil(t, got.Stations[0].Open) {
					assert.True(t, *got.Stations[0].Open)
				}
				if assert.NotNil(t, got.Stations[1].Open) {
					assert.False(t, *got.Stations[1].Open)
				}
				assert.Nil(t, got.Stations[2].Open)
			},
		},
		{
			name:       "invalid_limit",
			query:      "?limit=abc",
			wantStatus: http.StatusBadRequest,
			wantBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"limit must be an integer between 0 and 1000"}`, string(body))
			},
		},
		{
			name: "not_available",
			setup: func(m *mocks.MockStationsService) {
				m.EXPECT().List(gomock.Any(), service.Filter{}).Return(service.Listing{}, service.ErrStationsNotAvailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "internal_error",
			setup: func(m *mocks.MockStationsService) {
				m.EXPECT().List(gomock.Any(), service.Filter{}).Return(service.Listing{}, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"internal error"}`, string(body))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.setup)
			resp, body := get(t, srv, "/api/stations"+tt.query)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			if tt.wantBody != nil {
				tt.wantBody(t, body)
			}
		})
	}
}

func TestServer_GetStation(t *testing.T) {
	srv := newTestServer(t, func(m *mocks.MockStationsService) {
		m.EXPECT().Get(gomock.Any(), "4375").Return(listing().Stations[0], true, nil)
		m.EXPECT().Get(gomock.Any(), "404").Return(service.StationView{}, false, nil)
	})

	resp, body := get(t, srv, "/api/stations/4375")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "1", got["id"])
	assert.Equal(t, "REPSOL", got["brand"])
	assert.Equal(t, true, got["open"])
	assert.Equal(t, []any{"L-V:07:00-22:00"}, got["hours"])

	resp, _ = get(t, srv, "/api/stations/404")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_EvaluateSchedule(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		text string
		want string
	}{
		{text: "", want: `{"open":null,"always_open":false,"blocks":[]}`},
		{text: "L-D: 24h", want: `{"open":true,"always_open":true,"blocks":[]}`},
		{text: "L:08:00-14:00;L:16:00-20:00", want: `{"open":false,"always_open":false,"blocks":["L:08:00-14:00","L:16:00-20:00"]}`},
		{text: "L-V: 07:00-22:00", want: `{"open":true,"always_open":false,"blocks":["L-V:07:00-22:00"]}`},
		{text: "XYZ garbage text", want: `{"open":false,"always_open":false,"blocks":[]}`},
		{text: "L:08:00-25:00", want: `{"open":true,"always_open":false,"blocks":["L:08:00-25:00"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			resp, body := get(t, srv, "/api/schedule?text="+url.QueryEscape(tt.text))
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}

func TestServer_Index(t *testing.T) {
	srv := newTestServer(t, func(m *mocks.MockStationsService) {
		m.EXPECT().List(gomock.Any(), service.Filter{Municipality: "Madrid", Limit: 100}).Return(listing(), nil)
	})

	resp, body := get(t, srv, "/?municipality=Madrid")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)

	assert.Equal(t, "Madrid", doc.Find("input[name=municipality]").AttrOr("value", ""))
	assert.Contains(t, doc.Find("#summary").Text(), "3 estaciones")

	rows := doc.Find("#stations tbody tr")
	require.Equal(t, 3, rows.Length())

	var ids, statuses, brands []string
	rows.Each(func(_ int, row *goquery.Selection) {
		ids = append(ids, row.AttrOr("data-id", ""))
		statuses = append(statuses, row.Find("td.status").AttrOr("data-status", ""))
		brands = append(brands, strings.TrimSpace(row.Find("td.brand").Text()))
	})
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.Equal(t, []string{"open", "closed", "unknown"}, statuses)
	assert.Equal(t, []string{"REPSOL", "-", "REPSOL"}, brands)
}

func TestServer_Index_NotAvailable(t *testing.T) {
	srv := newTestServer(t, func(m *mocks.MockStationsService) {
		m.EXPECT().List(gomock.Any(), gomock.Any()).Return(service.Listing{}, service.ErrStationsNotAvailable)
	})

	resp, body := get(t, srv, "/")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	assert.Contains(t, doc.Find("p.error").Text(), "has not been downloaded yet")
	assert.Equal(t, 0, doc.Find("#stations").Length())
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `http_request_duration_seconds_count{code="200",route="/healthz"}`)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := srv.Client().Post(srv.URL+"/api/stations", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	_, body := get(t, srv, "/metrics")
	assert.Contains(t, string(body), `http_request_duration_seconds_count{code="405",route="unmatched"}`)
}

func TestServer_NotFoundObserved(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := get(t, srv, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, srv, "/api/nothing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body := get(t, srv, "/metrics")
	assert.Contains(t, string(body), `http_request_duration_seconds_count{code="404",route="unmatched"}`)
}
