package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Roma7-7-7/fuel-stations/internal/dal"
)

const (
	resultOK         = "OK"
	pricePrefix      = "Precio "
	fallbackIDPrefix = "idx-"
)

type (
	MineturProvider struct {
		baseURL  string
		loadPage func(context.Context, string) ([]byte, error)
		now      func() time.Time
		log      *slog.Logger
	}

	mineturResponse struct {
		Fecha             string           `json:"Fecha"`
		ListaEESSPrecio   []map[string]any `json:"ListaEESSPrecio"`
		Nota              string           `json:"Nota"`
		ResultadoConsulta string           `json:"ResultadoConsulta"`
	}
)

func NewMineturProvider(baseURL string, client *http.Client, log *slog.Logger) *MineturProvider {
	return &MineturProvider{
		baseURL: baseURL,
		loadPage: func(ctx context.Context, url string) ([]byte, error) {
			return loadPage(ctx, client, url)
		},
		now: time.Now,
		log: log.With("component", "provider").With("provider", "minetur"),
	}
}

// Stations fetches every land station with its current prices and schedule text.
func (p *MineturProvider) Stations(ctx context.Context) (dal.Snapshot, error) {
	body, err := p.loadPage(ctx, p.baseURL)
	if err != nil {
		return dal.Snapshot{}, fmt.Errorf("load stations: %w", err)
	}

	var resp mineturResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return dal.Snapshot{}, fmt.Errorf("parse stations: %w", err)
	}
	p.log.DebugContext(ctx, "stations response decoded",
		"result", resp.ResultadoConsulta, "date", resp.Fecha, "count", len(resp.ListaEESSPrecio))

	if resp.ResultadoConsulta != "" && resp.ResultadoConsulta != resultOK {
		return dal.Snapshot{}, fmt.Errorf("%w: result=%s", ErrQueryFailed, resp.ResultadoConsulta)
	}
	if len(resp.ListaEESSPrecio) == 0 {
		return dal.Snapshot{}, ErrNoStations
	}

	res := dal.Snapshot{
		SourceDate: resp.Fecha,
		FetchedAt:  p.now(),
		Stations:   make([]dal.Station, 0, len(resp.ListaEESSPrecio)),
	}
	for i, raw := range resp.ListaEESSPrecio {
		res.Stations = append(res.Stations, normalizeStation(raw, i))
	}

	return res, nil
}

// normalizeStation maps one raw API record. Keys are looked up with and without accents
// because the API has served both spellings.
func normalizeStation(raw map[string]any, idx int) dal.Station {
	id := field(raw, "IDEESS")
	if id == "" {
		// Prefixed so it can never match a real IDEESS, which is always numeric.
		id = fallbackIDPrefix + strconv.Itoa(idx)
	}

	res := dal.Station{
		ID:           id,
		Brand:        strings.TrimSpace(field(raw, "Rótulo", "Rotulo")),
		Address:      strings.TrimSpace(field(raw, "Dirección", "Direccion") + " " + field(raw, "Localidad")),
		Municipality: field(raw, "Municipio"),
		Province:     field(raw, "Provincia"),
		PostalCode:   field(raw, "C.P."),
		Schedule:     field(raw, "Horario"),
		Lat:          coordinate(field(raw, "Latitud")),
		Lon:          coordinate(field(raw, "Longitud (WGS84)", "Longitud")),
	}

	for k := range raw {
		if !strings.HasPrefix(k, pricePrefix) {
			continue
		}
		price, ok := decimal(field(raw, k))
		if !ok {
			continue
		}
		if res.Prices == nil {
			res.Prices = make(map[string]float64)
		}
		res.Prices[strings.TrimPrefix(k, pricePrefix)] = price
	}

	return res
}

func field(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}

// decimal parses Spanish formatted numbers such as "1,579".
func decimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// coordinate treats zero like a missing value, a station at 0,0 is a data entry error.
func coordinate(s string) *float64 {
	v, ok := decimal(s)
	if !ok || v == 0 {
		return nil
	}
	return &v
}

func loadPage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get stations from url=%s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get stations from url=%s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get stations from url=%s: status=%s", url, resp.Status)
	}

	var res bytes.Buffer
	if _, err = res.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read stations from url=%s: %w", url, err)
	}

	return res.Bytes(), nil
}
