package testutil

import (
	"time"

	"github.com/Roma7-7-7/fuel-stations/internal/dal"
)

// StationBuilder provides fluent API for building test stations
type StationBuilder struct {
	station dal.Station
}

// NewStation creates a station in Madrid open on weekdays
func NewStation(id string) *StationBuilder {
	lat, lon := 40.416775, -3.703790
	return &StationBuilder{
		station: dal.Station{
			ID:           id,
			Brand:        "REPSOL",
			Address:      "CALLE MAYOR, 1 MADRID",
			Municipality: "Madrid",
			Province:     "MADRID",
			PostalCode:   "28013",
			Schedule:     "L-V: 07:00-22:00",
			Lat:          &lat,
			Lon:          &lon,
			Prices:       map[string]float64{"Gasolina 95 E5": 1.579},
		},
	}
}

func (b *StationBuilder) WithBrand(brand string) *StationBuilder {
	b.station.Brand = brand
	return b
}

func (b *StationBuilder) WithLocation(municipality, province string) *StationBuilder {
	b.station.Municipality = municipality
	b.station.Province = province
	return b
}

func (b *StationBuilder) WithSchedule(schedule string) *StationBuilder {
	b.station.Schedule = schedule
	return b
}

func (b *StationBuilder) WithoutCoordinates() *StationBuilder {
	b.station.Lat = nil
	b.station.Lon = nil
	return b
}

func (b *StationBuilder) WithPrice(fuel string, price float64) *StationBuilder {
	if b.station.Prices == nil {
		b.station.Prices = make(map[string]float64)
	}
	b.station.Prices[fuel] = price
	return b
}

func (b *StationBuilder) Build() dal.Station {
	return b.station
}

// SnapshotBuilder provides fluent API for building test snapshots
type SnapshotBuilder struct {
	snapshot dal.Snapshot
}

func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{
		snapshot: dal.Snapshot{
			SourceDate: "17/11/2025 10:15:42",
			FetchedAt:  time.Date(2025, time.November, 17, 10, 16, 0, 0, time.UTC),
			Stations:   []dal.Station{},
		},
	}
}

func (b *SnapshotBuilder) WithFetchedAt(t time.Time) *SnapshotBuilder {
	b.snapshot.FetchedAt = t
	return b
}

func (b *SnapshotBuilder) WithSourceDate(date string) *SnapshotBuilder {
	b.snapshot.SourceDate = date
	return b
}

func (b *SnapshotBuilder) WithStations(stations ...dal.Station) *SnapshotBuilder {
	b.snapshot.Stations = append(b.snapshot.Stations, stations...)
	return b
}

func (b *SnapshotBuilder) Build() dal.Snapshot {
	return b.snapshot
}
