package providers

import "errors"

var (
	// ErrQueryFailed indicates the API answered with a ResultadoConsulta other than OK.
	ErrQueryFailed = errors.New("stations query failed")

	// ErrNoStations indicates the API answered OK but the station list was empty.
	ErrNoStations = errors.New("no stations in response")
)
