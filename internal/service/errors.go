package service

import "errors"

var (
	// ErrSourceDisabled is returned when live data is requested in mock mode
	ErrSourceDisabled = errors.New("live data source disabled")
	// ErrNoData marks a live source that answered without bars
	ErrNoData = errors.New("no data available")
)
