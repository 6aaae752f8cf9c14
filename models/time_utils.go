package models

// DefaultSessionBars is the minimum trailing window a setup is computed on
const DefaultSessionBars = 96

// BarsPerDay returns how many bars of the given interval fit in 24 hours
func BarsPerDay(interval string) int {
	switch interval {
	case "1m":
		return 24 * 60
	case "5m":
		return 24 * 12
	case "15m":
		return 24 * 4
	case "30m":
		return 24 * 2
	case "1h", "60m":
		return 24
	case "4h":
		return 6
	case "1d":
		return 1
	}
	return 0
}

// BarsPerSession returns the window used by the session analyzer for an interval.
// It covers one day of bars but never drops below DefaultSessionBars.
func BarsPerSession(interval string) int {
	n := BarsPerDay(interval)
	if n < DefaultSessionBars {
		return DefaultSessionBars
	}
	return n
}

// IntervalSeconds returns the length of one bar in seconds, or 0 for unknown intervals
func IntervalSeconds(interval string) int64 {
	n := BarsPerDay(interval)
	if n == 0 {
		return 0
	}
	return int64(24 * 60 * 60 / n)
}
