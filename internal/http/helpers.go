package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cashflowin/internal/core"
)

// parsePeriod extracts year and month from query parameters.
// Falls back to the current period when absent or invalid.
func parsePeriod(query url.Values, now time.Time) core.Period {
	p := core.CurrentPeriod(now)

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			p.Year = y
		}
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			p.Month = time.Month(m)
		}
	}

	return p
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// isHTMX reports whether the request came from an htmx partial swap.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
