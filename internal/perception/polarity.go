// Package perception adapts external sentiment services to emotion.PolarityProvider.
package perception

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnavailable means the service is not configured or refused the request.
	ErrUnavailable = errors.New("sentiment service unavailable")
	// ErrRateLimited means the local limiter or the remote service throttled us.
	ErrRateLimited = errors.New("sentiment service rate limited")
)

type polarityPayload struct {
	Polarity *float64 `json:"polarity"`
}

// parsePolarity extracts {"polarity": x} from a service body, tolerating
// markdown code fences, and clamps x into [-1, 1].
func parsePolarity(raw string) (float64, error) {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)

	var p polarityPayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return 0, fmt.Errorf("failed to parse polarity response: %w", err)
	}
	if p.Polarity == nil {
		return 0, fmt.Errorf("polarity missing from response")
	}
	return clamp(*p.Polarity), nil
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
