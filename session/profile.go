package session

import "time"

// ProfileDurations maps access profile names to how long a grant stays valid.
// Unknown profiles fall back to the configured default.
type ProfileDurations struct {
	durations map[string]time.Duration
	fallback  time.Duration
}

func NewProfileDurations(fallback time.Duration) *ProfileDurations {
	return &ProfileDurations{
		durations: map[string]time.Duration{
			"1hr":   time.Hour,
			"3hr":   3 * time.Hour,
			"12hr":  12 * time.Hour,
			"1day":  24 * time.Hour,
			"1week": 7 * 24 * time.Hour,
		},
		fallback: fallback,
	}
}

func (p *ProfileDurations) Duration(profile string) time.Duration {
	if d, ok := p.durations[profile]; ok {
		return d
	}
	return p.fallback
}
