package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfileDurations(t *testing.T) {
	profiles := NewProfileDurations(30 * time.Minute)

	assert.Equal(t, time.Hour, profiles.Duration("1hr"))
	assert.Equal(t, 24*time.Hour, profiles.Duration("1day"))
	assert.Equal(t, 7*24*time.Hour, profiles.Duration("1week"))
	assert.Equal(t, 30*time.Minute, profiles.Duration("no-such-profile"))
}
