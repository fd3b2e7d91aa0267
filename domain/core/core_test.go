package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_UniqueAndNonEmpty(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.False(t, a.IsEmpty())
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), 36)
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Time().Equal(decoded.Time()))
	assert.False(t, decoded.IsZero())
}
