package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var req struct {
		TurnoID   FlexString `json:"turnoId"`
		Timestamp FlexString `json:"timestamp"`
	}

	// Clients send ids and timestamps as either JSON strings or numbers.
	err := json.Unmarshal([]byte(`{"turnoId":"7","timestamp":1717171717000}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "7", req.TurnoID.String())
	assert.Equal(t, "1717171717000", req.Timestamp.String())
}

func TestLocationToModel(t *testing.T) {
	loc := &Location{Lat: -16.5, Lng: -68.15}
	m := loc.ToModel()
	require.NotNil(t, m)
	assert.Equal(t, -16.5, m.Lat)
	assert.Equal(t, -68.15, m.Lng)

	var missing *Location
	assert.Nil(t, missing.ToModel())
}
