package dto

import (
	"encoding/json"

	"github.com/beetracked/fleet-ops/internal/domain/models"
)

// FlexString decodes a JSON string or number into a string. The mobile
// frontend sends timestamps and ids either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// SessionRef carries the caller identity fields the session middleware
// reads out of the body. Handlers ignore them.
type SessionRef struct {
	UserID    string `json:"userId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Location is a lat/lng pair as sent by the frontend.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l *Location) ToModel() *models.LatLng {
	if l == nil {
		return nil
	}
	return &models.LatLng{Lat: l.Lat, Lng: l.Lng}
}
