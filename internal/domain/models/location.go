package models

// LatLng is a geographic point reported by the frontend.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
