package model

// Marker is a read-only row from the markers collection. LatLng is a
// GeoJSON-style point whose coordinates are stored [longitude, latitude].
type Marker struct {
	ID     string    `json:"id"`
	LatLng *GeoPoint `json:"lat_lng,omitempty"`
	Type   string    `json:"type,omitempty"`
}

type GeoPoint struct {
	Coordinates []float64 `json:"coordinates"`
}

func DecodeMarker(r Row) (Marker, error) {
	var m Marker
	var err error
	if m.ID, err = rowID(r, "id"); err != nil {
		return Marker{}, err
	}
	if m.Type, err = rowString(r, "type"); err != nil {
		return Marker{}, err
	}
	if v, ok := r["lat_lng"]; ok && v != nil {
		var pt GeoPoint
		if err = rowJSON(r, "lat_lng", &pt); err != nil {
			return Marker{}, err
		}
		m.LatLng = &pt
	}
	return m, nil
}
