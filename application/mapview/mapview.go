package mapview

import (
	"context"
	"fmt"

	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
	"github.com/rescueops/admin-console/repository/store"
	"github.com/rescueops/admin-console/utils/errors"
)

// Viewer is the read-only map screen: the marker list cache plus the
// projector. Markers are produced elsewhere; this screen never mutates
// them.
type Viewer struct {
	cache *editor.Controller[model.Marker, struct{}]
}

// Pin is a renderable map pin. Coordinates are stored [longitude,
// latitude] GeoJSON-style and consumed latitude-first, so the projector
// reverses the axis order.
type Pin struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

func New(st store.Store) *Viewer {
	schema := editor.Schema[model.Marker, struct{}]{
		Collection: constant.CollectionMarkers,
		Decode:     model.DecodeMarker,
		EntityID:   func(m model.Marker) string { return m.ID },
		Blank:      func() struct{} { return struct{}{} },
		Populate:   func(model.Marker) struct{} { return struct{}{} },
		Fields: func(struct{}) (model.Fields, error) {
			return nil, errors.SetCustomError(constant.ErrValidation, "markers are read-only")
		},
	}
	return &Viewer{cache: editor.NewController(st, schema, nil)}
}

func (v *Viewer) Refresh(ctx context.Context) error {
	return v.cache.Refresh(ctx)
}

func (v *Viewer) Markers() []model.Marker {
	return v.cache.Rows()
}

// Pins projects the cached markers. Markers without a usable lat_lng
// payload are skipped silently, never reported as an error.
func (v *Viewer) Pins() []Pin {
	return Project(v.cache.Rows())
}

func Project(markers []model.Marker) []Pin {
	pins := make([]Pin, 0, len(markers))
	for _, m := range markers {
		if m.LatLng == nil || len(m.LatLng.Coordinates) != 2 {
			continue
		}
		label := fmt.Sprintf("Marker ID: %s / Type: %s", m.ID, typeLabel(m.Type))
		pins = append(pins, Pin{
			Lat:   m.LatLng.Coordinates[1],
			Lng:   m.LatLng.Coordinates[0],
			Label: label,
		})
	}
	return pins
}

func typeLabel(t string) string {
	if t == "" {
		return "N/A"
	}
	return t
}
