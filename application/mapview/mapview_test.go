package mapview_test

import (
	"context"
	"os"
	"reflect"
	"testing"

	"github.com/rescueops/admin-console/application/mapview"
	"github.com/rescueops/admin-console/constant"
	storemocks "github.com/rescueops/admin-console/mocks/repository/store"
	"github.com/rescueops/admin-console/model"
	"github.com/rescueops/admin-console/utils/logger"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNop()
	os.Exit(m.Run())
}

func TestProject_ReversesAxisOrder(t *testing.T) {
	markers := []model.Marker{
		{ID: "mk-1", LatLng: &model.GeoPoint{Coordinates: []float64{19.04, 47.5}}, Type: "vehicle"},
	}

	got := mapview.Project(markers)
	want := []mapview.Pin{{Lat: 47.5, Lng: 19.04, Label: "Marker ID: mk-1 / Type: vehicle"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Project() = %+v, want %+v", got, want)
	}
}

func TestProject_SkipsUnusablePayloads(t *testing.T) {
	markers := []model.Marker{
		{ID: "mk-1", Type: "vehicle"},
		{ID: "mk-2", LatLng: &model.GeoPoint{Coordinates: []float64{19.04}}, Type: "vehicle"},
		{ID: "mk-3", LatLng: &model.GeoPoint{Coordinates: []float64{19.04, 47.5}}},
	}

	got := mapview.Project(markers)
	if len(got) != 1 {
		t.Fatalf("Project() = %+v, want only the usable marker", got)
	}
	// A missing type renders as N/A rather than an empty label.
	if got[0].Label != "Marker ID: mk-3 / Type: N/A" {
		t.Fatalf("label = %q", got[0].Label)
	}
}

func TestViewer_PinsFromStoreRows(t *testing.T) {
	st := storemocks.NewStore(t)
	viewer := mapview.New(st)

	st.On("SelectAll", mock.Anything, constant.CollectionMarkers).
		Return([]model.Row{
			{"id": "mk-1", "lat_lng": []byte(`{"coordinates":[19.04,47.5]}`), "type": "clue"},
			{"id": "mk-2", "type": "clue"},
		}, nil).Once()

	if err := viewer.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(viewer.Markers()) != 2 {
		t.Fatalf("Markers() = %+v, want both rows cached", viewer.Markers())
	}

	pins := viewer.Pins()
	if len(pins) != 1 || pins[0].Lat != 47.5 || pins[0].Lng != 19.04 {
		t.Fatalf("Pins() = %+v", pins)
	}
}
