package model

import "encoding/json"

// MissingPerson is a row from the missing_persons collection. Numeric and
// JSON fields are stored typed; the form keeps them as text until submit.
type MissingPerson struct {
	ID               string          `json:"id"`
	EventID          string          `json:"event_id"`
	Name             string          `json:"name"`
	Age              *int            `json:"age,omitempty"`
	HeightCm         *int            `json:"height_cm,omitempty"`
	Clothing         string          `json:"clothing,omitempty"`
	PhotoURL         string          `json:"photo_url,omitempty"`
	BehaviorCategory string          `json:"behavior_category,omitempty"`
	ProbZones        json.RawMessage `json:"prob_zones,omitempty"`
	Location         *LatLng         `json:"location,omitempty"`
}

// LatLng is the optional last-known location payload.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MissingPersonForm mirrors the editor inputs: age, height, prob zones and
// coordinates arrive as text and are coerced at submit time.
type MissingPersonForm struct {
	EventID          string `json:"event_id" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Age              string `json:"age"`
	HeightCm         string `json:"height_cm"`
	Clothing         string `json:"clothing"`
	PhotoURL         string `json:"photo_url"`
	BehaviorCategory string `json:"behavior_category"`
	ProbZones        string `json:"prob_zones"`
	Lat              string `json:"lat"`
	Lng              string `json:"lng"`
}

func DecodeMissingPerson(r Row) (MissingPerson, error) {
	var p MissingPerson
	var err error
	if p.ID, err = rowID(r, "id"); err != nil {
		return MissingPerson{}, err
	}
	if p.EventID, err = rowOptionalID(r, "event_id"); err != nil {
		return MissingPerson{}, err
	}
	if p.Name, err = rowString(r, "name"); err != nil {
		return MissingPerson{}, err
	}
	if p.Age, err = rowInt(r, "age"); err != nil {
		return MissingPerson{}, err
	}
	if p.HeightCm, err = rowInt(r, "height_cm"); err != nil {
		return MissingPerson{}, err
	}
	if p.Clothing, err = rowString(r, "clothing"); err != nil {
		return MissingPerson{}, err
	}
	if p.PhotoURL, err = rowString(r, "photo_url"); err != nil {
		return MissingPerson{}, err
	}
	if p.BehaviorCategory, err = rowString(r, "behavior_category"); err != nil {
		return MissingPerson{}, err
	}
	var zones json.RawMessage
	if err = rowJSON(r, "prob_zones", &zones); err != nil {
		return MissingPerson{}, err
	}
	p.ProbZones = zones
	var loc LatLng
	if v, ok := r["location"]; ok && v != nil {
		if err = rowJSON(r, "location", &loc); err != nil {
			return MissingPerson{}, err
		}
		p.Location = &loc
	}
	return p, nil
}
