package missing

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
	"github.com/rescueops/admin-console/repository/store"
	"github.com/rescueops/admin-console/utils/errors"
	validatorx "github.com/rescueops/admin-console/utils/validator"
)

// Controller is the missing persons screen. Age, height, probability
// zones and coordinates arrive as text and are coerced at submit time; a
// malformed value fails before the gateway is contacted.
type Controller = editor.Controller[model.MissingPerson, model.MissingPersonForm]

func New(st store.Store, publisher editor.ChangePublisher) *Controller {
	schema := editor.Schema[model.MissingPerson, model.MissingPersonForm]{
		Collection: constant.CollectionMissingPersons,
		Decode:     model.DecodeMissingPerson,
		EntityID:   func(p model.MissingPerson) string { return p.ID },
		Blank:      func() model.MissingPersonForm { return model.MissingPersonForm{} },
		Populate:   populate,
		Fields:     personFields,
	}
	return editor.NewController(st, schema, publisher)
}

func populate(p model.MissingPerson) model.MissingPersonForm {
	form := model.MissingPersonForm{
		EventID:          p.EventID,
		Name:             p.Name,
		Clothing:         p.Clothing,
		PhotoURL:         p.PhotoURL,
		BehaviorCategory: p.BehaviorCategory,
	}
	if p.Age != nil {
		form.Age = strconv.Itoa(*p.Age)
	}
	if p.HeightCm != nil {
		form.HeightCm = strconv.Itoa(*p.HeightCm)
	}
	if len(p.ProbZones) > 0 {
		form.ProbZones = string(p.ProbZones)
	}
	if p.Location != nil {
		form.Lat = strconv.FormatFloat(p.Location.Lat, 'f', -1, 64)
		form.Lng = strconv.FormatFloat(p.Location.Lng, 'f', -1, 64)
	}
	return form
}

func personFields(form model.MissingPersonForm) (model.Fields, error) {
	if err := validatorx.ValidateStruct(&form); err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, err.Error())
	}

	fields := model.Fields{
		"event_id":          form.EventID,
		"name":              form.Name,
		"clothing":          form.Clothing,
		"photo_url":         form.PhotoURL,
		"behavior_category": form.BehaviorCategory,
	}

	age, err := optionalInt("age", form.Age)
	if err != nil {
		return nil, err
	}
	fields["age"] = age

	height, err := optionalInt("height_cm", form.HeightCm)
	if err != nil {
		return nil, err
	}
	fields["height_cm"] = height

	zones, err := parseProbZones(form.ProbZones)
	if err != nil {
		return nil, err
	}
	fields["prob_zones"] = zones

	loc, err := parseLocation(form.Lat, form.Lng)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		fields["location"] = loc
	} else {
		fields["location"] = nil
	}

	return fields, nil
}

func optionalInt(name, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, name+" must be a whole number")
	}
	return n, nil
}

// parseProbZones validates the zones text as JSON; blank means the empty
// object.
func parseProbZones(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return json.RawMessage("{}"), nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, "prob_zones is not valid JSON: "+err.Error())
	}
	return json.RawMessage(raw), nil
}

// parseLocation keeps the original both-or-nothing rule: the payload is
// only built when both halves are present.
func parseLocation(latRaw, lngRaw string) (*model.LatLng, error) {
	latRaw = strings.TrimSpace(latRaw)
	lngRaw = strings.TrimSpace(lngRaw)
	if latRaw == "" || lngRaw == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, "lng must be a number")
	}
	return &model.LatLng{Lat: lat, Lng: lng}, nil
}
