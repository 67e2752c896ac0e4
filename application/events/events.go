package events

import (
	"context"
	"time"

	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
	"github.com/rescueops/admin-console/repository/store"
	utilsContext "github.com/rescueops/admin-console/utils/context"
	"github.com/rescueops/admin-console/utils/errors"
	validatorx "github.com/rescueops/admin-console/utils/validator"
)

// Controller is the search events screen. Status and start time are
// computed at creation and the coordinator is the authenticated admin
// taken from the request context, never a constant. Updates touch only
// name and status; start_time is never rewritten.
type Controller = editor.Controller[model.SearchEvent, model.SearchEventForm]

func New(st store.Store, publisher editor.ChangePublisher) *Controller {
	schema := editor.Schema[model.SearchEvent, model.SearchEventForm]{
		Collection: constant.CollectionSearchEvents,
		Decode:     model.DecodeSearchEvent,
		EntityID:   func(e model.SearchEvent) string { return e.ID },
		Blank:      func() model.SearchEventForm { return model.SearchEventForm{} },
		Populate: func(e model.SearchEvent) model.SearchEventForm {
			return model.SearchEventForm{Name: e.Name, Status: e.Status}
		},
		Fields:   eventFields,
		OnInsert: insertHook,
	}
	return editor.NewController(st, schema, publisher)
}

func eventFields(form model.SearchEventForm) (model.Fields, error) {
	if err := validatorx.ValidateStruct(&form); err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, err.Error())
	}

	status := form.Status
	if status == "" {
		status = constant.EventStatusActive
	}
	return model.Fields{
		"name":   form.Name,
		"status": status,
	}, nil
}

func insertHook(ctx context.Context, form model.SearchEventForm, fields model.Fields) (model.Fields, string, error) {
	coordinatorID, ok := utilsContext.GetActorID(ctx)
	if !ok {
		return nil, "", errors.SetCustomError(constant.ErrUnauthorize, "no authenticated coordinator in context")
	}

	fields["start_time"] = time.Now().UTC()
	fields["coordinator_id"] = coordinatorID
	return fields, "", nil
}
