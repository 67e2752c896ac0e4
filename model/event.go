package model

import "time"

// SearchEvent is a row from the search_events collection. Status and
// start time are computed at creation; the coordinator is the admin who
// created the event.
type SearchEvent struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	CoordinatorID string    `json:"coordinator_id"`
}

// SearchEventForm carries the only user-entered event fields. Status is
// blank on create (defaulted to active) and editable on update.
type SearchEventForm struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"status"`
}

func DecodeSearchEvent(r Row) (SearchEvent, error) {
	var e SearchEvent
	var err error
	if e.ID, err = rowID(r, "id"); err != nil {
		return SearchEvent{}, err
	}
	if e.Name, err = rowString(r, "name"); err != nil {
		return SearchEvent{}, err
	}
	if e.Status, err = rowString(r, "status"); err != nil {
		return SearchEvent{}, err
	}
	if e.StartTime, err = rowTime(r, "start_time"); err != nil {
		return SearchEvent{}, err
	}
	if e.CoordinatorID, err = rowOptionalID(r, "coordinator_id"); err != nil {
		return SearchEvent{}, err
	}
	return e, nil
}
