package editor

import (
	"context"
	"sync"
	"time"

	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
	"github.com/rescueops/admin-console/repository/store"
	"github.com/rescueops/admin-console/thirdparty/rabbitmq"
	"github.com/rescueops/admin-console/utils/errors"
	"github.com/rescueops/admin-console/utils/logger"
	"go.uber.org/zap"
)

// Every management screen is the same machine: a cached snapshot of one
// collection, a create-or-edit form, and wholesale re-fetch after each
// successful mutation. The store offers no transactions and no push, so
// the cache is only ever replaced in full and concurrent edits by other
// actors stay invisible until the next refresh.

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangePublisher broadcasts successful mutations. Publishing is
// best-effort; a broker failure never fails the user action.
type ChangePublisher interface {
	PublishChange(msg rabbitmq.ChangeMessage) error
}

// Schema specializes the generic controller for one entity type. Fields
// performs validation and text-to-type coercion; a coercion failure must
// keep the gateway untouched. OnInsert and OnUpdate are optional
// pre-mutation hooks for multi-step flows such as identity issuance.
type Schema[E any, F any] struct {
	Collection string
	Decode     func(model.Row) (E, error)
	EntityID   func(E) string
	Blank      func() F
	Populate   func(E) F
	Fields     func(F) (model.Fields, error)

	// OnInsert may rewrite the field map before the insert. The returned
	// note names any side effect that already happened (e.g. an issued
	// identity); if the insert then fails, the error is reported as a
	// partial mutation carrying that note.
	OnInsert func(ctx context.Context, form F, fields model.Fields) (model.Fields, string, error)

	// OnUpdate may rewrite the field map before the update and return
	// warnings for non-blocking sub-step failures (e.g. a credential
	// update that failed while the profile update proceeds).
	OnUpdate func(ctx context.Context, id string, form F, fields model.Fields) (model.Fields, []string, error)
}

// Controller is the per-screen list cache plus selection/form state
// machine. One instance per screen; screens share nothing.
type Controller[E any, F any] struct {
	store     store.Store
	schema    Schema[E, F]
	publisher ChangePublisher

	mu         sync.Mutex
	busy       bool
	mode       Mode
	selectedID string
	form       F
	rows       []E
}

func NewController[E any, F any](st store.Store, schema Schema[E, F], publisher ChangePublisher) *Controller[E, F] {
	return &Controller[E, F]{
		store:     st,
		schema:    schema,
		publisher: publisher,
		mode:      ModeCreate,
		form:      schema.Blank(),
	}
}

// Refresh replaces the cached snapshot wholesale. On any failure the
// previous snapshot is retained and the error surfaced; there is no
// automatic retry.
func (c *Controller[E, F]) Refresh(ctx context.Context) error {
	raw, err := c.store.SelectAll(ctx, c.schema.Collection)
	if err != nil {
		logger.Error("[Refresh] err store.SelectAll", zap.String("collection", c.schema.Collection), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrFetchFailed, err.Error())
	}

	decoded := make([]E, 0, len(raw))
	for _, row := range raw {
		e, err := c.schema.Decode(row)
		if err != nil {
			logger.Error("[Refresh] err decode row", zap.String("collection", c.schema.Collection), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrValidation, err.Error())
		}
		decoded = append(decoded, e)
	}

	c.mu.Lock()
	c.rows = decoded
	c.mu.Unlock()
	return nil
}

// Rows returns a copy of the cached snapshot in store order.
func (c *Controller[E, F]) Rows() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]E, len(c.rows))
	copy(out, c.rows)
	return out
}

func (c *Controller[E, F]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller[E, F]) Form() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SelectedID returns the identity of the row being edited, empty in
// create mode.
func (c *Controller[E, F]) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// Select enters edit mode on the given cached row, silently replacing any
// prior selection. It never contacts the gateway.
func (c *Controller[E, F]) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.rows {
		if c.schema.EntityID(e) == id {
			c.selectedID = id
			c.form = c.schema.Populate(e)
			c.mode = ModeEdit
			return nil
		}
	}
	return errors.SetCustomError(constant.ErrNotFound)
}

// Cancel returns to create mode with a blank form, without mutating the
// store.
func (c *Controller[E, F]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = ""
	c.form = c.schema.Blank()
	c.mode = ModeCreate
}

// Submit validates the form and issues an insert (create mode) or an
// update keyed by the selected row (edit mode). On success the collection
// is re-fetched and the controller resets to create mode; on failure
// state is unchanged. Warnings carry non-blocking sub-step failures.
func (c *Controller[E, F]) Submit(ctx context.Context, form F) ([]string, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, errors.SetCustomError(constant.ErrBusy)
	}
	c.busy = true
	mode := c.mode
	selectedID := c.selectedID
	c.form = form
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	fields, err := c.schema.Fields(form)
	if err != nil {
		if _, ok := err.(errors.CustomError); ok {
			return nil, err
		}
		return nil, errors.SetCustomError(constant.ErrValidation, err.Error())
	}

	var warnings []string
	switch mode {
	case ModeEdit:
		if c.schema.OnUpdate != nil {
			var hookWarnings []string
			fields, hookWarnings, err = c.schema.OnUpdate(ctx, selectedID, form, fields)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, hookWarnings...)
		}
		if err := c.store.Update(ctx, c.schema.Collection, fields, selectedID); err != nil {
			logger.Error("[Submit] err store.Update", zap.String("collection", c.schema.Collection), zap.String("error", err.Error()))
			if len(warnings) > 0 {
				return nil, errors.SetCustomError(constant.ErrPartialMutation, append(warnings, err.Error())...)
			}
			return nil, errors.SetCustomError(constant.ErrMutationFailed, err.Error())
		}
		c.publish(OpUpdate, selectedID)
	default:
		var note string
		if c.schema.OnInsert != nil {
			fields, note, err = c.schema.OnInsert(ctx, form, fields)
			if err != nil {
				return nil, err
			}
		}
		if err := c.store.Insert(ctx, c.schema.Collection, fields); err != nil {
			logger.Error("[Submit] err store.Insert", zap.String("collection", c.schema.Collection), zap.String("error", err.Error()))
			if note != "" {
				// A prior sub-step already took effect; the stores are now
				// inconsistent and no compensation is attempted.
				return nil, errors.SetCustomError(constant.ErrPartialMutation, note, err.Error())
			}
			return nil, errors.SetCustomError(constant.ErrMutationFailed, err.Error())
		}
		c.publish(OpInsert, "")
	}

	if err := c.Refresh(ctx); err != nil {
		warnings = append(warnings, err.Error())
	}

	c.mu.Lock()
	c.selectedID = ""
	c.form = c.schema.Blank()
	c.mode = ModeCreate
	c.mu.Unlock()

	return warnings, nil
}

// Delete removes a row independently of the form state. It requires
// explicit confirmation and re-fetches the collection afterward; the
// create/edit state is left as it was.
func (c *Controller[E, F]) Delete(ctx context.Context, id string, confirmed bool) ([]string, error) {
	if !confirmed {
		return nil, errors.SetCustomError(constant.ErrConfirmRequired)
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, errors.SetCustomError(constant.ErrBusy)
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if err := c.store.Delete(ctx, c.schema.Collection, id); err != nil {
		logger.Error("[Delete] err store.Delete", zap.String("collection", c.schema.Collection), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrMutationFailed, err.Error())
	}
	c.publish(OpDelete, id)

	var warnings []string
	if err := c.Refresh(ctx); err != nil {
		warnings = append(warnings, err.Error())
	}
	return warnings, nil
}

func (c *Controller[E, F]) publish(op, entityID string) {
	if c.publisher == nil {
		return
	}
	msg := rabbitmq.ChangeMessage{
		Collection: c.schema.Collection,
		Op:         op,
		EntityID:   entityID,
		At:         time.Now(),
	}
	if err := c.publisher.PublishChange(msg); err != nil {
		logger.Error("[publish] err publisher.PublishChange", zap.String("collection", c.schema.Collection), zap.String("error", err.Error()))
	}
}
