package editor_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/constant"
	storemocks "github.com/rescueops/admin-console/mocks/repository/store"
	"github.com/rescueops/admin-console/model"
	cerr "github.com/rescueops/admin-console/utils/errors"
	"github.com/rescueops/admin-console/utils/logger"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNop()
	os.Exit(m.Run())
}

// note is a minimal entity exercising the generic machine without any
// screen-specific hooks.
type note struct {
	ID    string
	Title string
}

type noteForm struct {
	Title string `json:"title"`
}

func noteSchema() editor.Schema[note, noteForm] {
	return editor.Schema[note, noteForm]{
		Collection: "notes",
		Decode: func(r model.Row) (note, error) {
			id, ok := r["id"].(string)
			if !ok || id == "" {
				return note{}, fmt.Errorf("column id: missing")
			}
			title, _ := r["title"].(string)
			return note{ID: id, Title: title}, nil
		},
		EntityID: func(n note) string { return n.ID },
		Blank:    func() noteForm { return noteForm{} },
		Populate: func(n note) noteForm { return noteForm{Title: n.Title} },
		Fields: func(f noteForm) (model.Fields, error) {
			if f.Title == "" {
				return nil, cerr.SetCustomError(constant.ErrValidation, "title is required")
			}
			return model.Fields{"title": f.Title}, nil
		},
	}
}

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func noteRows(rows ...note) []model.Row {
	out := make([]model.Row, 0, len(rows))
	for _, n := range rows {
		out = append(out, model.Row{"id": n.ID, "title": n.Title})
	}
	return out
}

func TestController_RefreshIdempotent(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	want := []note{{ID: "1", Title: "first"}, {ID: "2", Title: "second"}}
	st.On("SelectAll", mock.Anything, "notes").Return(noteRows(want...), nil).Twice()

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	first := ctrl.Rows()

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	second := ctrl.Rows()

	if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(second, want) {
		t.Fatalf("Rows() = %+v / %+v, want %+v", first, second, want)
	}
}

func TestController_RefreshFailureRetainsCache(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("SelectAll", mock.Anything, "notes").Return(noteRows(note{ID: "1", Title: "kept"}), nil).Once()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	st.On("SelectAll", mock.Anything, "notes").Return(nil, errors.New("store down")).Once()
	err := ctrl.Refresh(context.Background())
	assertErrCode(t, err, constant.ErrFetchFailed)

	got := ctrl.Rows()
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("cache after failed refresh = %+v, want the prior snapshot", got)
	}
}

func TestController_RefreshDecodeFailsClosed(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("SelectAll", mock.Anything, "notes").Return([]model.Row{{"title": "no id"}}, nil).Once()
	err := ctrl.Refresh(context.Background())
	assertErrCode(t, err, constant.ErrValidation)

	if len(ctrl.Rows()) != 0 {
		t.Fatalf("cache = %+v, want empty", ctrl.Rows())
	}
}

func TestController_SelectAndCancel(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("SelectAll", mock.Anything, "notes").
		Return(noteRows(note{ID: "1", Title: "first"}, note{ID: "2", Title: "second"}), nil).Once()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if err := ctrl.Select("2"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if ctrl.Mode() != editor.ModeEdit || ctrl.Form().Title != "second" {
		t.Fatalf("after select: mode=%s form=%+v", ctrl.Mode(), ctrl.Form())
	}

	// Selecting another row silently replaces the target
	if err := ctrl.Select("1"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if ctrl.SelectedID() != "1" || ctrl.Form().Title != "first" {
		t.Fatalf("after reselect: id=%s form=%+v", ctrl.SelectedID(), ctrl.Form())
	}

	// Cancel restores a blank create form without touching the store;
	// the mock would fail the test on any unexpected call.
	ctrl.Cancel()
	if ctrl.Mode() != editor.ModeCreate || ctrl.Form() != (noteForm{}) || ctrl.SelectedID() != "" {
		t.Fatalf("after cancel: mode=%s form=%+v id=%q", ctrl.Mode(), ctrl.Form(), ctrl.SelectedID())
	}

	assertErrCode(t, ctrl.Select("missing"), constant.ErrNotFound)
}

func TestController_SubmitCreate(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("Insert", mock.Anything, "notes", model.Fields{"title": "new"}).Return(nil).Once()
	st.On("SelectAll", mock.Anything, "notes").Return(noteRows(note{ID: "1", Title: "new"}), nil).Once()

	warnings, err := ctrl.Submit(context.Background(), noteForm{Title: "new"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if ctrl.Mode() != editor.ModeCreate || ctrl.Form() != (noteForm{}) {
		t.Fatalf("after create: mode=%s form=%+v", ctrl.Mode(), ctrl.Form())
	}
	if got := ctrl.Rows(); len(got) != 1 || got[0].Title != "new" {
		t.Fatalf("rows after create = %+v", got)
	}
}

func TestController_SubmitValidationSkipsGateway(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	_, err := ctrl.Submit(context.Background(), noteForm{})
	assertErrCode(t, err, constant.ErrValidation)
	st.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_SubmitEdit(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("SelectAll", mock.Anything, "notes").
		Return(noteRows(note{ID: "7", Title: "old"}), nil).Twice()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := ctrl.Select("7"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	st.On("Update", mock.Anything, "notes", model.Fields{"title": "edited"}, "7").Return(nil).Once()

	if _, err := ctrl.Submit(context.Background(), noteForm{Title: "edited"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if ctrl.Mode() != editor.ModeCreate || ctrl.SelectedID() != "" {
		t.Fatalf("after edit submit: mode=%s id=%q", ctrl.Mode(), ctrl.SelectedID())
	}
}

func TestController_SubmitFailureKeepsState(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("SelectAll", mock.Anything, "notes").
		Return(noteRows(note{ID: "7", Title: "old"}), nil).Once()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := ctrl.Select("7"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	st.On("Update", mock.Anything, "notes", mock.Anything, "7").Return(errors.New("rejected")).Once()

	_, err := ctrl.Submit(context.Background(), noteForm{Title: "edited"})
	assertErrCode(t, err, constant.ErrMutationFailed)
	if ctrl.Mode() != editor.ModeEdit || ctrl.SelectedID() != "7" {
		t.Fatalf("after failed submit: mode=%s id=%q", ctrl.Mode(), ctrl.SelectedID())
	}
}

func TestController_SubmitBusyGuard(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("Insert", mock.Anything, "notes", mock.Anything).
		Run(func(args mock.Arguments) {
			// A second submit while one is in flight must be rejected
			// without reaching the store.
			_, err := ctrl.Submit(context.Background(), noteForm{Title: "again"})
			assertErrCode(t, err, constant.ErrBusy)
		}).
		Return(nil).Once()
	st.On("SelectAll", mock.Anything, "notes").Return(noteRows(), nil).Once()

	if _, err := ctrl.Submit(context.Background(), noteForm{Title: "new"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestController_SubmitRefreshFailureIsWarning(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("Insert", mock.Anything, "notes", mock.Anything).Return(nil).Once()
	st.On("SelectAll", mock.Anything, "notes").Return(nil, errors.New("store down")).Once()

	warnings, err := ctrl.Submit(context.Background(), noteForm{Title: "new"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want the refresh failure", warnings)
	}
}

func TestController_DeleteRequiresConfirmation(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	_, err := ctrl.Delete(context.Background(), "1", false)
	assertErrCode(t, err, constant.ErrConfirmRequired)
	st.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_DeleteKeepsFormState(t *testing.T) {
	st := storemocks.NewStore(t)
	ctrl := editor.NewController(st, noteSchema(), nil)

	st.On("SelectAll", mock.Anything, "notes").
		Return(noteRows(note{ID: "1", Title: "first"}, note{ID: "2", Title: "second"}), nil).Once()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := ctrl.Select("1"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	st.On("Delete", mock.Anything, "notes", "2").Return(nil).Once()
	st.On("SelectAll", mock.Anything, "notes").
		Return(noteRows(note{ID: "1", Title: "first"}), nil).Once()

	if _, err := ctrl.Delete(context.Background(), "2", true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Deleting is a side channel: the edit in progress is untouched.
	if ctrl.Mode() != editor.ModeEdit || ctrl.SelectedID() != "1" {
		t.Fatalf("after delete: mode=%s id=%q", ctrl.Mode(), ctrl.SelectedID())
	}
	if got := ctrl.Rows(); len(got) != 1 {
		t.Fatalf("rows after delete = %+v", got)
	}
}
