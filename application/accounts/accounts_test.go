package accounts_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rescueops/admin-console/application/accounts"
	"github.com/rescueops/admin-console/constant"
	identitymocks "github.com/rescueops/admin-console/mocks/repository/identity"
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

func validForm() model.AccountForm {
	return model.AccountForm{
		FullName:    "Anna Kovacs",
		PhoneNumber: "+36201234567",
		Email:       "anna@example.com",
		Password:    "s3cret",
		Role:        constant.RoleSearcher,
		Active:      true,
		Language:    "hu",
	}
}

func accountRow() model.Row {
	return model.Row{
		"id":           "uid-1",
		"email":        "anna@example.com",
		"full_name":    "Anna Kovacs",
		"phone_number": "+36201234567",
		"role":         constant.RoleSearcher,
		"active":       true,
		"language":     "hu",
	}
}

func TestAccounts_CreateIssuesIdentityFirst(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	issuer.On("IssueIdentity", mock.Anything, "anna@example.com", "s3cret").
		Return("uid-1", nil).Once()
	// The profile row is keyed by the issued identity; the hashed secret
	// never reaches the users collection.
	st.On("Insert", mock.Anything, constant.CollectionUsers, model.Fields{
		"id":           "uid-1",
		"email":        "anna@example.com",
		"full_name":    "Anna Kovacs",
		"phone_number": "+36201234567",
		"role":         constant.RoleSearcher,
		"active":       true,
		"language":     "hu",
	}).Return(nil).Once()
	st.On("SelectAll", mock.Anything, constant.CollectionUsers).
		Return([]model.Row{accountRow()}, nil).Once()

	warnings, err := ctrl.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if rows := ctrl.Rows(); len(rows) != 1 || rows[0].ID != "uid-1" {
		t.Fatalf("rows after create = %+v", rows)
	}
}

func TestAccounts_CreateIssuanceFailureBlocksInsert(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	issuer.On("IssueIdentity", mock.Anything, "anna@example.com", "s3cret").
		Return("", errors.New("email already registered")).Once()

	_, err := ctrl.Submit(context.Background(), validForm())
	assertErrCode(t, err, constant.ErrMutationFailed)
	st.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccounts_CreateInsertFailureIsPartial(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	issuer.On("IssueIdentity", mock.Anything, "anna@example.com", "s3cret").
		Return("uid-1", nil).Once()
	st.On("Insert", mock.Anything, constant.CollectionUsers, mock.Anything).
		Return(errors.New("duplicate key")).Once()

	_, err := ctrl.Submit(context.Background(), validForm())
	assertErrCode(t, err, constant.ErrPartialMutation)

	// The report names the identity that already exists without a profile.
	var ce cerr.CustomError
	errors.As(err, &ce)
	if !strings.Contains(ce.Error(), "identity uid-1 issued") {
		t.Fatalf("error = %q, want the issued identity named", ce.Error())
	}
}

func TestAccounts_CreateRequiresCredentials(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	form := validForm()
	form.Email = ""
	_, err := ctrl.Submit(context.Background(), form)
	assertErrCode(t, err, constant.ErrValidation)

	form = validForm()
	form.Password = ""
	_, err = ctrl.Submit(context.Background(), form)
	assertErrCode(t, err, constant.ErrValidation)

	issuer.AssertNotCalled(t, "IssueIdentity", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccounts_CreateRejectsUnknownRole(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	form := validForm()
	form.Role = "superuser"
	_, err := ctrl.Submit(context.Background(), form)
	assertErrCode(t, err, constant.ErrValidation)
}

func TestAccounts_UpdateKeepsEmailImmutable(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	st.On("SelectAll", mock.Anything, constant.CollectionUsers).
		Return([]model.Row{accountRow()}, nil).Twice()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := ctrl.Select("uid-1"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	// Neither id nor email appears in the update payload, whatever the
	// form says.
	form := ctrl.Form()
	form.FullName = "Anna Nagy"
	form.Email = "other@example.com"
	st.On("Update", mock.Anything, constant.CollectionUsers, model.Fields{
		"full_name":    "Anna Nagy",
		"phone_number": "+36201234567",
		"role":         constant.RoleSearcher,
		"active":       true,
		"language":     "hu",
	}, "uid-1").Return(nil).Once()

	if _, err := ctrl.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestAccounts_UpdateCredentialFailureIsWarning(t *testing.T) {
	st := storemocks.NewStore(t)
	issuer := identitymocks.NewIssuer(t)
	ctrl := accounts.New(st, issuer, nil)

	st.On("SelectAll", mock.Anything, constant.CollectionUsers).
		Return([]model.Row{accountRow()}, nil).Twice()
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := ctrl.Select("uid-1"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	form := ctrl.Form()
	form.Password = "new-secret"
	issuer.On("UpdateCredential", mock.Anything, "uid-1", "new-secret").
		Return(errors.New("auth store down")).Once()
	st.On("Update", mock.Anything, constant.CollectionUsers, mock.Anything, "uid-1").
		Return(nil).Once()

	warnings, err := ctrl.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "credential update failed") {
		t.Fatalf("warnings = %v, want the credential failure", warnings)
	}
}
