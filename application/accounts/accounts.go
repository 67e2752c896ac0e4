package accounts

import (
	"context"
	"fmt"

	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
	identityrepo "github.com/rescueops/admin-console/repository/identity"
	"github.com/rescueops/admin-console/repository/store"
	"github.com/rescueops/admin-console/utils/errors"
	"github.com/rescueops/admin-console/utils/logger"
	validatorx "github.com/rescueops/admin-console/utils/validator"
	"go.uber.org/zap"
)

// Controller is the accounts screen: the users collection edited through
// the generic editor, with the auth sub-gateway layered on top. Creation
// is two-phase (issue identity, then insert the profile row keyed by it)
// and the phases are not transactional: an insert failure after issuance
// leaves an orphaned identity behind, reported but not compensated.
type Controller = editor.Controller[model.Account, model.AccountForm]

func New(st store.Store, issuer identityrepo.Issuer, publisher editor.ChangePublisher) *Controller {
	schema := editor.Schema[model.Account, model.AccountForm]{
		Collection: constant.CollectionUsers,
		Decode:     model.DecodeAccount,
		EntityID:   func(a model.Account) string { return a.ID },
		Blank: func() model.AccountForm {
			return model.AccountForm{Role: constant.RoleSearcher, Active: true}
		},
		Populate: func(a model.Account) model.AccountForm {
			return model.AccountForm{
				FullName:    a.FullName,
				PhoneNumber: a.PhoneNumber,
				Email:       a.Email,
				Role:        a.Role,
				Active:      a.Active,
				Language:    a.Language,
			}
		},
		Fields:   accountFields,
		OnInsert: insertHook(issuer),
		OnUpdate: updateHook(issuer),
	}
	return editor.NewController(st, schema, publisher)
}

func accountFields(form model.AccountForm) (model.Fields, error) {
	if err := validatorx.ValidateStruct(&form); err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, err.Error())
	}
	if !constant.AccountRoles[form.Role] {
		return nil, errors.SetCustomError(constant.ErrValidation, fmt.Sprintf("unknown role %q", form.Role))
	}
	if form.Language != "" && !constant.ValidLocale(form.Language) {
		return nil, errors.SetCustomError(constant.ErrValidation, fmt.Sprintf("unknown language %q", form.Language))
	}

	return model.Fields{
		"full_name":    form.FullName,
		"phone_number": form.PhoneNumber,
		"role":         form.Role,
		"active":       form.Active,
		"language":     form.Language,
	}, nil
}

// insertHook issues the identity that becomes the profile row's primary
// key. The returned note marks that the issuance already took effect, so
// a subsequent insert failure surfaces as a partial mutation.
func insertHook(issuer identityrepo.Issuer) func(ctx context.Context, form model.AccountForm, fields model.Fields) (model.Fields, string, error) {
	return func(ctx context.Context, form model.AccountForm, fields model.Fields) (model.Fields, string, error) {
		if form.Email == "" {
			return nil, "", errors.SetCustomError(constant.ErrValidation, "email is required")
		}
		if form.Password == "" {
			return nil, "", errors.SetCustomError(constant.ErrValidation, "password is required")
		}

		id, err := issuer.IssueIdentity(ctx, form.Email, form.Password)
		if err != nil {
			logger.Error("[accounts] err issuer.IssueIdentity", zap.String("error", err.Error()))
			return nil, "", errors.SetCustomError(constant.ErrMutationFailed, "identity issuance failed: "+err.Error())
		}

		fields["id"] = id
		fields["email"] = form.Email
		return fields, fmt.Sprintf("identity %s issued", id), nil
	}
}

// updateHook keeps email immutable and, when a password was supplied,
// rotates the credential first. A credential failure is surfaced as a
// warning and does not block the profile update.
func updateHook(issuer identityrepo.Issuer) func(ctx context.Context, id string, form model.AccountForm, fields model.Fields) (model.Fields, []string, error) {
	return func(ctx context.Context, id string, form model.AccountForm, fields model.Fields) (model.Fields, []string, error) {
		var warnings []string
		if form.Password != "" {
			if err := issuer.UpdateCredential(ctx, id, form.Password); err != nil {
				logger.Error("[accounts] err issuer.UpdateCredential", zap.String("id", id), zap.String("error", err.Error()))
				warnings = append(warnings, "credential update failed: "+err.Error())
			}
		}
		return fields, warnings, nil
	}
}
