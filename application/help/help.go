package help

import (
	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
	"github.com/rescueops/admin-console/repository/store"
	"github.com/rescueops/admin-console/utils/errors"
	validatorx "github.com/rescueops/admin-console/utils/validator"
)

// Controller is the help content screen. No coercion: all five locale
// texts are submitted verbatim, empty strings included, and no rule
// forces completeness across locales.
type Controller = editor.Controller[model.HelpContentEntry, model.HelpContentForm]

func New(st store.Store, publisher editor.ChangePublisher) *Controller {
	schema := editor.Schema[model.HelpContentEntry, model.HelpContentForm]{
		Collection: constant.CollectionHelpContent,
		Decode:     model.DecodeHelpContent,
		EntityID:   func(h model.HelpContentEntry) string { return h.ID },
		Blank:      func() model.HelpContentForm { return model.HelpContentForm{} },
		Populate: func(h model.HelpContentEntry) model.HelpContentForm {
			return model.HelpContentForm{
				Section: h.Section,
				TextHu:  h.TextHu,
				TextEn:  h.TextEn,
				TextSk:  h.TextSk,
				TextRo:  h.TextRo,
				TextPl:  h.TextPl,
			}
		},
		Fields: helpFields,
	}
	return editor.NewController(st, schema, publisher)
}

func helpFields(form model.HelpContentForm) (model.Fields, error) {
	if err := validatorx.ValidateStruct(&form); err != nil {
		return nil, errors.SetCustomError(constant.ErrValidation, err.Error())
	}

	return model.Fields{
		"section": form.Section,
		"text_hu": form.TextHu,
		"text_en": form.TextEn,
		"text_sk": form.TextSk,
		"text_ro": form.TextRo,
		"text_pl": form.TextPl,
	}, nil
}
