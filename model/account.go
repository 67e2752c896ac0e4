package model

import (
	"fmt"

	"github.com/rescueops/admin-console/constant"
)

// Account is a profile row from the users collection. The id is the
// identity issued by the auth sub-gateway, never generated client-side.
type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	Language    string `json:"language"`
}

// AccountForm is the create/update form of the accounts screen. Email is
// required only on create; in edit mode the field is immutable and the
// password, when supplied, triggers a credential update.
type AccountForm struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password"`
	Role        string `json:"role" validate:"required"`
	Active      bool   `json:"active"`
	Language    string `json:"language"`
}

func DecodeAccount(r Row) (Account, error) {
	var a Account
	var err error
	if a.ID, err = rowID(r, "id"); err != nil {
		return Account{}, err
	}
	if a.Email, err = rowString(r, "email"); err != nil {
		return Account{}, err
	}
	if a.FullName, err = rowString(r, "full_name"); err != nil {
		return Account{}, err
	}
	if a.PhoneNumber, err = rowString(r, "phone_number"); err != nil {
		return Account{}, err
	}
	if a.Role, err = rowRequiredString(r, "role"); err != nil {
		return Account{}, err
	}
	if !constant.AccountRoles[a.Role] {
		return Account{}, fmt.Errorf("column role: unknown value %q", a.Role)
	}
	if a.Active, err = rowBool(r, "active"); err != nil {
		return Account{}, err
	}
	if a.Language, err = rowString(r, "language"); err != nil {
		return Account{}, err
	}
	return a, nil
}
