// Package forms описывает формы входа и регистрации и их валидацию.
// Формы принимаются как JSON, так и как application/x-www-form-urlencoded.
package forms

import (
	"errors"

	"github.com/go-playground/validator"
)

// ErrPasswordMismatch пароль и подтверждение не совпадают.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Credentials форма входа.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Registration форма регистрации.
type Registration struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirmPassword" validate:"required,eqfield=Password"`
}

// Validate проверяет форму. Если нарушено только совпадение паролей,
// возвращается ErrPasswordMismatch, иначе validator.ValidationErrors.
func Validate(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.ActualTag() != "eqfield" {
			return verrs
		}
	}
	return ErrPasswordMismatch
}
