// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type SubmitRequest struct {
	Email      string `json:"-" validate:"required,email"`
	TenantName string `json:"tenant_name" validate:"max=120"`
	Role       string `json:"role" validate:"max=64"`
}

type InviteRequest struct {
	Email    string `json:"email" validate:"required,email"`
	TenantID string `json:"tenant_id" validate:"required"`
	Role     string `json:"role" validate:"max=64"`
}

type TenantRequest struct {
	Name string `json:"name" validate:"notblank,max=120"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Message: "invalid request body"}
	}

	fe := errs[0]
	field := fe.Field()

	switch fe.ActualTag() {
	case "required":
		return &ValidationError{Message: fmt.Sprintf("%s is required", field)}
	case "notblank":
		return &ValidationError{Message: fmt.Sprintf("%s must not be blank", field)}
	case "email":
		return &ValidationError{Message: fmt.Sprintf("%s must be a valid email", field)}
	case "max":
		return &ValidationError{Message: fmt.Sprintf("%s must be at most %s characters", field, fe.Param())}
	}

	return &ValidationError{Message: fmt.Sprintf("%s is invalid", field)}
}
