package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	paramValidator     *validator.Validate
	paramValidatorOnce sync.Once
)

func V() *validator.Validate {
	paramValidatorOnce.Do(func() {
		paramValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return paramValidator
}

// validateStruct runs the struct tags of v and reports failures as a
// ValidationError for op.
func validateStruct(op string, v any) error {
	if err := V().Struct(v); err != nil {
		return &ValidationError{Op: op, Err: describe(err)}
	}
	return nil
}

func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() == "" {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s %s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return errors.New(strings.Join(parts, "; "))
}

// ValidateLogin checks the account/secret pair before any login request.
func ValidateLogin(account, secret string) error {
	if account == HostAccount {
		return nil
	}
	if err := V().Var(account, "required,email"); err != nil {
		return &ValidationError{Op: "login", Err: fmt.Errorf("account %q must be %q or an email address", account, HostAccount)}
	}
	if secret == "" {
		return &ValidationError{Op: "login", Err: errors.New("password is required for a registered account")}
	}
	return nil
}
