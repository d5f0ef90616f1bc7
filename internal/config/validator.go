// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `Load` calls `validateStruct` immediately after it unmarshals the merged
// Koanf tree.  Any validation error aborts startup, so the binary never runs
// with partial or malformed configuration.
//
// One custom rule is registered: `cron`, which parses the moderation
// backlog schedule with the same parser the scheduler uses.

package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})
	return val
}

// validateStruct returns the validation errors, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
