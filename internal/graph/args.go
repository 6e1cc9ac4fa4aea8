package graph

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// decodeArgs maps raw GraphQL arguments onto a typed per-operation struct and
// validates it before any business logic runs. Optional arguments use pointer
// fields so "absent" and "zero" stay distinguishable.
func decodeArgs(raw map[string]interface{}, dest interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	if err := validate.Struct(dest); err != nil {
		return validationMessage(err)
	}
	return nil
}

func validationMessage(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		switch first.Tag() {
		case "required":
			return fmt.Errorf("%s is required", first.Field())
		case "url":
			return fmt.Errorf("%s must be a valid URL", first.Field())
		case "min":
			return fmt.Errorf("%s must have at least %s entries", first.Field(), first.Param())
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", first.Field(), first.Param())
		default:
			return fmt.Errorf("%s failed %s validation", first.Field(), first.Tag())
		}
	}
	return err
}
