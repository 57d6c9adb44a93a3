package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/crystaldolphin/pairbus/internal/retention"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report yaml key names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			name, _, _ := strings.Cut(tag, ",")
			return name
		})

		if err := v.RegisterValidation("cronspec", func(fl validator.FieldLevel) bool {
			_, err := retention.ParseSchedule(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(fmt.Sprintf("config: register cronspec validation: %v", err))
		}

		validate = v
	})
	return validate
}

// Validate checks field values and the shape of the pair list.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.PairList(); err != nil {
		return fmt.Errorf("invalid config: pairs: %w", err)
	}
	return nil
}
