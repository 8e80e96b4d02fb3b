package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

// MaxWatchDebounce bounds watch_debounce.
const MaxWatchDebounce = 10 * time.Second

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	gitRevPattern = regexp.MustCompile(`^[A-Za-z0-9._/~^@{}-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("git_rev", func(fl validator.FieldLevel) bool {
			rev := fl.Field().String()
			return gitRevPattern.MatchString(rev) && !strings.Contains(rev, "..")
		})

		_ = v.RegisterValidation("debounce", func(fl validator.FieldLevel) bool {
			d := time.Duration(fl.Field().Int())
			return d >= 0 && d <= MaxWatchDebounce
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig checks a fully layered configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return tokenerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if !cfg.NoWrite && cfg.MetricsFile != "" && cfg.MetricsFile == cfg.Output {
		return tokenerrors.NewValidationError("metrics_file", "must differ from output", nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := ve.Field()
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s (%s)", msg, ve.Param())
		}
		return tokenerrors.NewValidationError(field, msg, err)
	}

	return tokenerrors.NewValidationError("config", err.Error(), err)
}
