package project

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

var projectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterValidation("semver_range", validateSemverRange)
		v.RegisterValidation("project_name", validateProjectName)
		validate = v
	})
	return validate
}

// npm dist tags are accepted as is
func validateSemverRange(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "latest" || value == "next" {
		return true
	}
	_, err := semver.NewConstraint(value)
	return err == nil
}

func validateProjectName(fl validator.FieldLevel) bool {
	return projectNamePattern.MatchString(fl.Field().String())
}

// Validate checks a request received from outside the process. The engine
// itself does not call it.
func Validate(opts *Options) error {
	if opts == nil {
		return errors.New("options are required")
	}
	if err := getValidator().Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid options: %w", err)
	}
	for i, inj := range opts.Injections {
		if !inj.Location.Valid() {
			return fmt.Errorf("invalid options: injection %d has unknown location", i)
		}
	}
	return nil
}
