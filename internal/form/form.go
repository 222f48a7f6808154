// Package form validates raw submitted values against statically declared
// schemas. Every form lists its fields explicitly; each field carries its
// own validator func. Nothing is discovered by reflection.
package form

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

// Errors maps field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

func (e Errors) Get(field string) string { return e[field] }

type Field struct {
	Name     string
	Validate func(value string) error
}

// runSchema validates values field by field and collects the failures.
func runSchema(schema []Field, values map[string]string) Errors {
	errs := Errors{}
	for _, f := range schema {
		if err := f.Validate(values[f.Name]); err != nil {
			errs[f.Name] = err.Error()
		}
	}
	return errs
}

func required(msg string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func chain(validators ...func(string) error) func(string) error {
	return func(v string) error {
		for _, validate := range validators {
			if err := validate(v); err != nil {
				return err
			}
		}
		return nil
	}
}

// optionalUint accepts the empty string or a decimal id.
func optionalUint(msg string) func(string) error {
	return func(v string) error {
		if v == "" {
			return nil
		}
		if _, err := strconv.ParseUint(v, 10, 64); err != nil {
			return errors.New(msg)
		}
		return nil
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func username(v string) error {
	if len(v) < 3 || len(v) > 32 {
		return errors.New("username must be 3-32 characters")
	}
	if !usernamePattern.MatchString(v) {
		return errors.New("username may contain letters, digits, _ . -")
	}
	return nil
}

func email(v string) error {
	if _, err := mail.ParseAddress(v); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func minLen(n int, what string) func(string) error {
	return func(v string) error {
		if len(v) < n {
			return fmt.Errorf("%s must be at least %d characters", what, n)
		}
		return nil
	}
}
