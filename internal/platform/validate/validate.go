// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// Format rules (email, url, uuid) delegate to go-playground/validator.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

var (
	// engine is safe for concurrent use and caches rule parsing.
	engine = validator.New(validator.WithRequiredStructEnabled())

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent API.
// A new instance must be created per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the rune count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the rune count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Email fails if value is not an email address.
func (v *Validator) Email(field, value string) *Validator {
	return v.rule(field, value, "required,email", "Must be a valid email address")
}

// URL fails if value is not an absolute URL.
func (v *Validator) URL(field, value string) *Validator {
	return v.rule(field, value, "required,url", "Must be a valid URL")
}

// UUID fails if value is not a UUID string.
func (v *Validator) UUID(field, value string) *Validator {
	return v.rule(field, value, "required,uuid", "Must be a valid UUID")
}

// OneOf fails if value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds message for field when failed is true.
//
//	v.Custom("content", len(parts) == 0, "Must not be empty")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR if any rule failed, otherwise nil.
// Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(v.summary(), v.errs...)
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) rule(field, value, tag, message string) *Validator {
	if err := engine.Var(value, tag); err != nil {
		v.add(field, message)
	}
	return v
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// summary makes the top-level message useful for clients that only read "message".
func (v *Validator) summary() string {
	if len(v.errs) == 1 {
		return fmt.Sprintf("%s: %s", v.errs[0].Field, v.errs[0].Message)
	}
	return "Validation failed"
}

// RequiredError is a shortcut for a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(field+": "+message, apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
