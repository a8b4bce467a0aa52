// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package validation provides struct validation using go-playground/validator v10.
//
// It exposes a thread-safe singleton validator instance so struct metadata is
// cached once per process. API request structs declare `validate` tags and
// call ValidateStruct before any work happens:
//
//	type SearchRequest struct {
//	    Query string `validate:"required"`
//	    Lat   *float64 `validate:"required,latitude"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil { ... }
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the singleton validator.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError describes a single failed field in a human-readable way.
type FieldError struct {
	// Field is the struct field name that failed.
	Field string

	// Tag is the validation tag that failed (e.g. "required", "latitude").
	Tag string

	// Message is a client-facing description of the failure.
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Message
}

// ValidateStruct validates a struct against its `validate` tags.
// Returns the first failure as a *FieldError, or nil when valid.
func ValidateStruct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validation: %w", err)
	}

	fe := verrs[0]
	return &FieldError{
		Field:   fe.Field(),
		Tag:     fe.Tag(),
		Message: describeFailure(fe),
	}
}

// describeFailure builds a client-facing message for a failed field.
func describeFailure(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "latitude":
		return fmt.Sprintf("%s must be a valid latitude (-90 to 90)", field)
	case "longitude":
		return fmt.Sprintf("%s must be a valid longitude (-180 to 180)", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
