// FILE: internal/entity/validation_entity.go
package entity

import (
	"errors"
	"fmt"
)

var (
	ErrGiftNotFound         = errors.New("gift not found")
	ErrInvalidTransition    = errors.New("invalid payment status transition")
	ErrPaymentRejected      = errors.New("payment rejected")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrPersistenceFailed    = errors.New("persistence failure")
	ErrGatewayTimeout       = errors.New("gateway timeout")
	ErrValidationFailed     = errors.New("gift configuration is not valid for finalization")
	ErrUnsupportedQRSize    = errors.New("unsupported qr code size")
	ErrSearchResultDiscard  = errors.New("stale search result discarded")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrMusicSearchFailed    = errors.New("music catalog search failed")
	ErrUnsupportedThemeKind = errors.New("unsupported theme")
)

type ViolationKind string

const (
	ViolationMissingField       ViolationKind = "MISSING_FIELD"
	ViolationInvalidDate        ViolationKind = "INVALID_DATE"
	ViolationPhotoLimitExceeded ViolationKind = "PHOTO_LIMIT_EXCEEDED"
	ViolationFeatureNotEntitled ViolationKind = "FEATURE_NOT_ENTITLED"
)

// Violation is one user-fixable validation failure. Validation collects every
// violation so the UI can surface them all at once (never just the first).
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Field   string        `json:"field"`
	Feature Feature       `json:"feature,omitempty"`
	Limit   int           `json:"limit,omitempty"`
	Actual  int           `json:"actual,omitempty"`
	Value   string        `json:"value,omitempty"`
}

func (v Violation) Error() string {
	switch v.Kind {
	case ViolationMissingField:
		return fmt.Sprintf("required field %q is empty", v.Field)
	case ViolationInvalidDate:
		return fmt.Sprintf("field %q is not a valid calendar date: %q", v.Field, v.Value)
	case ViolationPhotoLimitExceeded:
		return fmt.Sprintf("photo limit exceeded: plan allows %d, got %d", v.Limit, v.Actual)
	case ViolationFeatureNotEntitled:
		return fmt.Sprintf("field %q requires feature %q which the plan does not include", v.Field, v.Feature)
	}
	return string(v.Kind)
}

func MissingField(field string) Violation {
	return Violation{Kind: ViolationMissingField, Field: field}
}

func InvalidDate(field, value string) Violation {
	return Violation{Kind: ViolationInvalidDate, Field: field, Value: value}
}

func PhotoLimitExceeded(limit, actual int) Violation {
	return Violation{Kind: ViolationPhotoLimitExceeded, Field: "photos", Limit: limit, Actual: actual}
}

func FeatureNotEntitled(field string, feature Feature) Violation {
	return Violation{Kind: ViolationFeatureNotEntitled, Field: field, Feature: feature}
}

// ValidationErrors carries the complete violation list across the service
// boundary as a single error value.
type ValidationErrors struct {
	Violations []Violation
}

func (e *ValidationErrors) Error() string {
	return fmt.Sprintf("%d validation violation(s)", len(e.Violations))
}

func (e *ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}
