package integration

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrIntegrationNotFound    = errors.New("integration: integration not found")
	ErrIntegrationNotActive   = errors.New("integration: integration is not active")
	ErrInvalidStateTransition = errors.New("integration: invalid state transition")
	ErrExternalRecordNotFound = errors.New("integration: external record not found")
	ErrMappingNotFound        = errors.New("integration: mapping not found")
	ErrMappingCodeMismatch    = errors.New("integration: mapping resolved to a different external code")
	ErrAdapterNotRegistered   = errors.New("integration: no adapter registered for API type")
	ErrModelNotRegistered     = errors.New("integration: no internal model registered for entity kind")
	ErrSettingNotFound        = errors.New("integration: setting not found")
	ErrWebhookNotConfigured   = errors.New("integration: no webhook line configured for topic")
	ErrWebhookInactive        = errors.New("integration: webhook line is inactive for topic")
	ErrWebhookBadSignature    = errors.New("integration: webhook signature verification failed")
	ErrWebhookHostMismatch    = errors.New("integration: forwarded host does not match shop URL")
	ErrWebhookMissingHeaders  = errors.New("integration: required webhook headers missing")
)

// DependencyDirection says which side of a mapping a failed operation was
// waiting for. It is persisted together with failed jobs so they can be
// re-queued once the missing mapping or external record appears.
type DependencyDirection string

const (
	// DependencyFromExternal waits for an external code to gain an internal side.
	DependencyFromExternal DependencyDirection = "FROM_EXTERNAL"
	// DependencyToExternal waits for an internal record to gain an external side.
	DependencyToExternal DependencyDirection = "TO_EXTERNAL"
	// DependencyExternalExists waits for the external record itself to appear.
	DependencyExternalExists DependencyDirection = "EXTERNAL_EXISTS"
)

// PendingDependency is the structured "retry when mapping X becomes available"
// registration written alongside a failed job. It replaces parsing exception
// text with typed fields.
type PendingDependency struct {
	Direction     DependencyDirection
	Kind          EntityKind
	Key           string
	IntegrationID uuid.UUID
}

// MappingDependent is implemented by errors whose failure is resolved by a
// later mapping or external-record write.
type MappingDependent interface {
	MappingDependency() PendingDependency
}

// NotMappedFromExternalError reports that an external code had no mapping, or
// a mapping with an empty internal side, when one was required.
type NotMappedFromExternalError struct {
	Kind          EntityKind
	Code          string
	IntegrationID uuid.UUID
}

func (e *NotMappedFromExternalError) Error() string {
	return fmt.Sprintf("integration: %s(code=%s, integration=%s) cannot be mapped to an internal record",
		e.Kind, e.Code, e.IntegrationID)
}

// MappingDependency implements MappingDependent.
func (e *NotMappedFromExternalError) MappingDependency() PendingDependency {
	return PendingDependency{
		Direction:     DependencyFromExternal,
		Kind:          e.Kind,
		Key:           e.Code,
		IntegrationID: e.IntegrationID,
	}
}

// NotMappedToExternalError reports that an internal entity had no mapping when
// one was required.
type NotMappedToExternalError struct {
	Kind          EntityKind
	InternalID    uuid.UUID
	IntegrationID uuid.UUID
}

func (e *NotMappedToExternalError) Error() string {
	return fmt.Sprintf("integration: %s(id=%s, integration=%s) cannot be mapped to an external code",
		e.Kind, e.InternalID, e.IntegrationID)
}

// MappingDependency implements MappingDependent.
func (e *NotMappedToExternalError) MappingDependency() PendingDependency {
	return PendingDependency{
		Direction:     DependencyToExternal,
		Kind:          e.Kind,
		Key:           e.InternalID.String(),
		IntegrationID: e.IntegrationID,
	}
}

// NoExternalError reports that an external record expected to exist by code
// does not, or that several records share one code.
type NoExternalError struct {
	Kind          EntityKind
	Code          string
	IntegrationID uuid.UUID
	Reason        string
}

func (e *NoExternalError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "external record does not exist"
	}
	return fmt.Sprintf("integration: %s(code=%s, integration=%s): %s",
		e.Kind, e.Code, e.IntegrationID, reason)
}

// MappingDependency implements MappingDependent.
func (e *NoExternalError) MappingDependency() PendingDependency {
	return PendingDependency{
		Direction:     DependencyExternalExists,
		Kind:          e.Kind,
		Key:           e.Code,
		IntegrationID: e.IntegrationID,
	}
}

// NoReferenceFieldError reports that an internal model was asked to auto-match
// by reference but declares no internal reference field.
type NoReferenceFieldError struct {
	Kind EntityKind
}

func (e *NoReferenceFieldError) Error() string {
	return fmt.Sprintf("integration: no internal reference field defined for entity kind %s", e.Kind)
}

// ImportError reports a payload or business-rule violation during import:
// bad schema, missing required configuration, cross-variant mapping conflict,
// or an untranslated required field. It is surfaced to the operator and never
// retried automatically.
type ImportError struct {
	Message string
}

func (e *ImportError) Error() string {
	return "integration: " + e.Message
}

// NewImportError builds an ImportError from a format string.
func NewImportError(format string, args ...any) *ImportError {
	return &ImportError{Message: fmt.Sprintf(format, args...)}
}

// AsMappingDependent extracts the structured dependency from err if it (or a
// wrapped error) blocks on a mapping.
func AsMappingDependent(err error) (PendingDependency, bool) {
	var dep MappingDependent
	if errors.As(err, &dep) {
		return dep.MappingDependency(), true
	}
	return PendingDependency{}, false
}
