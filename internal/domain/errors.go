package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed or out-of-bound value supplied
// for a single item while a configuration is in draft.
type ValidationError struct {
	ItemID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ItemID == "" {
		return e.Reason
	}

	return fmt.Sprintf("item %q: %v", e.ItemID, e.Reason)
}

// IncompleteConfigurationError is returned by Submit when required items
// are still unanswered. MissingItemIDs lets the caller highlight the
// corresponding wizard steps.
type IncompleteConfigurationError struct {
	MissingItemIDs []string
}

func (e *IncompleteConfigurationError) Error() string {
	return fmt.Sprintf("configuration is missing required items: %v", strings.Join(e.MissingItemIDs, ", "))
}

// InvalidTransitionError reports an illegal payment status change.
type InvalidTransitionError struct {
	From PaymentStatus
	To   PaymentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal payment status transition from %q to %q", e.From, e.To)
}

// PermissionDeniedError is returned when the access gate rejects an
// exhibitor for a given event.
type PermissionDeniedError struct {
	EventID uint
	UserID  uint
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("user %v is not allowed to configure a stand for event %v", e.UserID, e.EventID)
}

// SchemaResolutionWarning records an item or option id that no longer
// resolves against its schema. Warnings are collected, never thrown:
// pricing and exports degrade to the raw id instead of failing.
type SchemaResolutionWarning struct {
	StandOptionID uint   `json:"stand_option_id,omitempty"`
	ItemID        string `json:"item_id,omitempty"`
	OptionID      string `json:"option_id,omitempty"`
}

func (w SchemaResolutionWarning) String() string {
	switch {
	case w.OptionID != "":
		return fmt.Sprintf("option %q no longer exists on item %q", w.OptionID, w.ItemID)
	case w.ItemID != "":
		return fmt.Sprintf("item %q no longer exists in the schema", w.ItemID)
	default:
		return fmt.Sprintf("stand option %v no longer exists", w.StandOptionID)
	}
}

// UpstreamUnavailableError wraps a failure from an external collaborator
// (schema store, config store, PDF renderer).
type UpstreamUnavailableError struct {
	Upstream string
	Err      error
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("upstream %v unavailable: %v", e.Upstream, e.Err)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Err
}
