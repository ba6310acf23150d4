package apperr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Domain error taxonomy. Services return these unconverted; the HTTP adaptor
// is the only place they are translated into status codes.

// ValidationError marks caller-fixable input: bad ids, inverted intervals,
// negative amounts. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError marks an absent referenced entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource string, id uuid.UUID) error {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

// AvailabilityError marks an interval conflict. Distinct from validation so a
// caller can offer alternate dates; carries the contested resource and the
// requested interval.
type AvailabilityError struct {
	EquipmentID uuid.UUID
	Start       time.Time
	End         time.Time
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("equipment %s is not available from %s to %s",
		e.EquipmentID,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
	)
}

func Availability(equipmentID uuid.UUID, start, end time.Time) error {
	return &AvailabilityError{EquipmentID: equipmentID, Start: start, End: end}
}

// StatusTransitionError marks a booking or payment status request outside the
// transition graph. Persisted status is unchanged when it is returned.
type StatusTransitionError struct {
	Entity    string
	Current   string
	Requested string
	Allowed   []string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("%s status %s cannot change to %s (allowed: %s)",
		e.Entity, e.Current, e.Requested, strings.Join(e.Allowed, ", "))
}

func StatusTransition(entity, current, requested string, allowed []string) error {
	return &StatusTransitionError{Entity: entity, Current: current, Requested: requested, Allowed: allowed}
}

// StateError is the equipment counterpart of StatusTransitionError.
type StateError struct {
	Current   string
	Requested string
	Allowed   []string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("equipment status %s cannot change to %s (allowed: %s)",
		e.Current, e.Requested, strings.Join(e.Allowed, ", "))
}

func State(current, requested string, allowed []string) error {
	return &StateError{Current: current, Requested: requested, Allowed: allowed}
}

// BusinessError marks a higher-level rule violation, e.g. retiring equipment
// that still has active bookings.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func Business(format string, args ...any) error {
	return &BusinessError{Message: fmt.Sprintf(format, args...)}
}

// ---- predicates used at the boundary ----

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsAvailability(err error) bool {
	var e *AvailabilityError
	return errors.As(err, &e)
}

func IsStatusTransition(err error) bool {
	var e *StatusTransitionError
	return errors.As(err, &e)
}

func IsState(err error) bool {
	var e *StateError
	return errors.As(err, &e)
}

func IsBusiness(err error) bool {
	var e *BusinessError
	return errors.As(err, &e)
}

// IsDomain reports whether err belongs to the taxonomy at all. Anything else
// is an unexpected internal failure and is converted to a generic 500 at the
// boundary after logging.
func IsDomain(err error) bool {
	return IsValidation(err) || IsNotFound(err) || IsAvailability(err) ||
		IsStatusTransition(err) || IsState(err) || IsBusiness(err)
}
