package authz

import (
	"errors"
	"fmt"

	apperrors "imagehub/pkg/errors"
)

// Reason classifies why the authorizer denied a request. Reasons are stable
// machine-readable codes surfaced in responses and audit records.
type Reason string

const (
	ReasonNoRule           Reason = "no_rule"
	ReasonInsufficientRole Reason = "insufficient_role"
	ReasonCrossTeam        Reason = "cross_team"
	ReasonNotOwnUser       Reason = "not_own_user"
	ReasonUserOutsideTeam  Reason = "user_outside_team"
	ReasonNotOwnKey        Reason = "not_own_key"
	ReasonKeyOutsideTeam   Reason = "key_outside_team"
	ReasonImageOutsideTeam Reason = "image_outside_team"
	ReasonNotOwnImage      Reason = "not_own_image"
)

// DeniedError is the forbidden verdict produced by the Authorizer. It wraps
// apperrors.ErrForbidden so callers keep matching with errors.Is while the
// Reason stays available through errors.As.
type DeniedError struct {
	Reason  Reason
	Message string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Reason)
}

func (e *DeniedError) Unwrap() error {
	return apperrors.ErrForbidden
}

func denied(reason Reason, message string) error {
	return &DeniedError{Reason: reason, Message: message}
}

// ReasonOf extracts the denial reason from err. The second return is false
// when err does not carry an authorization verdict.
func ReasonOf(err error) (Reason, bool) {
	var de *DeniedError
	if errors.As(err, &de) {
		return de.Reason, true
	}
	return "", false
}
