package mailer

import (
	goerrors "github.com/goliatone/go-errors"
)

// TextCodeDeliveryFailed identifies a notification that could not be handed
// to the mail transport.
const TextCodeDeliveryFailed = "NOTIFICATION_DELIVERY_FAILED"

// deliveryFailed wraps a transport failure behind a stable, kind-specific
// message. The raw transport error travels as the cause for logs, never for
// clients.
func deliveryFailed(message string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryOperation, message).
		WithTextCode(TextCodeDeliveryFailed)
}

// IsDeliveryFailed reports whether err is a notification delivery failure.
func IsDeliveryFailed(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	return goerrors.As(err, &richErr) && richErr.TextCode == TextCodeDeliveryFailed
}
