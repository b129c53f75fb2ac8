package model

import "context"

// ActivationNotifier delivers the account activation message. The message
// embeds both the recipient address and the literal token. Implementations
// report failure through the returned error and perform no retries; retry
// policy belongs to the caller.
type ActivationNotifier interface {
	SendActivation(ctx context.Context, email, token string) error
}
