package ports

import "context"

// Mailer is the outbound mail contract. Both sends are best-effort: the
// application dispatches them asynchronously and absorbs failures.
type Mailer interface {
	SendActivationMail(ctx context.Context, to, activationLink string) error
	SendPasswordResetMail(ctx context.Context, to, resetLink string) error
}
