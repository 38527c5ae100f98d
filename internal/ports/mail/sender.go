package mail

import "context"

// Sender envía correos transaccionales (hoy: el link de confirmación de cuenta).
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
