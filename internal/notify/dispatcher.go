package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// Draft is generated notification content.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Composer turns order facts into notification content. Content generation
// is an external collaborator; its failures are ComposeError.
type Composer interface {
	Compose(ctx context.Context, kind Kind, payload Payload) (*Draft, error)
}

// Transport delivers one notification and returns the transport-assigned
// message id. Its failures are SendError. Retries, if any, belong to the
// transport itself or to the caller.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}

// ComposeError marks a content-generation failure.
type ComposeError struct {
	Err error
}

func (e *ComposeError) Error() string { return fmt.Sprintf("compose notification: %v", e.Err) }
func (e *ComposeError) Unwrap() error { return e.Err }

// SendError marks a transport failure.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send notification: %v", e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// Result reports the outcome of one dispatch attempt.
type Result struct {
	MessageID string
	Err       error
}

// Sent reports whether the notification went out.
func (r Result) Sent() bool { return r.Err == nil }

// Dispatcher maps an order transition to a notification and hands it to the
// transport. Exactly one outbound attempt per call; collaborator failures are
// captured in the result, never propagated as panics.
type Dispatcher struct {
	composer  Composer
	transport Transport
	logger    *slog.Logger
}

// NewDispatcher constructs a notification dispatcher.
func NewDispatcher(composer Composer, transport Transport, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{composer: composer, transport: transport, logger: logger}
}

// Dispatch generates content for the payload's target status and sends it.
func (d *Dispatcher) Dispatch(ctx context.Context, payload Payload) Result {
	kind := KindFor(payload.NewStatus)

	draft, err := d.composer.Compose(ctx, kind, payload)
	if err != nil {
		return Result{Err: &ComposeError{Err: err}}
	}
	if draft == nil || draft.Body == "" {
		return Result{Err: &ComposeError{Err: fmt.Errorf("empty content for status %s", payload.NewStatus)}}
	}

	id, err := d.transport.Send(ctx, payload.CustomerEmail, draft.Subject, draft.Body)
	if err != nil {
		return Result{Err: &SendError{Err: err}}
	}

	d.logger.Info("notification sent",
		slog.String("order", payload.OrderNumber),
		slog.String("status", string(payload.NewStatus)),
		slog.String("message_id", id),
	)
	return Result{MessageID: id}
}
