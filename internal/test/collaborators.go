package test

import (
	"context"
	"sync"

	"github.com/adonay-express/orderflow/internal/notify"
)

// ComposeCall records one Compose invocation.
type ComposeCall struct {
	Kind    notify.Kind
	Payload notify.Payload
}

// ComposerStub returns canned drafts.
type ComposerStub struct {
	sync.Mutex

	Draft *notify.Draft
	Err   error
	Calls []ComposeCall
}

// Compose records the call and returns the configured draft.
func (s *ComposerStub) Compose(ctx context.Context, kind notify.Kind, payload notify.Payload) (*notify.Draft, error) {
	s.Lock()
	defer s.Unlock()
	s.Calls = append(s.Calls, ComposeCall{Kind: kind, Payload: payload})
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Draft != nil {
		return s.Draft, nil
	}
	return &notify.Draft{Subject: "Actualización de tu pedido", Body: "<p>Hola</p>"}, nil
}

// SendCall records one Send invocation.
type SendCall struct {
	To      string
	Subject string
	Body    string
}

// TransportStub records outbound notifications.
type TransportStub struct {
	sync.Mutex

	MessageID string
	Err       error
	Calls     []SendCall
}

// Send records the call and returns the configured outcome.
func (s *TransportStub) Send(ctx context.Context, to, subject, body string) (string, error) {
	s.Lock()
	defer s.Unlock()
	s.Calls = append(s.Calls, SendCall{To: to, Subject: subject, Body: body})
	if s.Err != nil {
		return "", s.Err
	}
	if s.MessageID != "" {
		return s.MessageID, nil
	}
	return "msg-stub", nil
}
