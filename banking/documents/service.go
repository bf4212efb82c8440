package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/arelgame/coinhouse/banking/command/joinaccount"
	"github.com/arelgame/coinhouse/dispatch"
	"github.com/arelgame/coinhouse/ledger"
)

// Identity is the resolved, display-ready form of a persona.
type Identity struct {
	Key         string
	DisplayName string
}

// PersonaDirectory resolves personas to their identity. Backed by the game's
// character and organization registries in production, by fakes in tests.
type PersonaDirectory interface {
	Resolve(ctx context.Context, persona ledger.PersonaID) (Identity, error)
}

// Activation is the outcome of activating a document. Consumed tells the
// carrier whether to destroy the document; the message is shown to the
// activating player either way.
type Activation struct {
	Consumed bool
	Message  string
}

// Service activates capability documents by dispatching a join command for
// the activating persona.
type Service struct {
	dispatcher *dispatch.CommandDispatcher
	directory  PersonaDirectory
	logger     ledger.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for activation diagnostics.
func WithServiceLogger(logger ledger.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new document activation Service.
func NewService(dispatcher *dispatch.CommandDispatcher, directory PersonaDirectory, opts ...ServiceOption) *Service {
	service := &Service{
		dispatcher: dispatcher,
		directory:  directory,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Activate joins the activating persona to the document's account.
//
// The issuer activating their own document is rejected without consuming it;
// a share is a grant to somebody else. Business rejections from the join
// itself (already a holder, account gone) also keep the document intact.
func (s *Service) Activate(
	ctx context.Context,
	document CapabilityDocument,
	activator ledger.PersonaID,
	at time.Time,
) (Activation, error) {
	if err := document.validate(); err != nil {
		return Activation{Consumed: false, Message: err.Error()}, nil
	}

	if activator.IsZero() {
		return Activation{Consumed: false, Message: "activating persona must be set"}, nil
	}

	issuer, err := s.directory.Resolve(ctx, document.Issuer)
	if err != nil {
		return Activation{}, fmt.Errorf("resolving issuer: %w", err)
	}

	identity, err := s.directory.Resolve(ctx, activator)
	if err != nil {
		return Activation{}, fmt.Errorf("resolving activator: %w", err)
	}

	if issuer.Key == identity.Key {
		s.logDebug("self-activation rejected",
			"issuer", document.Issuer.String(), "account", document.Account.String())

		return Activation{
			Consumed: false,
			Message:  "you cannot activate a share you issued yourself",
		}, nil
	}

	command := joinaccount.BuildCommand(
		document.Account,
		activator,
		document.HolderType,
		document.Role,
		identity.DisplayName,
		at,
	)

	result, err := s.dispatcher.Dispatch(ctx, command)
	if err != nil {
		return Activation{}, fmt.Errorf("dispatching join: %w", err)
	}

	if !result.Success {
		return Activation{Consumed: false, Message: result.ErrorMessage}, nil
	}

	s.logDebug("share activated",
		"account", document.Account.String(),
		"holder", activator.String(),
		"role", string(document.Role))

	return Activation{
		Consumed: true,
		Message:  fmt.Sprintf("you are now a %s of this account", document.Role),
	}, nil
}

func (s *Service) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
