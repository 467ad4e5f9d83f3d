package http

import (
	"github.com/flowcup/registration-api/internal/application/notify"
	"github.com/flowcup/registration-api/internal/application/registration"
	"github.com/flowcup/registration-api/internal/application/verification"
	"github.com/flowcup/registration-api/internal/infrastructure/smtp"
	"github.com/flowcup/registration-api/internal/pkg/credential"
	"github.com/flowcup/registration-api/internal/transport/http/handler"
)

// Deps holds the injectable collaborators for the router. Both stores are
// interfaces so the memory and DynamoDB backends swap without touching the
// state-machine logic. Notifier, Answerer and Mailer are optional; nil
// disables the corresponding side channel.
type Deps struct {
	VerificationRepo verification.Repository
	RegistrationRepo registration.Repository
	Notifier         notify.Notifier
	Answerer         handler.CallbackAnswerer
	Mailer           smtp.Mailer
	CredentialSink   credential.Sink
}
