package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/flowcup/registration-api/internal/application/notify"
	"github.com/flowcup/registration-api/internal/application/registration"
	"github.com/flowcup/registration-api/internal/application/verification"
	"github.com/flowcup/registration-api/internal/config"
	"github.com/flowcup/registration-api/internal/transport/http/handler"
	appmiddleware "github.com/flowcup/registration-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second with a burst of 10 on the public write endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(deps.VerificationRepo, verification.Policy(cfg.VerificationPolicy))
	registrationSvc := registration.NewService(registration.ServiceDeps{
		Registrations:   deps.RegistrationRepo,
		Verifications:   deps.VerificationRepo,
		Notifier:        deps.Notifier,
		Mailer:          deps.Mailer,
		Credentials:     deps.CredentialSink,
		RequirePassword: cfg.RequirePassword,
	})
	notifySvc := notify.NewService(deps.Notifier)

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(verificationSvc)
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	adminH := handler.NewAdminHandler(verificationSvc, registrationSvc)
	notifyH := handler.NewNotifyHandler(notifySvc)
	webhookH := handler.NewWebhookHandler(registrationSvc, deps.Answerer)

	r.Get("/healthz", healthH.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/request-id-code", verificationH.RequestIDCode)
		r.With(sensitiveRL.Limit).Post("/verify-id-code", verificationH.VerifyIDCode)
		r.With(sensitiveRL.Limit).Post("/request-email-code", verificationH.RequestEmailCode)
		r.With(sensitiveRL.Limit).Post("/verify-email-code", verificationH.VerifyEmailCode)
		r.With(sensitiveRL.Limit).Post("/submit-registration", registrationH.Submit)
		r.Get("/check-status/{uid}", registrationH.CheckStatus)
		r.Post("/notify-admin", notifyH.Alert)
		r.Post("/tg-webhook", webhookH.Handle)
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(appmiddleware.AdminToken(cfg.AdminToken))

		r.Get("/state", adminH.State)
		r.Post("/id-code/{action}", adminH.IDCodeAction)
		r.Post("/email-code/{action}", adminH.EmailCodeAction)
		r.Post("/registration/approve", adminH.Approve)
		r.Post("/registration/decline", adminH.Decline)
	})

	return r
}
