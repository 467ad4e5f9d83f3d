package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowcup/registration-api/internal/application/verification"
	"github.com/flowcup/registration-api/internal/domain"
	"github.com/flowcup/registration-api/internal/infrastructure/memstore"
	"github.com/flowcup/registration-api/internal/pkg/credential"
)

// --- mocks ---

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Alert(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *mockNotifier) RegistrationSubmitted(ctx context.Context, reg *domain.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- fixtures ---

type fixture struct {
	store         *memstore.Store
	verifications verification.Service
	svc           Service
}

func newFixture(t *testing.T, deps ServiceDeps) *fixture {
	t.Helper()
	store := memstore.New()
	deps.Registrations = store.Registrations()
	deps.Verifications = store.Verifications()
	return &fixture{
		store:         store,
		verifications: verification.NewService(store.Verifications(), verification.PolicyAdmin),
		svc:           NewService(deps),
	}
}

func submitReq() SubmitRequest {
	return SubmitRequest{
		AccessCode: "FLOW2025",
		IngameID:   "player1",
		Email:      "a@b.com",
		Password:   "hunter2",
		IDCode:     "111111",
		EmailCode:  "222222",
	}
}

// --- Submit ---

func TestSubmit_UnverifiedIsStillAccepted(t *testing.T) {
	f := newFixture(t, ServiceDeps{})

	id, err := f.svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	reg, err := f.store.Registrations().FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, reg.Status)
	assert.False(t, reg.IDVerified)
	assert.False(t, reg.EmailVerified)
}

func TestSubmit_MissingFields(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	for _, req := range []SubmitRequest{
		{IngameID: "p", Email: "a@b.com"},
		{AccessCode: "FLOW2025", Email: "a@b.com"},
		{AccessCode: "FLOW2025", IngameID: "p"},
		{AccessCode: "  ", IngameID: "p", Email: "a@b.com"},
	} {
		_, err := f.svc.Submit(ctx, req)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	}

	regs, _ := f.store.Registrations().List(ctx)
	assert.Empty(t, regs)
}

func TestSubmit_PasswordRequiredWhenConfigured(t *testing.T) {
	f := newFixture(t, ServiceDeps{RequirePassword: true})

	req := submitReq()
	req.Password = ""
	_, err := f.svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSubmit_SnapshotsVerificationAtSubmissionTime(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	idReqID, err := f.verifications.RequestCode(ctx, domain.ClassID, verification.CodeRequest{
		AccessCode: "FLOW2025", IngameID: "player1", Email: "a@b.com",
	})
	require.NoError(t, err)
	emailReqID, err := f.verifications.RequestCode(ctx, domain.ClassEmail, verification.CodeRequest{
		AccessCode: "FLOW2025", Email: "a@b.com",
	})
	require.NoError(t, err)
	require.NoError(t, f.verifications.SetStatus(ctx, domain.ClassID, idReqID, domain.VerificationValid))

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	reg, _ := f.store.Registrations().FindByID(ctx, id)
	assert.True(t, reg.IDVerified)
	assert.False(t, reg.EmailVerified)

	// A later decision must not retroactively flip the snapshot.
	require.NoError(t, f.verifications.SetStatus(ctx, domain.ClassEmail, emailReqID, domain.VerificationValid))
	reg, _ = f.store.Registrations().FindByID(ctx, id)
	assert.False(t, reg.EmailVerified)
}

func TestSubmit_NotifierFailureDoesNotFailSubmission(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("RegistrationSubmitted", mock.Anything, mock.Anything).Return(errors.New("telegram down"))

	f := newFixture(t, ServiceDeps{Notifier: notifier})

	id, err := f.svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	notifier.AssertExpectations(t)
}

func TestSubmit_NotifiesAdmin(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("RegistrationSubmitted", mock.Anything, mock.MatchedBy(func(reg *domain.Registration) bool {
		return reg.Email == "a@b.com" && reg.Status == domain.RegistrationPending
	})).Return(nil)

	f := newFixture(t, ServiceDeps{Notifier: notifier})

	_, err := f.svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestSubmit_BcryptSinkHashesPassword(t *testing.T) {
	f := newFixture(t, ServiceDeps{Credentials: credential.Bcrypt{}})
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	reg, _ := f.store.Registrations().FindByID(ctx, id)
	require.NotNil(t, reg.Password)
	assert.NotEqual(t, "hunter2", *reg.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*reg.Password), []byte("hunter2")))
}

func TestSubmit_EmptyPasswordStoredAsNil(t *testing.T) {
	f := newFixture(t, ServiceDeps{})

	req := submitReq()
	req.Password = ""
	id, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	reg, _ := f.store.Registrations().FindByID(context.Background(), id)
	assert.Nil(t, reg.Password)
}

// --- Approve / Decline ---

func TestApprove_SetsSlotLinkNote(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	require.NoError(t, f.svc.Approve(ctx, id, "A3", "https://bracket.example/a3", "paid"))

	reg, _ := f.store.Registrations().FindByID(ctx, id)
	assert.Equal(t, domain.RegistrationApproved, reg.Status)
	require.NotNil(t, reg.Slot)
	assert.Equal(t, "A3", *reg.Slot)
	require.NotNil(t, reg.Link)
	assert.Equal(t, "https://bracket.example/a3", *reg.Link)
	require.NotNil(t, reg.AdminNote)
	assert.Equal(t, "paid", *reg.AdminNote)
}

func TestDecline_DefaultsReasonToOther(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	require.NoError(t, f.svc.Decline(ctx, id, "", ""))

	reg, _ := f.store.Registrations().FindByID(ctx, id)
	assert.Equal(t, domain.RegistrationDeclined, reg.Status)
	require.NotNil(t, reg.DeclineReason)
	assert.Equal(t, domain.DeclineReasonOther, *reg.DeclineReason)
	assert.Nil(t, reg.AdminNote)
}

func TestDecisions_LastCallWins(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	require.NoError(t, f.svc.Approve(ctx, id, "A1", "", ""))
	require.NoError(t, f.svc.Decline(ctx, id, "no_show", ""))

	reg, _ := f.store.Registrations().FindByID(ctx, id)
	assert.Equal(t, domain.RegistrationDeclined, reg.Status)

	require.NoError(t, f.svc.Approve(ctx, id, "A2", "", ""))
	reg, _ = f.store.Registrations().FindByID(ctx, id)
	assert.Equal(t, domain.RegistrationApproved, reg.Status)
	assert.Nil(t, reg.DeclineReason)
}

func TestApproveDecline_UnknownID(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Approve(ctx, "404", "", "", ""), domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.Decline(ctx, "404", "", ""), domain.ErrNotFound)
}

func TestDecisionEmails_BestEffort(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendEmail", "a@b.com", "Registration approved", mock.Anything).Return(nil).Once()
	mailer.On("SendEmail", "a@b.com", "Registration declined", mock.Anything).Return(errors.New("smtp down")).Once()

	f := newFixture(t, ServiceDeps{Mailer: mailer})
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	require.NoError(t, f.svc.Approve(ctx, id, "A1", "", ""))
	// Mail failure never fails the decision.
	require.NoError(t, f.svc.Decline(ctx, id, "late", ""))
	mailer.AssertExpectations(t)
}

// --- Status ---

func TestStatus(t *testing.T) {
	f := newFixture(t, ServiceDeps{})
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, submitReq())
	require.NoError(t, err)

	status, err := f.svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, status)

	_, err = f.svc.Status(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
