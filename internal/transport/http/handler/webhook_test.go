package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcup/registration-api/internal/config"
	transporthttp "github.com/flowcup/registration-api/internal/transport/http"
)

type recordingAnswerer struct {
	callbackID string
	text       string
	calls      int
}

func (a *recordingAnswerer) AnswerCallback(_ context.Context, callbackID, text string) error {
	a.callbackID = callbackID
	a.text = text
	a.calls++
	return nil
}

func TestWebhook_ButtonPressDoesNotMutate(t *testing.T) {
	answerer := &recordingAnswerer{}
	app := newTestApp(t, func(_ *config.Config, deps *transporthttp.Deps) {
		deps.Answerer = answerer
	})

	_, body := app.do(t, http.MethodPost, "/api/submit-registration",
		map[string]string{"accessCode": "FLOW2025", "ingameId": "p1", "email": "a@b.com"}, nil)
	id := body["id"].(string)

	update := map[string]interface{}{
		"callback_query": map[string]string{"id": "cb1", "data": "approve:" + id},
	}
	rec, body := app.do(t, http.MethodPost, "/api/tg-webhook", update, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])

	assert.Equal(t, 1, answerer.calls)
	assert.Equal(t, "cb1", answerer.callbackID)
	assert.Contains(t, answerer.text, id)
	assert.Contains(t, answerer.text, "pending")

	// The button press acknowledged the operator but changed nothing.
	_, body = app.do(t, http.MethodGet, "/api/check-status/"+id, nil, nil)
	assert.Equal(t, "pending", body["status"])
}

func TestWebhook_UnknownUID(t *testing.T) {
	answerer := &recordingAnswerer{}
	app := newTestApp(t, func(_ *config.Config, deps *transporthttp.Deps) {
		deps.Answerer = answerer
	})

	update := map[string]interface{}{
		"callback_query": map[string]string{"id": "cb2", "data": "reject:reg_nope"},
	}
	rec, body := app.do(t, http.MethodPost, "/api/tg-webhook", update, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "UID not found.", answerer.text)
}

func TestWebhook_NonCallbackUpdateIgnored(t *testing.T) {
	answerer := &recordingAnswerer{}
	app := newTestApp(t, func(_ *config.Config, deps *transporthttp.Deps) {
		deps.Answerer = answerer
	})

	rec, body := app.do(t, http.MethodPost, "/api/tg-webhook",
		map[string]interface{}{"message": map[string]string{"text": "hi"}}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Zero(t, answerer.calls)
}
