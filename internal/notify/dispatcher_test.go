package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func TestDispatcher_SendsQueuedMessages(t *testing.T) {
	s := &recordingSender{}
	d := NewDispatcher(s, 4)

	d.Dispatch(Message{Kind: KindPasswordReset, To: "a@coop.test"})
	d.Dispatch(Message{Kind: KindEmailChange, To: "b@coop.test"})
	require.NoError(t, d.Close(context.Background()))

	require.Len(t, s.sent, 2)
	assert.Equal(t, KindPasswordReset, s.sent[0].Kind)
	assert.Equal(t, "b@coop.test", s.sent[1].To)
}

func TestDispatcher_SenderFailureIsNotFatal(t *testing.T) {
	s := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(s, 4)

	d.Dispatch(Message{Kind: KindPasswordReset})
	d.Dispatch(Message{Kind: KindPasswordReset})
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, s.sent, 2)
}

func TestDispatcher_NilAndAfterClose(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Message{})
	assert.NoError(t, d.Close(context.Background()))

	s := &recordingSender{}
	live := NewDispatcher(s, 1)
	require.NoError(t, live.Close(context.Background()))
	live.Dispatch(Message{Kind: KindEmailChange})
	assert.Empty(t, s.sent)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "notify.password_reset", RoutingKey(KindPasswordReset))
}

func TestLogSender_OmitsBodyByDefault(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	msg := Message{
		Kind:    KindPasswordReset,
		To:      "x@coop.test",
		Subject: "Reset your password",
		Body:    "Use this code: tok-123",
		Meta:    map[string]string{"token": "tok-123"},
	}
	require.NoError(t, LogSender{}.Send(context.Background(), msg))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "x@coop.test", entry.Data["to"])
	assert.Equal(t, KindPasswordReset, entry.Data["kind"])
	line, err := entry.String()
	require.NoError(t, err)
	assert.NotContains(t, line, "tok-123")

	require.NoError(t, LogSender{IncludeBody: true}.Send(context.Background(), msg))
	assert.Equal(t, "Use this code: tok-123", hook.LastEntry().Data["body"])
}
