package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/infra/tokenstore"
	"github.com/BruksfildServices01/garage-coop/internal/notify"
)

func TestPasswordReset_Flow(t *testing.T) {
	repo := newFakeAccountRepo()
	acc := repo.seed("ada@coop.test", "secret1", "active")
	store := tokenstore.NewMemoryStore()
	box := &outbox{}
	notifier := notify.NewDispatcher(box, 10)
	ctx := context.Background()

	request := NewRequestPasswordReset(repo, store, notifier, time.Hour)
	require.NoError(t, request.Execute(ctx, "ADA@coop.test"))
	require.NoError(t, request.Execute(ctx, "ghost@coop.test"), "unknown email looks the same")

	sent := box.flush(notifier)
	require.Len(t, sent, 1)
	assert.Equal(t, notify.KindPasswordReset, sent[0].Kind)
	assert.Equal(t, "ada@coop.test", sent[0].To)
	token := sent[0].Meta["token"]
	require.NotEmpty(t, token)

	reset := NewResetPassword(repo, store, plainHasher{}, nil)

	err := reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "123"})
	assert.True(t, httperr.IsBusiness(err, "weak_password"))

	require.NoError(t, reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "brandnew"}))
	got, _ := repo.GetByID(ctx, acc.ID)
	assert.Equal(t, "hashed:brandnew", got.PasswordHash)

	err = reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "again123"})
	assert.True(t, httperr.IsBusiness(err, "invalid_token"), "tokens are single use")
}

func TestPasswordReset_DisabledAccountGetsNothing(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.seed("off@coop.test", "secret1", "disabled")
	box := &outbox{}
	notifier := notify.NewDispatcher(box, 10)

	uc := NewRequestPasswordReset(repo, tokenstore.NewMemoryStore(), notifier, time.Hour)
	require.NoError(t, uc.Execute(context.Background(), "off@coop.test"))
	assert.Empty(t, box.flush(notifier))
}

func TestEmailChange_Flow(t *testing.T) {
	repo := newFakeAccountRepo()
	acc := repo.seed("ada@coop.test", "secret1", "active")
	repo.seed("bob@coop.test", "secret1", "active")
	store := tokenstore.NewMemoryStore()
	box := &outbox{}
	notifier := notify.NewDispatcher(box, 10)
	ctx := context.Background()

	request := NewRequestEmailChange(repo, store, notifier, nil, time.Hour)

	err := request.Execute(ctx, RequestEmailChangeInput{AccountID: acc.ID, NewEmail: "bob@coop.test"})
	assert.True(t, httperr.IsBusiness(err, "email_already_exists"))

	err = request.Execute(ctx, RequestEmailChangeInput{AccountID: acc.ID, NewEmail: "ada@coop.test"})
	assert.True(t, httperr.IsBusiness(err, "email_unchanged"))

	require.NoError(t, request.Execute(ctx, RequestEmailChangeInput{AccountID: acc.ID, NewEmail: "Ada.New@coop.test"}))

	sent := box.flush(notifier)
	require.Len(t, sent, 1)
	assert.Equal(t, "ada.new@coop.test", sent[0].To)

	confirm := NewConfirmEmailChange(repo, store, nil)

	_, err = confirm.Execute(ctx, "bogus")
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))

	got, err := confirm.Execute(ctx, sent[0].Meta["token"])
	require.NoError(t, err)
	assert.Equal(t, "ada.new@coop.test", got.Email)

	_, err = confirm.Execute(ctx, sent[0].Meta["token"])
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}

func TestEmailChange_ConfirmRechecksConflict(t *testing.T) {
	repo := newFakeAccountRepo()
	acc := repo.seed("ada@coop.test", "secret1", "active")
	store := tokenstore.NewMemoryStore()
	box := &outbox{}
	notifier := notify.NewDispatcher(box, 10)
	ctx := context.Background()

	require.NoError(t, NewRequestEmailChange(repo, store, notifier, nil, time.Hour).
		Execute(ctx, RequestEmailChangeInput{AccountID: acc.ID, NewEmail: "late@coop.test"}))
	sent := box.flush(notifier)
	require.Len(t, sent, 1)

	repo.seed("late@coop.test", "secret1", "active")

	_, err := NewConfirmEmailChange(repo, store, nil).Execute(ctx, sent[0].Meta["token"])
	assert.True(t, httperr.IsBusiness(err, "email_already_exists"))
}
