package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

func TestRegister_CreatesActiveAccountWithNormalisedEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	uc := NewRegister(repo, plainHasher{}, nil, nil)

	acc, err := uc.Execute(context.Background(), RegisterInput{
		Name:     " Ada ",
		Email:    "  Ada@Coop.TEST ",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", acc.Name)
	assert.Equal(t, "ada@coop.test", acc.Email)
	assert.Equal(t, "active", acc.Status)
	assert.Equal(t, "hashed:secret1", acc.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	uc := NewRegister(newFakeAccountRepo(), plainHasher{}, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
		code  string
	}{
		{"missing name", RegisterInput{Email: "a@coop.test", Password: "secret1"}, "invalid_name"},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "secret1"}, "invalid_email"},
		{"short password", RegisterInput{Name: "A", Email: "a@coop.test", Password: "123"}, "weak_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			assert.True(t, httperr.IsBusiness(err, tt.code), err)
		})
	}
}

func TestRegister_DomainCheckAndDuplicate(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.seed("taken@coop.test", "secret1", "active")

	reject := func(string) bool { return false }
	_, err := NewRegister(repo, plainHasher{}, reject, nil).Execute(context.Background(), RegisterInput{
		Name: "A", Email: "new@coop.test", Password: "secret1",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))

	_, err = NewRegister(repo, plainHasher{}, nil, nil).Execute(context.Background(), RegisterInput{
		Name: "A", Email: "TAKEN@coop.test", Password: "secret1",
	})
	assert.True(t, httperr.IsBusiness(err, "email_already_exists"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	active := repo.seed("ada@coop.test", "secret1", "active")
	repo.seed("off@coop.test", "secret1", "disabled")
	uc := NewLogin(repo, plainHasher{}, fixedIssuer{})
	ctx := context.Background()

	res, err := uc.Execute(ctx, LoginInput{Email: " ADA@coop.test", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, active.ID, res.Account.ID)

	_, err = uc.Execute(ctx, LoginInput{Email: "ada@coop.test", Password: "wrong"})
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = uc.Execute(ctx, LoginInput{Email: "ghost@coop.test", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = uc.Execute(ctx, LoginInput{Email: "off@coop.test", Password: "wrong"})
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = uc.Execute(ctx, LoginInput{Email: "off@coop.test", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, "account_disabled"))
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	repo := newFakeAccountRepo()
	acc := repo.seed("ada@coop.test", "secret1", "active")
	uc := NewChangePassword(repo, plainHasher{}, nil)
	ctx := context.Background()

	err := uc.Execute(ctx, ChangePasswordInput{AccountID: acc.ID, OldPassword: "nope", NewPassword: "another1"})
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	err = uc.Execute(ctx, ChangePasswordInput{AccountID: acc.ID, OldPassword: "secret1", NewPassword: "123"})
	assert.True(t, httperr.IsBusiness(err, "weak_password"))

	require.NoError(t, uc.Execute(ctx, ChangePasswordInput{AccountID: acc.ID, OldPassword: "secret1", NewPassword: "another1"}))

	got, _ := repo.GetByID(ctx, acc.ID)
	assert.Equal(t, "hashed:another1", got.PasswordHash)
}
