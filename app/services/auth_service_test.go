package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

func TestSignupRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(newFakeAccountStore())

	_, err := svc.Signup(context.Background(), "mallory", "hunter22pass", models.RoleAdmin)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeAccountStore())

	ctx := context.Background()
	_, err := svc.Signup(ctx, "alice", "hunter22pass", models.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "alice", "otherpassword", models.RoleSeller)
	require.ErrorIs(t, err, models.ErrUsernameTaken)
}

func TestSignupNeverStoresPlaintext(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAuthService(store)

	ctx := context.Background()
	account, err := svc.Signup(ctx, "alice", "hunter22pass", models.RoleBuyer)
	require.NoError(t, err)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "hunter22pass", account.PasswordHash)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := NewAuthService(newFakeAccountStore())

	ctx := context.Background()
	_, err := svc.Signup(ctx, "alice", "hunter22pass", models.RoleBuyer)
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "hunter22pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginSameErrorForUnknownUserAndBadPassword(t *testing.T) {
	svc := NewAuthService(newFakeAccountStore())

	ctx := context.Background()
	_, err := svc.Signup(ctx, "alice", "hunter22pass", models.RoleBuyer)
	require.NoError(t, err)

	_, badPass := svc.Login(ctx, "alice", "wrong-password")
	_, noUser := svc.Login(ctx, "nobody", "whatever")

	require.ErrorIs(t, badPass, models.ErrInvalidCredentials)
	require.ErrorIs(t, noUser, models.ErrInvalidCredentials)
}
