package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/remote"
)

// ErrInvalidCredentials is reported by the local authenticator when
// the login/password pair is not recognized.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RemoteAuthenticator issues tokens through the auth service.
type RemoteAuthenticator struct {
	client *remote.Client
}

// NewRemoteAuthenticator wraps the remote services client
func NewRemoteAuthenticator(client *remote.Client) *RemoteAuthenticator {
	return &RemoteAuthenticator{client: client}
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, login, password string) (string, error) {
	resp, err := a.client.Login(ctx, login, password)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (a *RemoteAuthenticator) Register(ctx context.Context, login, password, role string) (string, error) {
	resp, err := a.client.Register(ctx, login, password, role)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// LocalAuthenticator accepts a fixed set of development users and
// mints deterministic-format tokens. Local mode only.
type LocalAuthenticator struct {
	users map[string]string // login → password
	clock func() time.Time
}

// NewLocalAuthenticator creates the local-mode authenticator with the
// built-in development users.
func NewLocalAuthenticator() *LocalAuthenticator {
	return &LocalAuthenticator{
		users: map[string]string{
			"admin":           "123456",
			"teste@teste.com": "teste123",
			"demo":            "demo",
		},
		clock: time.Now,
	}
}

func (a *LocalAuthenticator) Authenticate(ctx context.Context, login, password string) (string, error) {
	expected, ok := a.users[login]
	if !ok || expected != password {
		return "", ErrInvalidCredentials
	}
	return a.mintToken(login), nil
}

// Register accepts any new login in local mode
func (a *LocalAuthenticator) Register(ctx context.Context, login, password, role string) (string, error) {
	if login == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	a.users[login] = password
	return a.mintToken(login), nil
}

func (a *LocalAuthenticator) mintToken(login string) string {
	return fmt.Sprintf("local-%s-%d", login, a.clock().UnixNano())
}
