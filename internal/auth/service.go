package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// Session is the persisted login record. The token is an opaque
// bearer string issued by the auth service.
type Session struct {
	Token     string    `json:"token"`
	Login     string    `json:"login"`
	LoginTime time.Time `json:"loginTime"`
}

// Authenticator issues tokens for credentials. Implemented by the
// remote client; faked in tests.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (token string, err error)
	Register(ctx context.Context, login, password, role string) (token string, err error)
}

// Service manages the persisted user session.
type Service struct {
	store  storage.Store
	authn  Authenticator
	logger *logger.Logger
	clock  func() time.Time
}

// NewService creates a session service
func NewService(store storage.Store, authn Authenticator, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		authn:  authn,
		logger: log,
		clock:  time.Now,
	}
}

// Login authenticates and persists the session
func (s *Service) Login(ctx context.Context, ownerID, login, password string) (Session, error) {
	token, err := s.authn.Authenticate(ctx, login, password)
	if err != nil {
		return Session{}, err
	}
	return s.saveSession(ctx, ownerID, token, login)
}

// Register creates the account and persists the session
func (s *Service) Register(ctx context.Context, ownerID, login, password, role string) (Session, error) {
	token, err := s.authn.Register(ctx, login, password, role)
	if err != nil {
		return Session{}, err
	}
	return s.saveSession(ctx, ownerID, token, login)
}

// CurrentSession loads the persisted session. Absence and read
// failures both report no session.
func (s *Service) CurrentSession(ctx context.Context, ownerID string) (Session, bool) {
	value, found, err := s.store.Get(ctx, storage.SessionDataKey(ownerID))
	if err != nil {
		s.logger.WithError(err).Warn("Session read failed")
		return Session{}, false
	}
	if !found {
		return Session{}, false
	}

	var session Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		s.logger.WithError(err).Warn("Session record corrupt")
		return Session{}, false
	}
	return session, true
}

// IsAuthenticated reports whether a session exists
func (s *Service) IsAuthenticated(ctx context.Context, ownerID string) bool {
	_, ok := s.CurrentSession(ctx, ownerID)
	return ok
}

// Token returns the bearer token, if any
func (s *Service) Token(ctx context.Context, ownerID string) (string, bool) {
	value, found, err := s.store.Get(ctx, storage.SessionTokenKey(ownerID))
	if err != nil || !found {
		return "", false
	}
	return value, true
}

// Logout clears the persisted session
func (s *Service) Logout(ctx context.Context, ownerID string) error {
	if err := s.store.Delete(ctx, storage.SessionTokenKey(ownerID)); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	if err := s.store.Delete(ctx, storage.SessionDataKey(ownerID)); err != nil {
		return fmt.Errorf("failed to clear session data: %w", err)
	}

	s.logger.WithField("owner", ownerID).Info("Session cleared")
	return nil
}

func (s *Service) saveSession(ctx context.Context, ownerID, token, login string) (Session, error) {
	session := Session{
		Token:     token,
		Login:     login,
		LoginTime: s.clock(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return Session{}, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.store.Set(ctx, storage.SessionTokenKey(ownerID), token); err != nil {
		return Session{}, fmt.Errorf("failed to save session token: %w", err)
	}
	if err := s.store.Set(ctx, storage.SessionDataKey(ownerID), string(data)); err != nil {
		return Session{}, fmt.Errorf("failed to save session data: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"owner": ownerID,
		"login": login,
	}).Info("Session saved")

	return session, nil
}
