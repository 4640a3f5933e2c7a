package services

import (
	"time"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/logger"
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SessionCache caches validated credentials so each request does not pay the
// bcrypt comparison. The redis client implements it.
type SessionCache interface {
	CacheSession(apiKey string, keyID uint, ttl time.Duration) error
	SessionKeyID(apiKey string) (uint, bool, error)
	ClearSession(apiKey string) error
}

type AuthService interface {
	// ValidateKey returns ErrCredentialRejected for any credential that does
	// not match an active key; the caller must force re-authentication.
	ValidateKey(key string) error
	// IssueKey creates a new key and returns the plaintext exactly once.
	IssueKey(name string) (string, error)
	// RevokeSession drops a cached credential (logout, or after rejection).
	RevokeSession(key string) error
}

type authService struct {
	keyRepo    repository.APIKeyRepository
	sessions   SessionCache
	sessionTTL time.Duration
}

func NewAuthService(keyRepo repository.APIKeyRepository, sessions SessionCache, sessionTimeout int) AuthService {
	return &authService{
		keyRepo:    keyRepo,
		sessions:   sessions,
		sessionTTL: time.Duration(sessionTimeout) * time.Second,
	}
}

func (s *authService) ValidateKey(key string) error {
	if key == "" {
		return apperrors.ErrCredentialRejected
	}

	if s.sessions != nil {
		if _, ok, err := s.sessions.SessionKeyID(key); err == nil && ok {
			return nil
		} else if err != nil {
			logger.Log.Warn("session cache lookup failed", zap.Error(err))
		}
	}

	keys, err := s.keyRepo.GetActive()
	if err != nil {
		return storeErr(err)
	}
	for _, stored := range keys {
		if bcrypt.CompareHashAndPassword([]byte(stored.KeyHash), []byte(key)) == nil {
			if err := s.keyRepo.Touch(stored.ID); err != nil {
				logger.Log.Warn("failed to record key use", zap.Error(err))
			}
			if s.sessions != nil {
				if err := s.sessions.CacheSession(key, stored.ID, s.sessionTTL); err != nil {
					logger.Log.Warn("failed to cache session", zap.Error(err))
				}
			}
			return nil
		}
	}

	// Rejected credentials must not linger in the cache.
	if s.sessions != nil {
		if err := s.sessions.ClearSession(key); err != nil {
			logger.Log.Warn("failed to clear session", zap.Error(err))
		}
	}
	return apperrors.ErrCredentialRejected
}

func (s *authService) IssueKey(name string) (string, error) {
	plaintext := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	key := &models.APIKey{Name: name, KeyHash: string(hash), Active: true}
	if err := s.keyRepo.Create(key); err != nil {
		return "", storeErr(err)
	}
	return plaintext, nil
}

func (s *authService) RevokeSession(key string) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.ClearSession(key)
}
