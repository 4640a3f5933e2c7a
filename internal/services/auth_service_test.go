package services

import (
	"testing"
	"time"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyRepo struct {
	nextID  uint
	keys    []models.APIKey
	touched []uint
}

func (r *fakeKeyRepo) Create(key *models.APIKey) error {
	r.nextID++
	key.ID = r.nextID
	r.keys = append(r.keys, *key)
	return nil
}

func (r *fakeKeyRepo) GetActive() ([]models.APIKey, error) {
	var active []models.APIKey
	for _, key := range r.keys {
		if key.Active {
			active = append(active, key)
		}
	}
	return active, nil
}

func (r *fakeKeyRepo) Touch(id uint) error {
	r.touched = append(r.touched, id)
	return nil
}

type fakeSessionCache struct {
	sessions map[string]uint
	cleared  []string
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string]uint{}}
}

func (c *fakeSessionCache) CacheSession(apiKey string, keyID uint, ttl time.Duration) error {
	c.sessions[apiKey] = keyID
	return nil
}

func (c *fakeSessionCache) SessionKeyID(apiKey string) (uint, bool, error) {
	id, ok := c.sessions[apiKey]
	return id, ok, nil
}

func (c *fakeSessionCache) ClearSession(apiKey string) error {
	delete(c.sessions, apiKey)
	c.cleared = append(c.cleared, apiKey)
	return nil
}

func TestValidateKey(t *testing.T) {
	repo := &fakeKeyRepo{}
	cache := newFakeSessionCache()
	svc := NewAuthService(repo, cache, 3600)

	plaintext, err := svc.IssueKey("default")
	require.NoError(t, err)
	require.NotEmpty(t, plaintext)

	require.NoError(t, svc.ValidateKey(plaintext))
	assert.Equal(t, []uint{1}, repo.touched)
	assert.Contains(t, cache.sessions, plaintext, "validated keys are cached")

	// Second validation is served from the cache without another bcrypt pass.
	touches := len(repo.touched)
	require.NoError(t, svc.ValidateKey(plaintext))
	assert.Len(t, repo.touched, touches)
}

func TestValidateKeyRejected(t *testing.T) {
	repo := &fakeKeyRepo{}
	cache := newFakeSessionCache()
	svc := NewAuthService(repo, cache, 3600)

	_, err := svc.IssueKey("default")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ValidateKey("not-the-key"), apperrors.ErrCredentialRejected)
	assert.ErrorIs(t, svc.ValidateKey(""), apperrors.ErrCredentialRejected)
}

func TestRejectedKeyIsClearedFromCache(t *testing.T) {
	repo := &fakeKeyRepo{}
	cache := newFakeSessionCache()
	svc := NewAuthService(repo, cache, 3600)

	err := svc.ValidateKey("no-such-key")
	assert.ErrorIs(t, err, apperrors.ErrCredentialRejected)
	assert.Equal(t, []string{"no-such-key"}, cache.cleared)
}

func TestRevokeSession(t *testing.T) {
	repo := &fakeKeyRepo{}
	cache := newFakeSessionCache()
	svc := NewAuthService(repo, cache, 3600)

	plaintext, err := svc.IssueKey("default")
	require.NoError(t, err)
	require.NoError(t, svc.ValidateKey(plaintext))
	require.Contains(t, cache.sessions, plaintext)

	require.NoError(t, svc.RevokeSession(plaintext))
	assert.NotContains(t, cache.sessions, plaintext)
}

func TestInactiveKeyRejected(t *testing.T) {
	repo := &fakeKeyRepo{}
	svc := NewAuthService(repo, newFakeSessionCache(), 3600)

	plaintext, err := svc.IssueKey("default")
	require.NoError(t, err)
	repo.keys[0].Active = false

	assert.ErrorIs(t, svc.ValidateKey(plaintext), apperrors.ErrCredentialRejected)
}
