package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret",
		Issuer:   "tedtam-car",
		Audience: "tedtam-agents",
		TTL:      time.Hour,
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	token, err := m.Generate("agent-1", "somchai@tedtam.co.th")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.AgentID)
	assert.Equal(t, "somchai@tedtam.co.th", claims.Email)
	assert.Equal(t, "agent-1", claims.Subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m1, err := NewManager(testConfig())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Secret = "other-secret"
	m2, err := NewManager(cfg)
	require.NoError(t, err)

	token, err := m1.Generate("agent-1", "")
	require.NoError(t, err)

	_, err = m2.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = -time.Minute
	m, err := NewManager(cfg)
	require.NoError(t, err)

	// TTL <= 0 falls back to the default, so build an expired token by
	// constructing the manager directly.
	m.cfg.TTL = -time.Minute
	token, err := m.Generate("agent-1", "")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	_, err = m.Verify("not-a-token")
	assert.Error(t, err)
}

func TestVerifyRejectsMissingAgentID(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	token, err := m.Generate("", "")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}
