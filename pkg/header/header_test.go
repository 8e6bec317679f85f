package header

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(KindVerificationResult, "v1.0.0")

	assert.Equal(t, KindVerificationResult, h.Kind)
	assert.Equal(t, "v1.0.0", h.Version)
	assert.False(t, h.Created.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), h.Created, time.Minute)

	_, err := uuid.Parse(h.RunID)
	require.NoError(t, err, "RunID should be a valid UUID")
}

func TestNewWithMetadata(t *testing.T) {
	h := New(KindVerificationResult, "dev",
		WithMetadata("mode", "verify"),
		WithMetadata("host", "lab-1"),
	)

	require.NotNil(t, h.Metadata)
	assert.Equal(t, "verify", h.Metadata["mode"])
	assert.Equal(t, "lab-1", h.Metadata["host"])
}

func TestKindIsValid(t *testing.T) {
	k := KindVerificationResult
	assert.True(t, k.IsValid())

	bogus := Kind("Bogus")
	assert.False(t, bogus.IsValid())
	assert.Equal(t, "Bogus", bogus.String())
}

func TestRunIDsAreUnique(t *testing.T) {
	a := New(KindVerificationResult, "dev")
	b := New(KindVerificationResult, "dev")
	assert.NotEqual(t, a.RunID, b.RunID)
}
