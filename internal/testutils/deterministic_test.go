package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDDeterministicInTestMode(t *testing.T) {
	SetTestMode(true)
	defer SetTestMode(false)
	ResetTestCounters()

	first := GenerateUUID()
	second := GenerateUUID()

	assert.Equal(t, "00000001-0000-4000-8000-000000000001", first)
	assert.Equal(t, "00000002-0000-4000-8000-000000000002", second)
}

func TestGenerateUUIDRandomInProduction(t *testing.T) {
	SetTestMode(false)

	first := GenerateUUID()
	second := GenerateUUID()

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)
}

func TestGetCurrentTimeIncrementsInTestMode(t *testing.T) {
	SetTestMode(true)
	defer SetTestMode(false)
	ResetTestCounters()

	first := GetCurrentTime()
	second := GetCurrentTime()

	assert.True(t, second.After(first))
	assert.Equal(t, 2025, first.Year())
}

func TestResetTestCounters(t *testing.T) {
	SetTestMode(true)
	defer SetTestMode(false)

	GenerateUUID()
	ResetTestCounters()

	assert.Equal(t, "00000001-0000-4000-8000-000000000001", GenerateUUID())
}
