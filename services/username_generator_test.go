package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkerFunc func(username string) (bool, error)

func (f checkerFunc) UsernameExists(username string) (bool, error) { return f(username) }

var usernamePattern = regexp.MustCompile(`^[a-z0-9]{0,12}\d{4}$`)

func TestGenerateFormat(t *testing.T) {
	gen := NewUsernameGenerator(checkerFunc(func(string) (bool, error) { return false, nil }))

	cases := []struct {
		displayName string
		wantBase    string
	}{
		{"Alice", "alice"},
		{"Alice Smith-Jones", "alicesmithjo"},
		{"  D'Artagnan!! ", "dartagnan"},
		{"Überuser", "beruser"},
		{"1234567890123456", "123456789012"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		got, err := gen.Generate(tc.displayName)
		require.NoError(t, err)
		assert.Regexp(t, usernamePattern, got)
		assert.Equal(t, tc.wantBase, got[:len(got)-4], "base for %q", tc.displayName)
	}
}

func TestGenerateStopsOnFirstFreeCandidate(t *testing.T) {
	probes := 0
	gen := NewUsernameGenerator(checkerFunc(func(string) (bool, error) {
		probes++
		return false, nil
	}))

	_, err := gen.Generate("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, probes)
}

func TestGenerateGivesUpAfterFiveAttempts(t *testing.T) {
	probes := 0
	gen := NewUsernameGenerator(checkerFunc(func(string) (bool, error) {
		probes++
		return true, nil // everything taken
	}))

	got, err := gen.Generate("alice")
	require.NoError(t, err)
	assert.Equal(t, 5, probes)
	// Best effort: the last candidate comes back even though it collides.
	assert.Regexp(t, `^alice\d{4}$`, got)
}

func TestGenerateZeroPadsSuffix(t *testing.T) {
	gen := NewUsernameGenerator(checkerFunc(func(string) (bool, error) { return false, nil }))
	gen.randInt = func(int) int { return 7 }

	got, err := gen.Generate("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob0007", got)
}
