package services

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	usernameBaseMax  = 12
	usernameAttempts = 5
)

// UsernameChecker answers whether a handle is already taken.
type UsernameChecker interface {
	UsernameExists(username string) (bool, error)
}

// UsernameGenerator derives a handle from a display name and probes the
// store for collisions. Best effort only: after five attempts it hands
// back the last candidate even if it may collide, and the unique index on
// users.username stays the real arbiter.
type UsernameGenerator struct {
	store   UsernameChecker
	randInt func(n int) int
}

func NewUsernameGenerator(store UsernameChecker) *UsernameGenerator {
	return &UsernameGenerator{store: store, randInt: rand.Intn}
}

func normalizeBase(displayName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(displayName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) > usernameBaseMax {
		base = base[:usernameBaseMax]
	}
	return base
}

// Generate returns a candidate of the form <base><4 digits>.
func (g *UsernameGenerator) Generate(displayName string) (string, error) {
	base := normalizeBase(displayName)

	var username string
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		username = fmt.Sprintf("%s%04d", base, g.randInt(10000))

		taken, err := g.store.UsernameExists(username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
	}
	return username, nil
}
