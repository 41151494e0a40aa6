package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    ProductStatus
		to      ProductStatus
		allowed bool
	}{
		{"active to consumed", StatusActive, StatusConsumed, true},
		{"active to expired", StatusActive, StatusExpired, true},
		{"active to wasted", StatusActive, StatusWasted, true},
		{"active to active", StatusActive, StatusActive, false},
		{"consumed to active", StatusConsumed, StatusActive, false},
		{"consumed to wasted", StatusConsumed, StatusWasted, false},
		{"expired to active", StatusExpired, StatusActive, false},
		{"expired to consumed", StatusExpired, StatusConsumed, true},
		{"expired to wasted", StatusExpired, StatusWasted, true},
		{"wasted to active", StatusWasted, StatusActive, false},
		{"wasted to consumed", StatusWasted, StatusConsumed, false},
		{"unknown status", ProductStatus("BROKEN"), StatusActive, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestProductStatusIsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusConsumed.IsValid())
	assert.True(t, StatusExpired.IsValid())
	assert.True(t, StatusWasted.IsValid())
	assert.False(t, ProductStatus("DAMAGED").IsValid())
}

func TestDaysUntilExpiration(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	cases := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"expires later today", time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC), 0},
		{"expires early tomorrow", time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC), 1},
		{"expired yesterday", time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), -1},
		{"expires next week", time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC), 7},
		{"expired last month", time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), -28},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Product{ExpirationDate: tc.expiration}
			assert.Equal(t, tc.want, p.DaysUntilExpiration(now))
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	sameDay := &Product{ExpirationDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}
	assert.False(t, sameDay.IsExpired(now), "a product expiring today is not yet expired")

	yesterday := &Product{ExpirationDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.True(t, yesterday.IsExpired(now))
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	within := &Product{ExpirationDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)}
	assert.True(t, within.IsExpiringSoon(now, 3))

	boundary := &Product{ExpirationDate: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)}
	assert.True(t, boundary.IsExpiringSoon(now, 3))

	beyond := &Product{ExpirationDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)}
	assert.False(t, beyond.IsExpiringSoon(now, 3))

	expired := &Product{ExpirationDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.False(t, expired.IsExpiringSoon(now, 3), "already expired products are not expiring soon")
}
