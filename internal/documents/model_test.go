package documents

import (
	"testing"
	"time"
)

func TestClassifyExpiryWithoutDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	status, days := ClassifyExpiry(nil, now)
	if status != ExpiryValid {
		t.Fatalf("expected %s, got %s", ExpiryValid, status)
	}
	if days != nil {
		t.Fatalf("expected nil days, got %d", *days)
	}
}

func TestClassifyExpiryBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		offset     time.Duration
		wantStatus string
		wantDays   int
	}{
		{"two days past", -48 * time.Hour, ExpiryExpired, -2},
		{"just over a day past", -25 * time.Hour, ExpiryExpired, -1},
		{"hours past rounds to today", -2 * time.Hour, ExpiryExpiring, 0},
		{"hours ahead rounds up", 2 * time.Hour, ExpiryExpiring, 1},
		{"window edge", 7 * 24 * time.Hour, ExpiryExpiring, 7},
		{"just outside window", 8 * 24 * time.Hour, ExpiryValid, 8},
		{"ten days out", 240 * time.Hour, ExpiryValid, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expiry := now.Add(tc.offset)
			status, days := ClassifyExpiry(&expiry, now)
			if status != tc.wantStatus {
				t.Fatalf("expected status %s, got %s", tc.wantStatus, status)
			}
			if days == nil {
				t.Fatalf("expected days %d, got nil", tc.wantDays)
			}
			if *days != tc.wantDays {
				t.Fatalf("expected days %d, got %d", tc.wantDays, *days)
			}
		})
	}
}
