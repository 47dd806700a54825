// Package profile mirrors a calculated fitness profile into the key-value
// store, keyed per account email, so it survives restarts.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/sadopc/fitbot/internal/metrics"
	"github.com/sadopc/fitbot/internal/store"
)

func key(email string) string {
	return "userData_" + email
}

// Save persists p under the account's key, replacing any previous profile.
func Save(kv store.KV, email string, p metrics.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return kv.Set(key(email), string(data))
}

// Load returns the stored profile for email, or ok=false when none exists.
func Load(kv store.KV, email string) (*metrics.Profile, bool, error) {
	raw, ok, err := kv.Get(key(email))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	var p metrics.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false, fmt.Errorf("decode profile: %w", err)
	}
	return &p, true, nil
}
