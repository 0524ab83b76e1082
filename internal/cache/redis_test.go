package cache

import (
	"context"
	"testing"

	"github.com/taffe/snackindex/pkg/config"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{"single part", []string{"trending"}},
		{"multiple parts", []string{"snacks", "all", "ranked"}},
		{"empty parts", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// MD5 hex is 32 characters
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}

	// Distinct inputs should not collide on the happy path
	if HashKey("snacks", "all") == HashKey("snacks", "trending") {
		t.Error("HashKey() should differ for different parts")
	}
}

func TestDisabledCacheIsSafe(t *testing.T) {
	var c *Cache

	ctx := context.Background()
	var out []string
	if err := c.GetJSON(ctx, "key", &out); err != ErrCacheDisabled {
		t.Errorf("GetJSON on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.SetJSON(ctx, "key", out, 0); err != ErrCacheDisabled {
		t.Errorf("SetJSON on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache = %v, want nil", err)
	}
}

func TestNewDisabled(t *testing.T) {
	c, err := New(&config.RedisConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() with disabled config error = %v", err)
	}
	if c != nil {
		t.Error("New() with disabled config should return nil cache")
	}
}
