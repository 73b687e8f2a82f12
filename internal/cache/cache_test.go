package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-api/internal/models"
)

func TestBuildUserAuthState(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	user := &models.User{
		ID:                 7,
		Status:             "active",
		IsStaff:            true,
		TokenVersion:       3,
		TokenInvalidBefore: &invalidBefore,
	}
	state := BuildUserAuthState(user)
	if state == nil {
		t.Fatalf("expected state")
	}
	if state.UserID != 7 || !state.IsStaff || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.TokenInvalidBefore != invalidBefore.Unix() {
		t.Fatalf("unexpected token_invalid_before: %d", state.TokenInvalidBefore)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should produce nil state")
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	ctx := context.Background()
	if err := SetUserAuthState(ctx, &UserAuthState{UserID: 1}); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	state, hit, err := GetUserAuthState(ctx, 1)
	if err != nil || hit || state != nil {
		t.Fatalf("expected miss, got state=%v hit=%v err=%v", state, hit, err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping should be noop: %v", err)
	}
	if _, _, err := HitWindow(ctx, "rate:login:x", 60); !errors.Is(err, ErrDisabled) {
		t.Fatalf("hit window should report disabled, got %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	old := redisPrefix
	redisPrefix = "sf"
	defer func() { redisPrefix = old }()
	if got := buildKey("auth:user:1"); got != "sf:auth:user:1" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey("  "); got != "sf" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}
