package alert

import (
	"testing"
	"time"
)

func TestManagerBroadcastsToAllChannels(t *testing.T) {
	a := NewMockChannel("a")
	b := NewMockChannel("b")
	m := NewManager([]Channel{a, b}, time.Minute)

	if err := m.Warning("inventory skewed", map[string]interface{}{"symbol": "BTC/USDT"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Count() != 1 || b.Count() != 1 {
		t.Fatalf("counts = %d, %d, want 1, 1", a.Count(), b.Count())
	}
	got := a.Alerts()[0]
	if got.Level != "WARNING" || got.Message != "inventory skewed" {
		t.Fatalf("unexpected alert: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestManagerThrottlesRepeatedAlerts(t *testing.T) {
	ch := NewMockChannel("mock")
	m := NewManager([]Channel{ch}, time.Hour)

	for i := 0; i < 5; i++ {
		if err := m.Critical("grid lost its opposite-side anchor", nil); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ch.Count() != 1 {
		t.Fatalf("count = %d, want 1 (throttled)", ch.Count())
	}

	// 不同消息不受同一限流 key 影响
	if err := m.Critical("venue unreachable", nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.Count() != 2 {
		t.Fatalf("count = %d, want 2", ch.Count())
	}
}

func TestManagerReportsErrorOnlyWhenAllChannelsFail(t *testing.T) {
	bad := NewMockChannel("bad")
	bad.SetShouldError(true)
	good := NewMockChannel("good")

	m := NewManager([]Channel{bad, good}, 0)
	if err := m.Error("partial failure ok", nil); err != nil {
		t.Fatalf("one healthy channel must be enough: %v", err)
	}

	m = NewManager([]Channel{bad}, 0)
	if err := m.Error("all channels down", nil); err == nil {
		t.Fatalf("expected error when every channel fails")
	}
}

func TestThrottlerClear(t *testing.T) {
	th := NewThrottler(time.Hour)
	if !th.Allow("k") {
		t.Fatalf("first Allow must pass")
	}
	if th.Allow("k") {
		t.Fatalf("second Allow within interval must be blocked")
	}
	th.Clear()
	if !th.Allow("k") {
		t.Fatalf("Allow after Clear must pass")
	}
}
