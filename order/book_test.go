package order

import (
	"errors"
	"testing"
)

func TestBookSetGetRemove(t *testing.T) {
	b := NewBook()
	o := Order{ID: "1", Symbol: "BTC/USDT", Side: SideBuy, Price: 99, Quantity: 1}
	b.Set(o)
	got, ok := b.Get("1")
	if !ok || got.Price != 99 {
		t.Fatalf("unexpected order: %+v ok=%v", got, ok)
	}
	b.Set(Order{ID: "2", Symbol: "ETH/USDT", Side: SideSell, Price: 4000, Quantity: 1})
	if got := b.BySymbol("BTC/USDT"); len(got) != 1 {
		t.Fatalf("expected 1 BTC order, got %d", len(got))
	}
	b.Remove("1")
	if _, ok := b.Get("1"); ok {
		t.Fatalf("order should be removed")
	}
	if got := b.List(); len(got) != 1 {
		t.Fatalf("expected 1 order left, got %d", len(got))
	}
}

func TestClosestAnchor(t *testing.T) {
	open := []Order{
		{ID: "b1", Side: SideBuy, Price: 95},
		{ID: "b2", Side: SideBuy, Price: 99},
		{ID: "b3", Side: SideBuy, Price: 90},
		{ID: "s1", Side: SideSell, Price: 105},
		{ID: "s2", Side: SideSell, Price: 101},
		{ID: "s3", Side: SideSell, Price: 110},
	}
	// buy anchor: highest price, closest to current price from below
	buy, err := ClosestAnchor(open, SideBuy)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if buy.ID != "b2" {
		t.Fatalf("expected b2 as buy anchor, got %s", buy.ID)
	}
	// sell anchor: lowest price, closest to current price from above
	sell, err := ClosestAnchor(open, SideSell)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sell.ID != "s2" {
		t.Fatalf("expected s2 as sell anchor, got %s", sell.ID)
	}
}

func TestClosestAnchorMissing(t *testing.T) {
	open := []Order{{ID: "b1", Side: SideBuy, Price: 95}}
	if _, err := ClosestAnchor(open, SideSell); !errors.Is(err, ErrMissingAnchor) {
		t.Fatalf("expected ErrMissingAnchor, got %v", err)
	}
	if _, err := ClosestAnchor(nil, SideBuy); !errors.Is(err, ErrMissingAnchor) {
		t.Fatalf("expected ErrMissingAnchor on empty set, got %v", err)
	}
}

func TestSplitSymbol(t *testing.T) {
	base, quote, err := SplitSymbol("BTC/USDT")
	if err != nil || base != "BTC" || quote != "USDT" {
		t.Fatalf("unexpected result: %s %s %v", base, quote, err)
	}
	for _, bad := range []string{"BTCUSDT", "BTC/", "/USDT", "A/B/C"} {
		if _, _, err := SplitSymbol(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSideOpposite(t *testing.T) {
	if SideBuy.Opposite() != SideSell || SideSell.Opposite() != SideBuy {
		t.Fatalf("opposite sides are wrong")
	}
}
