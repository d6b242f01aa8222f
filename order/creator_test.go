package order

import (
	"context"
	"errors"
	"testing"

	"staggered-grid-go/infrastructure/logger"
)

// mockTrader scripts CreateOrder failures to exercise the retry policy.
type mockTrader struct {
	simulated bool
	failures  []error // consumed one per CreateOrder call
	created   []Spec
	refreshes int
}

func (m *mockTrader) Available(string) (float64, error) { return 0, nil }

func (m *mockTrader) OpenOrders(string) ([]Order, error) { return nil, nil }

func (m *mockTrader) ForceRefresh(context.Context) error { m.refreshes++; return nil }

func (m *mockTrader) Simulated() bool { return m.simulated }

func (m *mockTrader) CreateOrder(_ context.Context, spec Spec) (Order, error) {
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		if err != nil {
			return Order{}, err
		}
	}
	m.created = append(m.created, spec)
	return Order{ID: "id", Symbol: spec.Symbol, Side: spec.Side, Price: spec.Price, Quantity: spec.Quantity, Status: StatusAck}, nil
}

func spec(side Side, price float64) Spec {
	return Spec{Side: side, Symbol: "BTC/USDT", Price: price, Quantity: 1}
}

func TestSubmitLiveRetriesOnceAfterRefresh(t *testing.T) {
	tr := &mockTrader{failures: []error{ErrInsufficientBalance, nil}}
	c := NewCreator(tr, logger.NewNop())
	o, err := c.Submit(context.Background(), spec(SideBuy, 99))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.Status != StatusAck {
		t.Fatalf("expected ACK, got %s", o.Status)
	}
	if tr.refreshes != 1 {
		t.Fatalf("expected exactly one forced refresh, got %d", tr.refreshes)
	}
}

func TestSubmitLiveGivesUpAfterSecondFailure(t *testing.T) {
	tr := &mockTrader{failures: []error{ErrInsufficientBalance, ErrInsufficientBalance, nil}}
	c := NewCreator(tr, logger.NewNop())
	if _, err := c.Submit(context.Background(), spec(SideBuy, 99)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if tr.refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", tr.refreshes)
	}
	if len(tr.created) != 0 {
		t.Fatalf("no order should have been created")
	}
}

func TestSubmitSimulatedDoesNotRetry(t *testing.T) {
	tr := &mockTrader{simulated: true, failures: []error{ErrInsufficientBalance, nil}}
	c := NewCreator(tr, logger.NewNop())
	if _, err := c.Submit(context.Background(), spec(SideBuy, 99)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected failure to propagate, got %v", err)
	}
	if tr.refreshes != 0 {
		t.Fatalf("simulated trading must not refresh, got %d", tr.refreshes)
	}
}

func TestSubmitOtherFailureNotRetried(t *testing.T) {
	boom := errors.New("venue rejected")
	tr := &mockTrader{failures: []error{boom, nil}}
	c := NewCreator(tr, logger.NewNop())
	if _, err := c.Submit(context.Background(), spec(SideSell, 101)); !errors.Is(err, boom) {
		t.Fatalf("expected venue error, got %v", err)
	}
	if tr.refreshes != 0 {
		t.Fatalf("non-balance failures must not trigger refresh")
	}
}

func TestSubmitRejectsVirtualSpec(t *testing.T) {
	tr := &mockTrader{}
	c := NewCreator(tr, logger.NewNop())
	s := spec(SideBuy, 99)
	s.Virtual = true
	if _, err := c.Submit(context.Background(), s); err == nil {
		t.Fatalf("expected error for virtual spec")
	}
}

func TestSubmitBatchContinuesPastFailure(t *testing.T) {
	boom := errors.New("venue rejected")
	tr := &mockTrader{failures: []error{nil, boom, nil}}
	c := NewCreator(tr, logger.NewNop())
	created, err := c.SubmitBatch(context.Background(), []Spec{
		spec(SideBuy, 99), spec(SideSell, 101), spec(SideBuy, 98),
	})
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created orders, got %d", len(created))
	}
	if tr.created[1].Price != 98 {
		t.Fatalf("batch should continue past the failed spec")
	}
}

func TestInterleaveAlternatesRealOrders(t *testing.T) {
	buys := []Spec{
		{Side: SideBuy, Price: 97, Virtual: true},
		{Side: SideBuy, Price: 98},
		{Side: SideBuy, Price: 99},
	}
	sells := []Spec{
		{Side: SideSell, Price: 103, Virtual: true},
		{Side: SideSell, Price: 101},
	}
	got := Interleave(buys, sells)
	if len(got) != 3 {
		t.Fatalf("expected 3 real orders, got %d", len(got))
	}
	want := []float64{98, 101, 99}
	for i, s := range got {
		if s.Price != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, s.Price, want[i])
		}
		if s.Virtual {
			t.Fatalf("virtual order leaked into submission batch")
		}
	}
}
