package portfolio

import (
	"errors"
	"sync"
	"testing"
)

func TestAccountDepositWithdraw(t *testing.T) {
	a := NewAccount("main", map[string]float64{"USDT": 100})
	if a.Name() != "main" {
		t.Fatalf("name = %s", a.Name())
	}
	if err := a.Withdraw("USDT", 40); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := a.Available("USDT"); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	a.Deposit("BTC", 2)
	if got := a.Available("BTC"); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestAccountInsufficientFunds(t *testing.T) {
	a := NewAccount("main", map[string]float64{"USDT": 10})
	if err := a.Withdraw("USDT", 11); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := a.Available("USDT"); got != 10 {
		t.Fatalf("failed withdraw must not change the ledger, got %v", got)
	}
	if err := a.Withdraw("BTC", 0.1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds for unknown asset, got %v", err)
	}
}

func TestAccountInitialBalancesCopied(t *testing.T) {
	init := map[string]float64{"USDT": 100}
	a := NewAccount("main", init)
	init["USDT"] = 0
	if got := a.Available("USDT"); got != 100 {
		t.Fatalf("account must copy initial balances, got %v", got)
	}
}

func TestAccountConcurrentLedger(t *testing.T) {
	a := NewAccount("main", map[string]float64{"USDT": 0})
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Deposit("USDT", 1)
		}()
	}
	wg.Wait()
	if got := a.Available("USDT"); got != 100 {
		t.Fatalf("expected 100 after concurrent deposits, got %v", got)
	}
}
