package portfolio

import (
	"errors"
	"sync"
)

// ErrInsufficientFunds 台账中该资产可用余额不足。
var ErrInsufficientFunds = errors.New("insufficient funds in account")

// Account 维护一个交易账户的资产台账，并提供账户级互斥段：
// 「读余额 → 计算订单 → 提交」必须作为一个整体持锁执行，
// 防止并发触发各自读到同一份余额后超额下单。
type Account struct {
	name string

	// 互斥段锁：一次完整网格生成或一次补单期间持有。
	mu sync.Mutex

	// 台账自身的锁与互斥段锁分离，提交回调在互斥段内仍可记账。
	bmu      sync.RWMutex
	balances map[string]float64
}

func NewAccount(name string, balances map[string]float64) *Account {
	b := make(map[string]float64, len(balances))
	for asset, amount := range balances {
		b[asset] = amount
	}
	return &Account{name: name, balances: b}
}

func (a *Account) Name() string { return a.name }

// Lock 进入账户互斥段；所有出口路径必须配对 Unlock。
func (a *Account) Lock() { a.mu.Lock() }

// Unlock 离开账户互斥段。
func (a *Account) Unlock() { a.mu.Unlock() }

// Available 返回某资产当前可用余额。
func (a *Account) Available(asset string) float64 {
	a.bmu.RLock()
	defer a.bmu.RUnlock()
	return a.balances[asset]
}

// Deposit 入账。
func (a *Account) Deposit(asset string, amount float64) {
	a.bmu.Lock()
	defer a.bmu.Unlock()
	a.balances[asset] += amount
}

// Withdraw 出账；余额不足返回 ErrInsufficientFunds 且不改动台账。
func (a *Account) Withdraw(asset string, amount float64) error {
	a.bmu.Lock()
	defer a.bmu.Unlock()
	if a.balances[asset] < amount {
		return ErrInsufficientFunds
	}
	a.balances[asset] -= amount
	return nil
}
