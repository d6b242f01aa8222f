package sim

import (
	"context"
	"errors"
	"fmt"

	"staggered-grid-go/engine"
	"staggered-grid-go/gateway"
	"staggered-grid-go/order"
	"staggered-grid-go/portfolio"
	"staggered-grid-go/strategy"
)

// Runner 把价格序列->模拟成交->补单/生成串起来（纸面回放，不含真实 gateway）。
// 每个价格先驱动已越价挂单成交并交给决策器补单，再触发一次生成周期。
type Runner struct {
	Symbol  string
	Trader  *gateway.PaperTrader
	Decider *engine.Decider
	Account *portfolio.Account

	stats Stats
}

// Stats 回放过程中的累计统计。
type Stats struct {
	Ticks       int
	BuyFills    int
	SellFills   int
	FillErrors  int
	AnchorsLost int
}

// NewRunner 用初始余额搭一套完整的纸面环境：台账、模拟执行方、决策器。
func NewRunner(symbol string, params strategy.Params, balances map[string]float64) (*Runner, error) {
	account := portfolio.NewAccount("sim", balances)
	trader := gateway.NewPaperTrader(account)
	decider, err := engine.NewDecider(symbol, params, engine.Components{
		Trader:  trader,
		Account: account,
	})
	if err != nil {
		return nil, fmt.Errorf("build sim decider: %w", err)
	}
	return &Runner{
		Symbol:  symbol,
		Trader:  trader,
		Decider: decider,
		Account: account,
	}, nil
}

// OnTick 处理一个参考价：结算越价挂单并触发生成周期。
// 锚点丢失只计数不中断，网格在耗尽一侧后仍要继续回放另一侧。
func (r *Runner) OnTick(ctx context.Context, price float64) error {
	if r.Trader == nil || r.Decider == nil {
		return errors.New("runner not initialized")
	}
	if price <= 0 {
		return fmt.Errorf("invalid price %v", price)
	}
	r.stats.Ticks++

	for _, crossed := range r.Trader.Crossed(r.Symbol, price) {
		filled, err := r.Trader.Fill(crossed.ID)
		if err != nil {
			r.stats.FillErrors++
			continue
		}
		if filled.Side == order.SideBuy {
			r.stats.BuyFills++
		} else {
			r.stats.SellFills++
		}
		if err := r.Decider.OnOrderFilled(ctx, filled); err != nil {
			r.stats.AnchorsLost++
		}
	}
	return r.Decider.OnReferencePrice(ctx, price)
}

// Replay 按顺序回放整条价格序列，首个错误即中止。
func (r *Runner) Replay(ctx context.Context, prices []float64) (Stats, error) {
	for i, p := range prices {
		if err := ctx.Err(); err != nil {
			return r.stats, err
		}
		if err := r.OnTick(ctx, p); err != nil {
			return r.stats, fmt.Errorf("tick %d (price %v): %w", i, p, err)
		}
	}
	return r.stats, nil
}

// Stats 返回当前累计统计。
func (r *Runner) Stats() Stats { return r.stats }
