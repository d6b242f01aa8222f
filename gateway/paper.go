package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"staggered-grid-go/order"
	"staggered-grid-go/portfolio"
)

// PaperTrader 是模拟执行方：实现 order.Trader，余额记在
// portfolio.Account 台账上，挂单记在内存 Book 里。
// 余额内部一致，因此 Simulated() 为 true，余额不足不做刷新重试。
type PaperTrader struct {
	account *portfolio.Account
	book    *order.Book
}

func NewPaperTrader(account *portfolio.Account) *PaperTrader {
	return &PaperTrader{
		account: account,
		book:    order.NewBook(),
	}
}

func (p *PaperTrader) Available(asset string) (float64, error) {
	return p.account.Available(asset), nil
}

func (p *PaperTrader) OpenOrders(symbol string) ([]order.Order, error) {
	return p.book.BySymbol(symbol), nil
}

// CreateOrder 冻结该侧消耗的币种并登记挂单。
// 买单消耗计价货币（价格×数量），卖单消耗基础资产（数量）。
func (p *PaperTrader) CreateOrder(_ context.Context, spec order.Spec) (order.Order, error) {
	base, quote, err := order.SplitSymbol(spec.Symbol)
	if err != nil {
		return order.Order{}, err
	}
	if spec.Price <= 0 || spec.Quantity <= 0 {
		return order.Order{}, fmt.Errorf("invalid order %s %s qty=%v price=%v", spec.Side, spec.Symbol, spec.Quantity, spec.Price)
	}
	asset, amount := base, spec.Quantity
	if spec.Side == order.SideBuy {
		asset, amount = quote, spec.Quantity*spec.Price
	}
	if err := p.account.Withdraw(asset, amount); err != nil {
		return order.Order{}, fmt.Errorf("%v %s needed for %s %s @ %v: %w",
			amount, asset, spec.Side, spec.Symbol, spec.Price, order.ErrInsufficientBalance)
	}
	o := order.Order{
		ID:       uuid.NewString(),
		ClientID: order.NewClientID(),
		Symbol:   spec.Symbol,
		Side:     spec.Side,
		Price:    spec.Price,
		Quantity: spec.Quantity,
		Status:   order.StatusAck,
	}
	p.book.Set(o)
	return o, nil
}

// ForceRefresh 对模拟盘是空操作：没有外部视图可刷新。
func (p *PaperTrader) ForceRefresh(context.Context) error { return nil }

func (p *PaperTrader) Simulated() bool { return true }

// Crossed 返回在给定市场价下会被执行的挂单：
// 市场价跌破买价的买单、涨破卖价的卖单。驱动模拟成交用。
func (p *PaperTrader) Crossed(symbol string, price float64) []order.Order {
	var crossed []order.Order
	for _, o := range p.book.BySymbol(symbol) {
		if o.Side == order.SideBuy && price <= o.Price {
			crossed = append(crossed, o)
		}
		if o.Side == order.SideSell && price >= o.Price {
			crossed = append(crossed, o)
		}
	}
	return crossed
}

// Fill 把一张挂单标记为全部成交并记入台账：买单成交收基础资产，
// 卖单成交收计价货币。返回成交后的订单视图，供引擎补单。
func (p *PaperTrader) Fill(id string) (order.Order, error) {
	o, ok := p.book.Get(id)
	if !ok {
		return order.Order{}, fmt.Errorf("unknown order %s", id)
	}
	base, quote, err := order.SplitSymbol(o.Symbol)
	if err != nil {
		return order.Order{}, err
	}
	p.book.Remove(id)
	if o.Side == order.SideBuy {
		p.account.Deposit(base, o.Quantity)
	} else {
		p.account.Deposit(quote, o.Quantity*o.Price)
	}
	o.Status = order.StatusFilled
	return o, nil
}
