package order

import (
	"context"
	"fmt"
	"strings"
)

// Side 交易方向。
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite 返回对手方向：成交后补单使用。
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Spec 描述阶梯中的一个候选订单。
// 由阶梯生成器创建；激活选择器翻转 Virtual；提交管道只读。
type Spec struct {
	Side     Side
	Quantity float64
	Price    float64
	Symbol   string
	// Virtual=true 表示仅内部跟踪，不提交到交易所。
	Virtual bool
}

// Status represents order lifecycle.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusAck      Status = "ACK"
	StatusFilled   Status = "FILLED"
	StatusCanceled Status = "CANCELED"
	StatusRejected Status = "REJECTED"
)

// Order 是已提交订单的视图，由执行方（Trader）持有权威状态。
type Order struct {
	ID       string
	ClientID string
	Symbol   string
	Side     Side
	Price    float64
	Quantity float64
	Status   Status
}

// SplitSymbol 拆分 "BTC/USDT" 形式的交易对为基础资产与计价货币。
func SplitSymbol(symbol string) (base, quote string, err error) {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid symbol %q, want BASE/QUOTE", symbol)
	}
	return parts[0], parts[1], nil
}

// Trader 是执行方契约：余额、挂单、下单、强制刷新。
// gateway 包提供模拟实现；真实交易所接入在本引擎范围之外。
type Trader interface {
	// Available 返回某资产当前可用余额快照。
	Available(asset string) (float64, error)
	// OpenOrders 返回该交易对当前全部挂单。
	OpenOrders(symbol string) ([]Order, error)
	// CreateOrder 提交限价单；余额不足返回 ErrInsufficientBalance。
	CreateOrder(ctx context.Context, spec Spec) (Order, error)
	// ForceRefresh 使余额/挂单缓存失效并重新拉取。
	ForceRefresh(ctx context.Context) error
	// Simulated 为 true 时余额视为内部一致，不做刷新重试。
	Simulated() bool
}
