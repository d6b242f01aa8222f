package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"staggered-grid-go/infrastructure/alert"
	"staggered-grid-go/infrastructure/logger"
	"staggered-grid-go/metrics"
	"staggered-grid-go/order"
	"staggered-grid-go/portfolio"
	"staggered-grid-go/strategy"
)

// Components 决策器依赖组件
type Components struct {
	Trader  order.Trader
	Account *portfolio.Account
	Logger  *logger.Logger
	Alerts  *alert.Manager     // 可选：订单通知与异常告警
	Metrics *metrics.Collector // 可选
}

// Decider 为单个交易对驱动阶梯网格：
// 参考价触发整体生成，成交回报触发对侧补单。
// 两类触发可并发到达，账户互斥段保证「读余额→定单→提交」的原子性。
// 决策器从不撤已有挂单：发现已有挂单时生成周期是幂等空操作。
type Decider struct {
	symbol string
	base   string
	quote  string
	params strategy.Params

	trader  order.Trader
	creator *order.Creator
	account *portfolio.Account
	log     *logger.Logger
	alerts  *alert.Manager
	metrics *metrics.Collector
}

// NewDecider 构造单交易对决策器，参数构造期一次校验。
func NewDecider(symbol string, params strategy.Params, c Components) (*Decider, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	base, quote, err := order.SplitSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if c.Trader == nil {
		return nil, errors.New("trader is required")
	}
	if c.Account == nil {
		return nil, errors.New("account is required")
	}
	if c.Logger == nil {
		c.Logger = logger.NewNop()
	}
	return &Decider{
		symbol:  symbol,
		base:    base,
		quote:   quote,
		params:  params,
		trader:  c.Trader,
		creator: order.NewCreator(c.Trader, c.Logger),
		account: c.Account,
		log:     c.Logger,
		alerts:  c.Alerts,
		metrics: c.Metrics,
	}, nil
}

// Symbol 返回该决策器负责的交易对。
func (d *Decider) Symbol() string { return d.symbol }

// OnReferencePrice 处理外部信号源推来的参考价：
// 生成两侧阶梯，激活最贴近现价的真实订单，交替提交。
// 配置类错误同步返回；单笔提交失败已在管道内记录并继续。
func (d *Decider) OnReferencePrice(ctx context.Context, price float64) error {
	if price <= 0 {
		return fmt.Errorf("%w: reference price %v must be > 0", strategy.ErrConfiguration, price)
	}

	d.account.Lock()
	defer d.account.Unlock()

	existing, err := d.trader.OpenOrders(d.symbol)
	if err != nil {
		return fmt.Errorf("list open orders: %w", err)
	}

	// 买侧消耗计价货币，卖侧消耗基础资产。
	quoteAvailable, err := d.trader.Available(d.quote)
	if err != nil {
		return fmt.Errorf("read %s balance: %w", d.quote, err)
	}
	baseAvailable, err := d.trader.Available(d.base)
	if err != nil {
		return fmt.Errorf("read %s balance: %w", d.base, err)
	}

	buys, err := strategy.BuildLadder(d.params, order.SideBuy, d.symbol, price, quoteAvailable, existing)
	if err != nil {
		return err
	}
	sells, err := strategy.BuildLadder(d.params, order.SideSell, d.symbol, price, baseAvailable, existing)
	if err != nil {
		return err
	}
	if len(buys) == 0 && len(sells) == 0 {
		return nil
	}

	strategy.ActivateNearest(buys, sells, d.params.OperationalDepth)
	batch := order.Interleave(buys, sells)

	if d.metrics != nil {
		d.metrics.LaddersBuilt.Inc()
		d.metrics.ReferencePrice.Set(price)
		d.metrics.RealOrders.Set(float64(len(batch)))
		d.metrics.VirtualOrders.Set(float64(len(buys) + len(sells) - len(batch)))
	}
	d.log.Info("staggered grid generated",
		zap.String("symbol", d.symbol),
		zap.Float64("reference_price", price),
		zap.Int("buy_ladder", len(buys)),
		zap.Int("sell_ladder", len(sells)),
		zap.Int("real_orders", len(batch)))

	created, err := d.creator.SubmitBatch(ctx, batch)
	d.recordCreated(created)
	if err != nil {
		// 单笔失败已逐条记录；此处只统计，周期本身视为完成。
		if d.metrics != nil {
			d.metrics.OrdersDropped.Add(float64(len(batch) - len(created)))
		}
	}
	d.notifyCreated(created)
	return nil
}

// OnOrderFilled 处理成交回报：在对手方向生成且仅生成一张补单。
// 补单价格以对侧最贴近现价的挂单为锚点偏移一个档位，
// 数量按成交数量扣除（或加回）增量与手续费之差，保证往返有利润。
func (d *Decider) OnOrderFilled(ctx context.Context, filled order.Order) error {
	if filled.Symbol != d.symbol {
		return fmt.Errorf("filled order symbol %s does not belong to decider %s", filled.Symbol, d.symbol)
	}
	nowSelling := filled.Side == order.SideBuy
	newSide := filled.Side.Opposite()

	d.account.Lock()
	defer d.account.Unlock()

	open, err := d.trader.OpenOrders(d.symbol)
	if err != nil {
		return fmt.Errorf("list open orders: %w", err)
	}
	anchor, err := order.ClosestAnchor(open, newSide)
	if err != nil {
		if d.metrics != nil {
			d.metrics.AnchorsMissing.Inc()
		}
		if d.alerts != nil {
			_ = d.alerts.Critical("grid lost its opposite-side anchor", map[string]interface{}{
				"symbol": d.symbol,
				"side":   string(newSide),
			})
		}
		return fmt.Errorf("symbol %s side %s: %w", d.symbol, newSide, err)
	}

	var price, quantity float64
	change := d.params.Increment - d.params.Fee
	if nowSelling {
		price = anchor.Price * (1 - d.params.Increment)
		quantity = filled.Quantity * (1 - change)
	} else {
		price = anchor.Price * (1 + d.params.Increment)
		quantity = filled.Quantity * (1 + change)
	}

	spec := order.Spec{
		Side:     newSide,
		Quantity: quantity,
		Price:    price,
		Symbol:   d.symbol,
		Virtual:  false,
	}

	if d.metrics != nil {
		d.metrics.FillsHandled.Inc()
	}
	created, err := d.creator.Submit(ctx, spec)
	if err != nil {
		d.log.Error("replacement order dropped",
			zap.String("symbol", d.symbol),
			zap.String("side", string(newSide)),
			zap.Float64("price", price),
			zap.Float64("quantity", quantity),
			zap.Error(err))
		if d.metrics != nil {
			d.metrics.OrdersDropped.Inc()
		}
		return err
	}
	d.recordCreated([]order.Order{created})
	d.notifyCreated([]order.Order{created})
	return nil
}

func (d *Decider) recordCreated(created []order.Order) {
	if d.metrics == nil {
		return
	}
	for _, o := range created {
		d.metrics.OrdersSubmitted.WithLabelValues(string(o.Side)).Inc()
	}
}

func (d *Decider) notifyCreated(created []order.Order) {
	if d.alerts == nil {
		return
	}
	for _, o := range created {
		_ = d.alerts.Info("order created", map[string]interface{}{
			"symbol":   o.Symbol,
			"side":     string(o.Side),
			"price":    o.Price,
			"quantity": o.Quantity,
		})
	}
}
