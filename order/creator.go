package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staggered-grid-go/infrastructure/logger"
)

// Creator 把订单描述提交给执行方，并套用有界重试策略。
type Creator struct {
	trader Trader
	retry  RetryPolicy
	log    *logger.Logger
}

func NewCreator(trader Trader, log *logger.Logger) *Creator {
	return &Creator{
		trader: trader,
		retry:  InsufficientBalancePolicy(trader),
		log:    log,
	}
}

// Submit 提交单个订单描述。余额不足时按策略重试；
// 重试耗尽或不可重试的错误原样返回给调用方。
func (c *Creator) Submit(ctx context.Context, spec Spec) (Order, error) {
	if spec.Virtual {
		return Order{}, fmt.Errorf("virtual spec must not be submitted: %s %s @ %v", spec.Side, spec.Symbol, spec.Price)
	}
	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && c.retry.BeforeRetry != nil {
			if err := c.retry.BeforeRetry(ctx); err != nil {
				return Order{}, fmt.Errorf("refresh before retry: %w", err)
			}
		}
		o, err := c.trader.CreateOrder(ctx, spec)
		if err == nil {
			return o, nil
		}
		lastErr = err
		if c.retry.Retryable == nil || !c.retry.Retryable(err) {
			break
		}
	}
	return Order{}, lastErr
}

// SubmitBatch 依次提交多个描述；单个失败记录日志后继续，
// 不中断批次。返回成功创建的订单与按描述聚合的失败。
func (c *Creator) SubmitBatch(ctx context.Context, specs []Spec) ([]Order, error) {
	created := make([]Order, 0, len(specs))
	var errs []error
	for _, spec := range specs {
		o, err := c.Submit(ctx, spec)
		if err != nil {
			c.log.Error("order submission dropped",
				zap.String("symbol", spec.Symbol),
				zap.String("side", string(spec.Side)),
				zap.Float64("price", spec.Price),
				zap.Float64("quantity", spec.Quantity),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s %s @ %v: %w", spec.Side, spec.Symbol, spec.Price, err))
			continue
		}
		created = append(created, o)
	}
	return created, errors.Join(errs...)
}

// NewClientID 生成下单用的幂等客户端编号。
func NewClientID() string {
	return uuid.NewString()
}

// Interleave 按买一卖一交替合并两侧的真实（非虚拟）订单，
// 使初始挂单的深度在两侧对称增长。
func Interleave(buys, sells []Spec) []Spec {
	realBuys := filterReal(buys)
	realSells := filterReal(sells)
	out := make([]Spec, 0, len(realBuys)+len(realSells))
	for i := 0; i < len(realBuys) || i < len(realSells); i++ {
		if i < len(realBuys) {
			out = append(out, realBuys[i])
		}
		if i < len(realSells) {
			out = append(out, realSells[i])
		}
	}
	return out
}

func filterReal(specs []Spec) []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if !s.Virtual {
			out = append(out, s)
		}
	}
	return out
}
