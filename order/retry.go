package order

import (
	"context"
	"errors"
)

// RetryPolicy 描述提交失败后的有界重试：最大尝试次数、
// 重试条件判定与重试前的恢复动作。策略独立于提交流程，便于单测。
type RetryPolicy struct {
	MaxAttempts int
	Retryable   func(error) bool
	BeforeRetry func(ctx context.Context) error
}

// InsufficientBalancePolicy 返回余额不足的标准策略：
// 实盘允许第二次尝试（重试前强制刷新余额与挂单视图），
// 模拟盘余额内部一致，刷新无意义，只允许一次尝试。
func InsufficientBalancePolicy(t Trader) RetryPolicy {
	if t.Simulated() {
		return RetryPolicy{MaxAttempts: 1}
	}
	return RetryPolicy{
		MaxAttempts: 2,
		Retryable: func(err error) bool {
			return errors.Is(err, ErrInsufficientBalance)
		},
		BeforeRetry: t.ForceRefresh,
	}
}
