package order

import "errors"

var (
	// ErrInsufficientBalance 由执行方返回：余额不足以挂单。
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrMissingAnchor 对手方向没有挂单可作锚点，补单无法定价。
	ErrMissingAnchor = errors.New("no anchor order on replacement side")
)
