package strategy

import (
	"errors"
	"fmt"
	"math"

	"staggered-grid-go/order"
)

// ErrConfiguration 表示网格参数在当前行情下不成立（边界倒挂、
// 现价非正、计算出的覆盖距离为负等）。对该交易对是致命错误。
var ErrConfiguration = errors.New("invalid grid configuration")

// Params 是网格引擎的不可变参数，构造时校验，运行期只读。
type Params struct {
	Shape            Shape
	Spread           float64 // 两侧间空隙占比，如 0.02 表示 2%
	Increment        float64 // 相邻档位间距占现价比例，如 0.01 表示 1%
	OperationalDepth int     // 两侧合计同时挂在交易所的真实订单上限
	LowerBound       float64 // 最低买价
	UpperBound       float64 // 最高卖价
	Fee              float64 // 交易手续费占比
}

// Validate 校验参数不变式。
func (p Params) Validate() error {
	if _, ok := shapeProfiles[p.Shape]; !ok {
		return fmt.Errorf("%w: unknown shape %q", ErrConfiguration, p.Shape)
	}
	if p.LowerBound <= 0 || p.UpperBound <= p.LowerBound {
		return fmt.Errorf("%w: bounds must satisfy 0 < lower(%v) < upper(%v)", ErrConfiguration, p.LowerBound, p.UpperBound)
	}
	if p.Increment <= 0 || p.Increment >= 1 {
		return fmt.Errorf("%w: increment %v must be in (0,1)", ErrConfiguration, p.Increment)
	}
	if p.Spread < 0 {
		return fmt.Errorf("%w: spread %v must be >= 0", ErrConfiguration, p.Spread)
	}
	if p.OperationalDepth < 0 {
		return fmt.Errorf("%w: operational depth %d must be >= 0", ErrConfiguration, p.OperationalDepth)
	}
	if p.Fee < 0 {
		return fmt.Errorf("%w: fee %v must be >= 0", ErrConfiguration, p.Fee)
	}
	return nil
}

// CountAndAverage 计算一侧的订单数量与平均每单金额。
// available 以该侧消耗的币种计价：买侧为计价货币，卖侧为基础资产。
// 覆盖距离为负或现价非正时返回 ErrConfiguration；数量为 0 不是错误。
func CountAndAverage(p Params, referencePrice float64, selling bool, lowerBound, upperBound, available float64) (int, float64, error) {
	if referencePrice <= 0 {
		return 0, 0, fmt.Errorf("%w: reference price %v must be > 0", ErrConfiguration, referencePrice)
	}
	var distance float64
	if selling {
		distance = upperBound - lowerBound*(1+p.Spread/2)
	} else {
		distance = upperBound*(1-p.Spread/2) - lowerBound
	}
	if distance < 0 {
		return 0, 0, fmt.Errorf("%w: negative order distance %v (lower %v, upper %v, spread %v)",
			ErrConfiguration, distance, lowerBound, upperBound, p.Spread)
	}
	count := int(math.Floor(distance/(referencePrice*p.Increment) + 1))
	if count <= 0 {
		return 0, 0, nil
	}
	return count, available / float64(count), nil
}

// PriceAtIteration 返回第 i 档价格。i=0 是离现价最远的一档：
// 卖侧从上界逐档往下走，买侧从下界逐档往上走，步长恒为 现价×increment。
func PriceAtIteration(referencePrice, startingBound float64, selling bool, i int, increment float64) float64 {
	step := referencePrice * increment * float64(i)
	if selling {
		return startingBound - step
	}
	return startingBound + step
}

// QuantityAtIteration 按形态在第 i 档分配数量（以基础资产计）。
// 先在 [min, max] 金额区间内按比例取值，再除以档位价格。
// 单档阶梯（count=1）时比例取 0，使用最小金额。
func QuantityAtIteration(average float64, shape Shape, side order.Side, i, count int, price float64) float64 {
	m := shape.Multiplier()
	minQuantity := average * (1 - m/2)
	maxQuantity := average * (1 + m/2)
	delta := maxQuantity - minQuantity

	ratio := 0.0
	if count > 1 {
		ratio = float64(i) / float64(count-1)
		if shape.DirectionFor(side) == Decreasing {
			ratio = 1 - ratio
		}
	}
	return (minQuantity + delta*ratio) / price
}
