package strategy

import (
	"staggered-grid-go/order"
)

// BuildLadder 为一侧生成完整阶梯（i=0 离现价最远）。
// 买侧覆盖 [LowerBound, 现价]，卖侧覆盖 [现价, UpperBound]。
// 该交易对已有挂单时不重复生成，返回空阶梯（幂等空操作，
// 避免在已存在的网格上叠加新网格）。生成的条目默认全部为虚拟单。
func BuildLadder(p Params, side order.Side, symbol string, referencePrice, available float64, existing []order.Order) ([]order.Spec, error) {
	if len(existing) > 0 {
		return nil, nil
	}
	selling := side == order.SideSell
	lowerBound := p.LowerBound
	upperBound := referencePrice
	if selling {
		lowerBound = referencePrice
		upperBound = p.UpperBound
	}

	count, average, err := CountAndAverage(p, referencePrice, selling, lowerBound, upperBound, available)
	if err != nil {
		return nil, err
	}

	startingBound := lowerBound
	if selling {
		startingBound = upperBound
	}
	specs := make([]order.Spec, 0, count)
	for i := 0; i < count; i++ {
		price := PriceAtIteration(referencePrice, startingBound, selling, i, p.Increment)
		quantity := QuantityAtIteration(average, p.Shape, side, i, count, price)
		specs = append(specs, order.Spec{
			Side:     side,
			Quantity: quantity,
			Price:    price,
			Symbol:   symbol,
			Virtual:  true,
		})
	}
	return specs, nil
}
