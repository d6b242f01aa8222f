package strategy

import (
	"fmt"

	"staggered-grid-go/order"
)

// Shape 命名的数量分布策略：控制挂单量沿阶梯如何变化。
type Shape string

const (
	ShapeNeutral   Shape = "neutral"
	ShapeMountain  Shape = "mountain"
	ShapeValley    Shape = "valley"
	ShapeBuySlope  Shape = "buy slope"
	ShapeSellSlope Shape = "sell slope"
)

// Direction 描述该侧数量随价格靠近现价的变化方向。
type Direction int

const (
	// Increasing 越靠近现价数量越大。
	Increasing Direction = iota
	// Decreasing 越靠近现价数量越小。
	Decreasing
)

// shapeProfile 是形态的不可变档案：数量波动倍数与两侧方向。
// 构造期一次解析，运行期查表即可，无需多态。
type shapeProfile struct {
	Multiplier float64
	Buy        Direction
	Sell       Direction
}

var shapeProfiles = map[Shape]shapeProfile{
	ShapeNeutral:   {Multiplier: 0.3, Buy: Increasing, Sell: Increasing},
	ShapeMountain:  {Multiplier: 1, Buy: Increasing, Sell: Increasing},
	ShapeValley:    {Multiplier: 1, Buy: Decreasing, Sell: Decreasing},
	ShapeBuySlope:  {Multiplier: 1, Buy: Decreasing, Sell: Increasing},
	ShapeSellSlope: {Multiplier: 1, Buy: Increasing, Sell: Decreasing},
}

// ParseShape 解析配置中的形态名。
func ParseShape(s string) (Shape, error) {
	shape := Shape(s)
	if _, ok := shapeProfiles[shape]; !ok {
		return "", fmt.Errorf("unknown strategy shape %q", s)
	}
	return shape, nil
}

// Multiplier 返回该形态的数量波动倍数 m（0,1]。
func (s Shape) Multiplier() float64 {
	return shapeProfiles[s].Multiplier
}

// DirectionFor 返回该形态在指定方向上的数量变化方向。
func (s Shape) DirectionFor(side order.Side) Direction {
	p := shapeProfiles[s]
	if side == order.SideSell {
		return p.Sell
	}
	return p.Buy
}
