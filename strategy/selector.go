package strategy

import "staggered-grid-go/order"

// ActivateNearest 在两侧阶梯（i=0 离现价最远）中激活真实订单：
// 从最贴近现价的一端起买一卖一交替清除 Virtual 标记，
// 直到激活数达到 depth 或两侧都耗尽。其余条目保持虚拟。
// 原地修改，不改变阶梯的存储顺序。
func ActivateNearest(buys, sells []order.Spec, depth int) {
	activated := 0
	buyIdx := len(buys) - 1
	sellIdx := len(sells) - 1
	for activated < depth && (buyIdx >= 0 || sellIdx >= 0) {
		if buyIdx >= 0 {
			buys[buyIdx].Virtual = false
			buyIdx--
			activated++
		}
		if sellIdx >= 0 && activated < depth {
			sells[sellIdx].Virtual = false
			sellIdx--
			activated++
		}
	}
}
