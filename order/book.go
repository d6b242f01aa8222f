package order

import "sync"

// Book 记录挂单并支持查询；模拟执行方用它维护敞口。
type Book struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewBook() *Book {
	return &Book{orders: make(map[string]Order)}
}

func (b *Book) Set(o Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[o.ID] = o
}

func (b *Book) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.orders, id)
}

func (b *Book) Get(id string) (Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[id]
	return o, ok
}

// List 返回全部挂单（拷贝）。
func (b *Book) List() []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	res := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		res = append(res, o)
	}
	return res
}

// BySymbol 返回指定交易对的挂单（拷贝）。
func (b *Book) BySymbol(symbol string) []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	res := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		if o.Symbol == symbol {
			res = append(res, o)
		}
	}
	return res
}

// ClosestAnchor 在挂单集合中找出补单锚点：
// 补买单时取买侧最高价（从下方最贴近现价），补卖单时取卖侧最低价。
// 对手方向无挂单时返回 ErrMissingAnchor。
func ClosestAnchor(orders []Order, side Side) (Order, error) {
	var best Order
	found := false
	for _, o := range orders {
		if o.Side != side {
			continue
		}
		if !found {
			best = o
			found = true
			continue
		}
		if side == SideBuy && o.Price > best.Price {
			best = o
		}
		if side == SideSell && o.Price < best.Price {
			best = o
		}
	}
	if !found {
		return Order{}, ErrMissingAnchor
	}
	return best, nil
}
