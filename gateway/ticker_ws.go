package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// BinanceSpotWSEndpoint 现货行情流默认地址。
const BinanceSpotWSEndpoint = "wss://stream.binance.com:9443"

// MiniTicker 提取 miniTicker 消息的核心字段。
type MiniTicker struct {
	Symbol string      `json:"s"`
	Close  json.Number `json:"c"`
}

// ParseMiniTicker 解析 miniTicker 消息，返回符号与最新价。
func ParseMiniTicker(raw []byte) (symbol string, last float64, err error) {
	var t MiniTicker
	if err = json.Unmarshal(raw, &t); err != nil {
		return
	}
	if t.Symbol == "" || t.Close == "" {
		err = fmt.Errorf("not a miniTicker payload")
		return
	}
	symbol = t.Symbol
	last, err = t.Close.Float64()
	return
}

// TickerFeed 订阅最新价流，把每个 tick 作为参考价推给回调。
// 引擎本身不拉行情，参考价始终由这类外部信号源供给。
type TickerFeed struct {
	Endpoint string
	Dialer   *websocket.Dialer
}

func NewTickerFeed() *TickerFeed {
	return &TickerFeed{
		Endpoint: BinanceSpotWSEndpoint,
		Dialer:   websocket.DefaultDialer,
	}
}

// Run 连接行情流并阻塞读取，每个最新价调用一次 onPrice。
// ctx 取消时关闭连接并返回。
func (f *TickerFeed) Run(ctx context.Context, symbol string, onPrice func(price float64)) error {
	if symbol == "" {
		return fmt.Errorf("symbol required")
	}
	stream := strings.ToLower(strings.ReplaceAll(symbol, "/", "")) + "@miniTicker"
	u := url.URL{
		Scheme: "wss",
		Host:   strings.TrimPrefix(f.Endpoint, "wss://"),
		Path:   "/ws/" + stream,
	}
	conn, _, err := f.Dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if _, last, err := ParseMiniTicker(message); err == nil && onPrice != nil {
			onPrice(last)
		}
	}
}
