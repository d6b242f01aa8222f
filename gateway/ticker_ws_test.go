package gateway

import "testing"

func TestParseMiniTicker(t *testing.T) {
	raw := []byte(`{"e":"24hrMiniTicker","s":"BTCUSDT","c":"101234.5","o":"99000.1"}`)
	symbol, last, err := ParseMiniTicker(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if symbol != "BTCUSDT" {
		t.Fatalf("symbol = %s", symbol)
	}
	if last != 101234.5 {
		t.Fatalf("last = %v", last)
	}
}

func TestParseMiniTickerRejectsOtherPayloads(t *testing.T) {
	if _, _, err := ParseMiniTicker([]byte(`{"result":null,"id":1}`)); err == nil {
		t.Fatalf("expected error for non-ticker payload")
	}
	if _, _, err := ParseMiniTicker([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestTickerFeedRequiresSymbol(t *testing.T) {
	f := NewTickerFeed()
	if err := f.Run(nil, "", nil); err == nil {
		t.Fatalf("expected error for empty symbol")
	}
}
