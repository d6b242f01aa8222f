package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"staggered-grid-go/infrastructure/logger"
	"staggered-grid-go/strategy"
)

// 手续费默认按 0.1% 计。
const defaultFeePercent = 0.1

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env         string                  `yaml:"env"`
	Logger      logger.Config           `yaml:"logger"`
	MetricsAddr string                  `yaml:"metricsAddr"`
	Feed        FeedConfig              `yaml:"feed"`
	Account     AccountConfig           `yaml:"account"`
	Symbols     map[string]SymbolConfig `yaml:"symbols"`
}

// FeedConfig 行情流（参考价信号源）配置。
type FeedConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// AccountConfig 账户名与模拟盘初始余额。
type AccountConfig struct {
	Name     string             `yaml:"name"`
	Balances map[string]float64 `yaml:"balances"`
}

// SymbolConfig 保存单个交易对的阶梯网格参数。
// 百分比字段按配置习惯以百分数书写，加载时换算为小数。
type SymbolConfig struct {
	Mode             string  `yaml:"mode"`             // 形态：neutral/mountain/valley/buy slope/sell slope
	SpreadPercent    float64 `yaml:"spreadPercent"`    // 两侧间空隙（百分数）
	IncrementPercent float64 `yaml:"incrementPercent"` // 档位间距（百分数）
	LowerBound       float64 `yaml:"lowerBound"`       // 最低买价
	UpperBound       float64 `yaml:"upperBound"`       // 最高卖价
	OperationalDepth int     `yaml:"operationalDepth"` // 真实订单上限（两侧合计）
	FeePercent       float64 `yaml:"feePercent"`       // 手续费（百分数），缺省 0.1
}

// Params 换算为策略参数并校验。
func (sc SymbolConfig) Params() (strategy.Params, error) {
	shape, err := strategy.ParseShape(sc.Mode)
	if err != nil {
		return strategy.Params{}, err
	}
	fee := sc.FeePercent
	if fee == 0 {
		fee = defaultFeePercent
	}
	p := strategy.Params{
		Shape:            shape,
		Spread:           sc.SpreadPercent / 100,
		Increment:        sc.IncrementPercent / 100,
		OperationalDepth: sc.OperationalDepth,
		LowerBound:       sc.LowerBound,
		UpperBound:       sc.UpperBound,
		Fee:              fee / 100,
	}
	if err := p.Validate(); err != nil {
		return strategy.Params{}, err
	}
	return p, nil
}

// Load reads YAML config from path and applies basic validation.
// 没有配置文件无法启动：策略参数不提供内置默认值。
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides 在 Load 之上套用环境变量覆盖，
// 便于部署时不改文件就切环境或信号源地址。
// 识别 GRID_ENV、GRID_METRICS_ADDR、GRID_FEED_ENDPOINT、GRID_ACCOUNT_NAME。
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("GRID_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("GRID_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("GRID_FEED_ENDPOINT"); v != "" {
		cfg.Feed.Endpoint = v
	}
	if v := os.Getenv("GRID_ACCOUNT_NAME"); v != "" {
		cfg.Account.Name = v
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Account.Name == "" {
		return errors.New("account.name is required")
	}
	if len(cfg.Symbols) == 0 {
		return errors.New("symbols config is required")
	}
	for sym, sc := range cfg.Symbols {
		if _, err := sc.Params(); err != nil {
			return fmt.Errorf("symbol %s: %w", sym, err)
		}
	}
	return nil
}
