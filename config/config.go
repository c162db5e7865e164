// Package config 提供 YAML 配置驱动的引擎装配：
// 行为权重覆盖、训练门槛、各入口的回退链顺序、黑名单与 CEL 过滤规则。
//
// 示例：
//
//	min_interactions: 10
//	weights:
//	  view: 1.0
//	  purchase: 5.0
//	chains:
//	  user: [personalized, popular]
//	  similar: [similar-item, content, popular]
//	blacklist: [1001, 1002]
//	rules:
//	  - 'meta.price != null && meta.price > 10000.0'
//	hot_key: "hot:items"
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	recmall "github.com/shopmall/recmall"
	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/filter"
)

// Config 是引擎的 YAML 配置。
type Config struct {
	// MinInteractions 训练门槛，0 表示用默认值
	MinInteractions int `yaml:"min_interactions"`

	// Weights 行为权重覆盖（key 为行为类型名）
	Weights map[string]float64 `yaml:"weights"`

	// Chains 各入口的回退链顺序（key: user/similar/popular/discounted）
	Chains map[string][]string `yaml:"chains"`

	// Blacklist 黑名单商品 id
	Blacklist []int64 `yaml:"blacklist"`

	// Rules CEL 过滤规则，命中的结果被移除
	Rules []string `yaml:"rules"`

	// HotKey 运营热门榜在 KV 存储中的 key（配合 WithHotStore 使用）
	HotKey string `yaml:"hot_key"`
}

// Load 解析 YAML 配置。
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile 从文件加载配置。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(data)
}

// 已注册的入口与策略名，校验用。
var (
	knownOps = map[string]struct{}{
		"user": {}, "similar": {}, "popular": {}, "discounted": {},
	}
	knownStrategies = map[string]struct{}{
		"personalized": {}, "similar-item": {}, "content": {}, "popular": {}, "discounted": {},
	}
	knownKinds = map[string]struct{}{
		string(core.KindView): {}, string(core.KindFavorite): {},
		string(core.KindCart): {}, string(core.KindPurchase): {},
	}
)

// Validate 校验入口名、策略名与行为类型名均已注册。
func (c *Config) Validate() error {
	for op, names := range c.Chains {
		if _, ok := knownOps[op]; !ok {
			return fmt.Errorf("config: unknown chain op %q (supported: user/similar/popular/discounted)", op)
		}
		for _, name := range names {
			if _, ok := knownStrategies[name]; !ok {
				return fmt.Errorf("config: unknown strategy %q in chain %q", name, op)
			}
		}
	}
	for kind := range c.Weights {
		if _, ok := knownKinds[kind]; !ok {
			return fmt.Errorf("config: unknown interaction kind %q in weights", kind)
		}
	}
	return nil
}

// Options 把配置展开为引擎 Option 列表。
// kv 为运营数据的 KV 存储，可为 nil（未配置 HotKey 时不需要）。
func (c *Config) Options(kv core.KeyValueStore) ([]recmall.Option, error) {
	var opts []recmall.Option

	if c.MinInteractions > 0 {
		opts = append(opts, recmall.WithMinInteractions(c.MinInteractions))
	}

	if len(c.Weights) > 0 {
		weights := make(map[core.Kind]float64, len(c.Weights))
		for k, w := range c.Weights {
			weights[core.Kind(k)] = w
		}
		opts = append(opts, recmall.WithWeights(weights))
	}

	for op, names := range c.Chains {
		opts = append(opts, recmall.WithChainOrder(op, names))
	}

	var filters []filter.Filter
	if len(c.Blacklist) > 0 {
		filters = append(filters, &filter.BlacklistFilter{ItemIDs: c.Blacklist})
	}
	for _, expr := range c.Rules {
		f, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("config: rule %q: %w", expr, err)
		}
		filters = append(filters, f)
	}
	if len(filters) > 0 {
		opts = append(opts, recmall.WithFilters(filters...))
	}

	if c.HotKey != "" && kv != nil {
		opts = append(opts, recmall.WithHotStore(kv, c.HotKey))
	}

	return opts, nil
}
