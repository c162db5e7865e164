// Package dsl 提供基于 CEL (Common Expression Language) 的规则解释器，
// 用于以配置表达推荐结果的过滤规则（价格上限、平台排除等）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shopmall/recmall/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("meta", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Rule 是一条编译好的布尔规则，可对多条结果重复求值。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.strategy == "discounted"
//   - 数值：item.score > 0.7 / meta.price >= 100.0
//   - 逻辑：meta.platform == "jd" && item.score > 0.8
//   - 存在性：label.strategy != null
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式并缓存为可重复执行的 Rule。
func Compile(expr string) (*Rule, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program error: %v", err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回规则的原始表达式。
func (r *Rule) Expr() string { return r.expr }

// Eval 对一条推荐结果执行规则，返回布尔结果。
// 访问不存在的 key 会报错，表达式应使用 xxx != null 检查存在性。
func (r *Rule) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("dsl: eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.strategy 直接取 value，方便规则书写
			labelAccessor[k] = v.Value
		}
	}

	itemInput := map[string]interface{}{}
	metaInput := map[string]interface{}{}
	if item != nil {
		itemInput = map[string]interface{}{
			"id":     item.ID,
			"score":  item.Score,
			"meta":   item.Meta,
			"labels": labels,
		}
		for k, v := range item.Meta {
			metaInput[k] = v
		}
	}

	rctxInput := map[string]interface{}{}
	if rctx != nil {
		rctxInput = map[string]interface{}{
			"user_id": rctx.UserID,
			"item_id": rctx.ItemID,
			"params":  rctx.Params,
		}
	}

	return map[string]interface{}{
		"item":  itemInput,
		"label": labelAccessor,
		"meta":  metaInput,
		"rctx":  rctxInput,
	}
}
