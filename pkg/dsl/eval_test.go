package dsl

import (
	"testing"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/utils"
)

func TestCompileInvalidExpr(t *testing.T) {
	if _, err := Compile("item.score >"); err == nil {
		t.Error("非法表达式应编译失败")
	}
}

func TestRuleEval(t *testing.T) {
	it := core.NewItem(101)
	it.Score = 0.8
	it.PutLabel(core.LabelStrategy, utils.Label{Value: "popular", Source: "strategy"})
	it.PutMeta("price", 5999.0)
	it.PutMeta("platform", "京东")

	rctx := &core.RecommendContext{UserID: 7}

	tests := []struct {
		expr string
		want bool
	}{
		{`item.score > 0.5`, true},
		{`item.score > 0.9`, false},
		{`label.strategy == "popular"`, true},
		{`label.strategy == "discounted"`, false},
		{`meta.price >= 5000.0`, true},
		{`meta.platform == "京东" && item.score > 0.7`, true},
		{`rctx.user_id == 7`, true},
		{`"price" in meta`, true},
		{`"weight" in meta`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			rule, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			got, err := rule.Eval(it, rctx)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestRuleEvalNonBoolean(t *testing.T) {
	rule, err := Compile(`item.score + 1.0`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := rule.Eval(core.NewItem(1), nil); err == nil {
		t.Error("非布尔表达式求值应报错")
	}
}

func TestRuleEvalMissingKey(t *testing.T) {
	rule, err := Compile(`meta.nonexistent > 1.0`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := rule.Eval(core.NewItem(1), nil); err == nil {
		t.Error("访问不存在的 key 应报错")
	}
}
