package core

import "testing"

func TestWeight(t *testing.T) {
	tests := []struct {
		kind    Kind
		want    float64
		wantErr bool
	}{
		{KindView, 1.0, false},
		{KindFavorite, 2.0, false},
		{KindCart, 3.0, false},
		{KindPurchase, 5.0, false},
		{Kind("share"), 0, true},
		{Kind(""), 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := Weight(tt.kind)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Weight(%q) expected error", tt.kind)
				}
				if !IsInvalidInput(err) {
					t.Errorf("Weight(%q) error code = %v, want INVALID_INPUT", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Weight(%q) error = %v", tt.kind, err)
			}
			if got != tt.want {
				t.Errorf("Weight(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

// 权重单调：购买 > 加购 > 收藏 > 浏览
func TestWeightMonotonic(t *testing.T) {
	order := []Kind{KindView, KindFavorite, KindCart, KindPurchase}
	prev := 0.0
	for _, kind := range order {
		w, err := Weight(kind)
		if err != nil {
			t.Fatalf("Weight(%q) error = %v", kind, err)
		}
		if w <= prev {
			t.Errorf("Weight(%q) = %v, want > %v", kind, w, prev)
		}
		prev = w
	}
}
