package conv

import "testing"

func TestDigitsToFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"16GB", 16},
		{"256GB", 256},
		{"1TB", 1},
		{"8", 8},
		{"12GB LPDDR5", 125}, // 只取数字字符，原样拼接
		{"旗舰版", 0},
		{"", 0},
		{"无", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DigitsToFloat(tt.in); got != tt.want {
				t.Errorf("DigitsToFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 1.5, 1.5, true},
		{"int", 3, 3.0, true},
		{"int64", int64(7), 7.0, true},
		{"bool true", true, 1.0, true},
		{"string", "x", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToFloat64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"name": "hot", "count": 5}
	if got := ConfigGet(m, "name", ""); got != "hot" {
		t.Errorf("ConfigGet name = %q", got)
	}
	if got := ConfigGet(m, "missing", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet missing = %q", got)
	}
	if got := ConfigGetInt64(m, "count", 0); got != 5 {
		t.Errorf("ConfigGetInt64 count = %d", got)
	}
}
