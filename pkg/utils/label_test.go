package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			"both present",
			Label{Value: "popular", Source: "strategy"},
			Label{Value: "discounted", Source: "strategy"},
			Label{Value: "popular|discounted", Source: "strategy,strategy"},
		},
		{
			"empty existing",
			Label{},
			Label{Value: "a", Source: "s"},
			Label{Value: "a", Source: "s"},
		},
		{
			"empty incoming",
			Label{Value: "a", Source: "s"},
			Label{},
			Label{Value: "a", Source: "s"},
		},
		{
			"incoming without source",
			Label{Value: "a", Source: "s"},
			Label{Value: "b"},
			Label{Value: "a|b", Source: "s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel = %+v, want %+v", got, tt.want)
			}
		})
	}
}
