package generator

import (
	"errors"
	"math"
	"testing"
)

func TestSeedUtils(t *testing.T) {
	t.Run("dereferenceSeed: nil の場合は 0 を返す", func(t *testing.T) {
		if got := dereferenceSeed(nil); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("dereferenceSeed: 値がある場合はその値を返す", func(t *testing.T) {
		var val int64 = 999
		if got := dereferenceSeed(&val); got != 999 {
			t.Errorf("expected 999, got %v", got)
		}
	})

	t.Run("seedToPtrInt32: nil は nil のまま", func(t *testing.T) {
		if got := seedToPtrInt32(nil); got != nil {
			t.Errorf("expected nil, got %v", *got)
		}
	})

	t.Run("seedToPtrInt32: int32 に変換される", func(t *testing.T) {
		var val int64 = 1234
		got := seedToPtrInt32(&val)
		if got == nil || *got != 1234 {
			t.Errorf("expected 1234, got %v", got)
		}
	})
}

func TestValidateSeed(t *testing.T) {
	ptr := func(v int64) *int64 { return &v }

	tests := []struct {
		name    string
		seed    *int64
		wantErr bool
	}{
		{"未指定", nil, false},
		{"0", ptr(0), false},
		{"int32 の最大値", ptr(math.MaxInt32), false},
		{"負の値", ptr(-1), true},
		{"int32 を超える値", ptr(3000000000), true},
		{"2^32+1 (切り詰めると 1 になる値)", ptr(4294967297), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed(tt.seed)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ValidateSeed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidSeed) {
				t.Errorf("expected ErrInvalidSeed, got %v", err)
			}
		})
	}
}
