package generator

import (
	"fmt"
	"math"
)

// ValidateSeed はシード値が API の受け付ける範囲 (0 から int32 の最大値) にあるかを確認します。
// nil は未指定として扱います。
func ValidateSeed(s *int64) error {
	if s == nil {
		return nil
	}
	if *s < 0 || *s > math.MaxInt32 {
		return fmt.Errorf("%w: %d (0-%d)", ErrInvalidSeed, *s, math.MaxInt32)
	}
	return nil
}

// seedToPtrInt32 は domain の *int64 を SDK 用の *int32 に変換します。
// ValidateSeed を通過した値のみを渡してください。
func seedToPtrInt32(s *int64) *int32 {
	if s == nil {
		return nil
	}
	v := int32(*s)
	return &v
}

// dereferenceSeed は *int64 を安全に int64 に変換します。
// nil の場合はデフォルト値（0）を返します。
func dereferenceSeed(s *int64) int64 {
	if s == nil {
		return 0
	}
	return *s
}
