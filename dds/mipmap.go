package dds

import (
	"fmt"
	"math/bits"
)

// calculateMipMapCount calculates the number of mipmap levels for a given width and height.
func calculateMipMapCount(width, height int) (int, error) {
	count := 1
	w, err := u32FromInt(width)
	if err != nil {
		return 0, err
	}

	h, err := u32FromInt(height)
	if err != nil {
		return 0, err
	}

	for w > 1 || h > 1 {
		count++
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}

	if count > 11 {
		count = 11
	}

	return count, nil
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}

// faceSize validates the mip chain of one face and returns its total payload
// size. The chain is malformed when the larger dimension would shrink to zero
// before mips levels are produced.
func faceSize(f SourceFormat, width, height, mips int) (int, error) {
	if mips < 1 {
		mips = 1
	}
	if limit := bits.Len(uint(max(width, height))); mips > limit {
		return 0, fmt.Errorf("%w: %d levels for %dx%d (max %d)", ErrMalformedMipChain, mips, width, height, limit)
	}

	total := 0
	for level := 0; level < mips; level++ {
		n, err := levelSize(f, mipDimension(width, level), mipDimension(height, level), level)
		if err != nil {
			return 0, err
		}
		total += n
		if total > maxInt32 {
			return 0, ErrSizeOverflow
		}
	}

	return total, nil
}
