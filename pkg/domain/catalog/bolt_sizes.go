package catalog

import (
	"fmt"
	"slices"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

// BoltSizes is an ascending, duplicate-free sequence of bolt lengths in millimetres
type BoltSizes struct {
	sizes []int
}

// NewBoltSizes validates and wraps a bolt-size sequence
func NewBoltSizes(sizes []int) (BoltSizes, error) {
	if len(sizes) == 0 {
		return BoltSizes{}, fmt.Errorf("%w: bolt size catalog is empty", entities.ErrInvalidCatalog)
	}
	for i, s := range sizes {
		if s <= 0 {
			return BoltSizes{}, fmt.Errorf("%w: bolt size must be positive, got %d", entities.ErrInvalidCatalog, s)
		}
		if i > 0 && s <= sizes[i-1] {
			return BoltSizes{}, fmt.Errorf("%w: bolt sizes must be strictly ascending, %d follows %d",
				entities.ErrInvalidCatalog, s, sizes[i-1])
		}
	}
	return BoltSizes{sizes: slices.Clone(sizes)}, nil
}

// Len returns the number of cataloged sizes
func (b BoltSizes) Len() int {
	return len(b.sizes)
}

// Values returns a copy of the sizes
func (b BoltSizes) Values() []int {
	return slices.Clone(b.sizes)
}

// Min returns the smallest cataloged size
func (b BoltSizes) Min() int {
	return b.sizes[0]
}

// Max returns the largest cataloged size
func (b BoltSizes) Max() int {
	return b.sizes[len(b.sizes)-1]
}

// IndexAtLeast returns the index of the smallest size >= required.
// found is false when every size is shorter, in which case the last index is returned.
func (b BoltSizes) IndexAtLeast(required int) (index int, found bool) {
	i, _ := slices.BinarySearch(b.sizes, required)
	if i == len(b.sizes) {
		return len(b.sizes) - 1, false
	}
	return i, true
}

// RoundUp returns the smallest size >= required, clamped to the catalog maximum
func (b BoltSizes) RoundUp(required int) int {
	i, _ := b.IndexAtLeast(required)
	return b.sizes[i]
}

// At returns the size at index i, clamped into the catalog range
func (b BoltSizes) At(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(b.sizes) {
		i = len(b.sizes) - 1
	}
	return b.sizes[i]
}
