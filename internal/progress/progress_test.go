package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, 0, Compute(0, 0))
}

func TestComputeThreeOfFour(t *testing.T) {
	assert.Equal(t, 75, Compute(4, 3))
}

func TestComputeRoundsHalfUp(t *testing.T) {
	// 1/8 = 12.5%
	assert.Equal(t, 13, Compute(8, 1))
	// 1/3 = 33.33...%
	assert.Equal(t, 33, Compute(3, 1))
	// 2/3 = 66.66...%
	assert.Equal(t, 67, Compute(3, 2))
}

func TestComputeBounds(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for done := -2; done <= total+2; done++ {
			p := Compute(total, done)
			assert.GreaterOrEqual(t, p, 0, "total=%d done=%d", total, done)
			assert.LessOrEqual(t, p, 100, "total=%d done=%d", total, done)
		}
	}
}

func TestComputeAllDone(t *testing.T) {
	assert.Equal(t, 100, Compute(5, 5))
	// completed beyond total is clamped, never over 100
	assert.Equal(t, 100, Compute(5, 7))
}
