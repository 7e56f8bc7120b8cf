package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zinets/zinets/bloom"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("日"))

	f.Add("日")

	assert.True(t, f.Test("日"))
	assert.False(t, f.Test("白"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("日")
	f.Add("白")
	f.Add("伯")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("日")
	countAfterFirst := f.EstimatedCount()

	f.Add("日")
	f.Add("日")

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test("日"))
}

func TestFilter_ZeroCapacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add("日")

	assert.True(t, f.Test("日"))
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := string(rune(0x4E00 + i))
			f.Add(token)
			f.Test(token)
		}()
	}
	wg.Wait()

	for i := range 20 {
		assert.True(t, f.Test(string(rune(0x4E00+i))))
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("added-%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("missing-%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
