package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, defaultSeed, resolveSeed(0))
	assert.Equal(t, int64(-5), resolveSeed(-5))
}

func TestMemberSeed_DeterministicAndDistinct(t *testing.T) {
	seen := map[int64]bool{}
	for m := uint64(0); m < 1000; m++ {
		s := memberSeed(42, m)
		assert.Equal(t, s, memberSeed(42, m))
		seen[s] = true
	}
	assert.Len(t, seen, 1000)
	assert.NotEqual(t, memberSeed(42, 0), memberSeed(43, 0))
}

func TestMemberRand_Streams(t *testing.T) {
	a, sa := memberRand(7, 3)
	b, sb := memberRand(7, 3)
	assert.Equal(t, sa, sb)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
