package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		size     int
		wantLens []int
	}{
		{name: "even split", items: make([]int, 100), size: 50, wantLens: []int{50, 50}},
		{name: "remainder group", items: make([]int, 120), size: 50, wantLens: []int{50, 50, 20}},
		{name: "fewer than one group", items: make([]int, 7), size: 50, wantLens: []int{7}},
		{name: "size one", items: make([]int, 3), size: 1, wantLens: []int{1, 1, 1}},
		{name: "zero size keeps everything together", items: make([]int, 9), size: 0, wantLens: []int{9}},
		{name: "empty input", items: nil, size: 50, wantLens: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := Chunk(tt.items, tt.size)
			require.Len(t, groups, len(tt.wantLens))
			for i, want := range tt.wantLens {
				assert.Len(t, groups[i], want)
			}
		})
	}
}

func TestChunk_PreservesOrder(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	groups := Chunk(items, 2)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"a", "b"}, groups[0])
	assert.Equal(t, []string{"c", "d"}, groups[1])
	assert.Equal(t, []string{"e"}, groups[2])
}

func TestBatchBuffer(t *testing.T) {
	buffer := NewBatchBuffer[int]()
	assert.Zero(t, buffer.Size())
	assert.Nil(t, buffer.GetAndClear())

	buffer.Add(1)
	buffer.Add(2)
	buffer.Add(3)
	assert.Equal(t, 3, buffer.Size())

	batch := buffer.GetAndClear()
	assert.Equal(t, []int{1, 2, 3}, batch)
	assert.Zero(t, buffer.Size())
	assert.Nil(t, buffer.GetAndClear())
}

func TestBatchBuffer_ConcurrentAdds(t *testing.T) {
	buffer := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buffer.Add(i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, buffer.Size())
	assert.Len(t, buffer.GetAndClear(), 100)
}
