package cache

import (
	"sync"
	"testing"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := New[string, int](2, func(k string, _ int) { evicted = append(evicted, k) })

	c.Add("a", 1)
	c.Add("b", 2)
	if _, ok := c.Get("a"); !ok { // a becomes MRU
		t.Fatal("a missing")
	}
	c.Add("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v", evicted)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
}

func TestLRU_GetOrAdd(t *testing.T) {
	c := New[string, *int](4, nil)
	calls := 0
	mk := func() *int { calls++; v := calls; return &v }

	first := c.GetOrAdd("ip", mk)
	second := c.GetOrAdd("ip", mk)
	if first != second || calls != 1 {
		t.Fatalf("GetOrAdd created %d values", calls)
	}
	c.Remove("ip")
	if c.GetOrAdd("ip", mk) == first {
		t.Fatal("Remove did not drop the entry")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[int, int](16, nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.GetOrAdd(i%32, func() int { return g })
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Fatalf("Len = %d exceeds capacity", c.Len())
	}
}

func TestNew_PanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New[string, int](0, nil)
}
