package vecsim

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

/*
KetCache memoizes Construct. Building a wide register from its description
is an O(2^n) fold; callers that start many simulations from the same few
states pay it once. The cache keeps its own copy and hands out clones, so a
caller mutating its register never changes what the next caller gets.
*/
type KetCache struct {
	cache    *lru.Cache[string, *Register]
	governor *MemoryGovernor
}

func NewKetCache(size int) (*KetCache, error) {
	if size <= 0 {
		size = defaultKetCacheSize
	}

	cache, err := lru.New[string, *Register](size)
	if err != nil {
		return nil, errors.Wrap(err, "new ket cache")
	}

	return &KetCache{cache: cache, governor: governor()}, nil
}

// Construct returns a fresh copy of the register description denotes.
func (kc *KetCache) Construct(description string) (*Register, error) {
	if r, ok := kc.cache.Get(description); ok {
		return r.Clone(), nil
	}

	r, err := construct(description, kc.governor)
	if err != nil {
		return nil, err
	}

	kc.cache.Add(description, r)
	return r.Clone(), nil
}

func (kc *KetCache) Len() int {
	return kc.cache.Len()
}

func (kc *KetCache) Purge() {
	kc.cache.Purge()
}
