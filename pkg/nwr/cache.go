// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package nwr

import (
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DEFAULT_CACHE_SIZE is the number of patterns of each kind retained by a
// cache created with NewCache(0).
const DEFAULT_CACHE_SIZE = 128

type swapKey struct {
	n uint
	w uint
}

// Cache memoises compiled patterns.  Since compilation is a pure function of
// its parameters, the same pattern instance can be handed to any number of
// concurrent builds.  Patterns returned from a cache must not be modified.
type Cache struct {
	swaps  *lru.Cache[swapKey, *SwapPattern]
	adders *lru.Cache[uint, *AdderPattern]
}

// NewCache constructs a cache holding up to size patterns of each kind.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DEFAULT_CACHE_SIZE
	}
	//
	swaps, err := lru.New[swapKey, *SwapPattern](size)
	if err != nil {
		return nil, err
	}
	//
	adders, err := lru.New[uint, *AdderPattern](size)
	if err != nil {
		return nil, err
	}
	//
	return &Cache{swaps, adders}, nil
}

// SwapPattern returns the (possibly cached) swap network for n choose w.
// Lines are rounded up before lookup, so n=5 and n=8 share an entry.
func (p *Cache) SwapPattern(n uint, w uint) (*SwapPattern, error) {
	key := swapKey{util_math.NextPowerOfTwo(n), w}
	//
	if pattern, ok := p.swaps.Get(key); ok {
		return pattern, nil
	}
	//
	pattern, err := CompileSwapPattern(n, w)
	if err != nil {
		return nil, err
	}
	// Racing compilations produce identical patterns, so either may win.
	p.swaps.Add(key, pattern)
	//
	return pattern, nil
}

// AdderPattern returns the (possibly cached) adder tree for n lines.
func (p *Cache) AdderPattern(n uint) (*AdderPattern, error) {
	key := util_math.NextPowerOfTwo(n)
	//
	if pattern, ok := p.adders.Get(key); ok {
		return pattern, nil
	}
	//
	pattern, err := CompileAdderPattern(n)
	if err != nil {
		return nil, err
	}
	//
	p.adders.Add(key, pattern)
	//
	return pattern, nil
}

// Len returns the number of swap and adder patterns currently cached.
func (p *Cache) Len() (int, int) {
	return p.swaps.Len(), p.adders.Len()
}
