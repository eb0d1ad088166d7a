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
package pool

import (
	"hash/maphash"
	"math"
)

// STRING_INDEX_INIT_BUCKETS determines the initial number of hash buckets.
const STRING_INDEX_INIT_BUCKETS = 64

// STRING_INDEX_LOADING determines the loading factor (as a percentage) above
// which the index is rehashed.
const STRING_INDEX_LOADING = 75

// StringIndex is a pool of strings, where each distinct string is identified
// by a small index.  Indices are issued in order of first insertion, starting
// from zero, and hence are deterministic for a given insertion sequence.  This
// is not thread safe.
type StringIndex[K ~uint32] struct {
	seed maphash.Seed
	// strings stored in this index
	words []string
	// hash buckets
	buckets [][]uint32
}

var _ Pool[uint32, string] = &StringIndex[uint32]{}

// NewStringIndex constructs a new (empty) string index.
func NewStringIndex[K ~uint32]() *StringIndex[K] {
	return &StringIndex[K]{
		seed:    maphash.MakeSeed(),
		words:   nil,
		buckets: make([][]uint32, STRING_INDEX_INIT_BUCKETS),
	}
}

// Get implementation for the Pool interface.
func (p *StringIndex[K]) Get(index K) (string, bool) {
	if uint64(index) >= uint64(len(p.words)) {
		return "", false
	}
	//
	return p.words[index], true
}

// Put implementation for the Pool interface.
func (p *StringIndex[K]) Put(word string) K {
	index, hash := p.has(word)
	//
	if index == math.MaxUint32 {
		// Word not present, so add it.
		index = uint32(len(p.words))
		p.words = append(p.words, word)
		// Record entry in relevant bucket
		p.buckets[hash] = append(p.buckets[hash], index)
		// Rehash (if necessary)
		p.rehashIfOverloaded()
	}
	//
	return K(index)
}

// Size returns the number of distinct strings in this index.
func (p *StringIndex[K]) Size() uint {
	return uint(len(p.words))
}

// Check whether the hash map is exceed its loading factor and, if so, rehash.
func (p *StringIndex[K]) rehashIfOverloaded() {
	load := (100 * len(p.words)) / len(p.buckets)
	//
	if load > STRING_INDEX_LOADING {
		// Force a rehash
		p.rehash()
	}
}

// Has checks whether a given word is stored in this index, or not.
func (p *StringIndex[K]) has(word string) (uint32, uint64) {
	hash := maphash.String(p.seed, word) % uint64(len(p.buckets))
	// Attempt to lookup word
	for _, index := range p.buckets[hash] {
		if p.words[index] == word {
			return index, hash
		}
	}
	//
	return math.MaxUint32, hash
}

func (p *StringIndex[K]) rehash() {
	var (
		oldBuckets = p.buckets
		n          = uint64(len(oldBuckets) * 3)
	)
	// Triple number of buckets
	p.buckets = make([][]uint32, n)
	// Rehash!
	for _, bucket := range oldBuckets {
		for _, index := range bucket {
			// Determine new hash
			hash := maphash.String(p.seed, p.words[index]) % n
			// Record index in relevant bucket
			p.buckets[hash] = append(p.buckets[hash], index)
		}
	}
}
