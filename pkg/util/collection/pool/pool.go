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

// Pool provides an abstraction for referring to large values by a smaller index
// value.  The pool stores the actual value, and provides fast access via an
// index.  This makes sense when we have a relatively small number of values
// which can be referred to many times over (e.g. identifiers in a source file).
type Pool[K any, T any] interface {
	// Lookup a given value in the pool using an index.  This fails if the index
	// was not issued by this pool.
	Get(K) (T, bool)
	// Allocate value into pool, returning its index.  Allocating a value
	// already in the pool returns the existing index.
	Put(T) K
}
