/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32).
A pair holds a primary value and a secondary one, which the ACTION-table uses
to remember the losing competitor of a conflict.

This implementation uses the COO algorithm (a.k.a. triplet-encoding),
with triplets kept in row-major order.

	https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
	https://www.coin-or.org/Ipopt/documentation/node38.html

Matrices are not safe for concurrent modification. Once filled, concurrent
reads are fine.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sparse

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//	M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//	M.Set(2, 3, 4711)              // set a value
//	v := M.Value(2, 3)             // returns 4711
//	M.SetPair(2, 3, 4711, 123)     // store a second value
//	cnt := M.ValueCount()          // still returns 1 (one position set)
//	v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    intPair
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// find returns the index of position (i,j) in the triplet list, and whether
// a triplet is stored there. If not, the index is the insertion point.
func (m *IntMatrix) find(i, j int) (int, bool) {
	return slices.BinarySearchFunc(m.values, [2]int{i, j}, func(t triplet, pos [2]int) int {
		switch {
		case t.storedLeftOf(pos[0], pos[1]):
			return -1
		case t.storedAt(pos[0], pos[1]):
			return 0
		}
		return 1
	})
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, found := m.find(i, j); found {
		return m.values[k].value.a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, found := m.find(i, j); found {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j). A secondary value at this
// position is cleared.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.SetPair(i, j, value, m.nullval)
}

// SetPair sets both the primary and the secondary value at position (i,j).
func (m *IntMatrix) SetPair(i, j int, a, b int32) *IntMatrix {
	m.checkBounds(i, j)
	k, found := m.find(i, j)
	if found {
		m.values[k].value = newIntPair(a, b)
		return m
	}
	m.insert(k, triplet{row: i, col: j, value: newIntPair(a, b)})
	return m
}

func (m *IntMatrix) insert(at int, tnew triplet) {
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
}

func (m *IntMatrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %d x %d", i, j, m.rowcnt, m.colcnt))
	}
}

// Each calls f for every position set, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value.a, t.value.b)
	}
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func newIntPair(a, b int32) intPair {
	return intPair{a, b}
}
