// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd_test

import (
	"fmt"

	"github.com/polydd/polydd"
)

// This example shows the basic usage of the package: create a manager over
// Boolean variables, combine diagrams with Apply, and query the result.
func Example_basic() {
	// Three Boolean variables, with tuned initial pool and cache sizes.
	m := polydd.New([]int{2, 2, 2}, polydd.Nodesize(10000), polydd.Cachesize(3000))
	// n == (x0 & x1) | x2
	n := m.Apply(polydd.OPor, m.Apply(polydd.OPand, m.Variable(0), m.Variable(1)), m.Variable(2))
	fmt.Printf("f(1, 1, 0) = %d\n", m.Evaluate(n, []polydd.Value{1, 1, 0}))
	fmt.Printf("Number of sat. assignments is %s\n",
		m.CountSatisfying(n, func(v polydd.Value) bool { return v != 0 }))
	// Output:
	// f(1, 1, 0) = 1
	// Number of sat. assignments is 5
}

// Variables may carry different domain sizes; operators generalize to any
// domain, so a diagram can represent a multi-valued function directly.
func Example_multivalued() {
	m := polydd.New([]int{3, 3})
	n := m.Apply(polydd.OPmax, m.Variable(0), m.Variable(1))
	fmt.Printf("max(2, 1) = %d\n", m.Evaluate(n, []polydd.Value{2, 1}))
	fmt.Printf("max(0, 1) = %d\n", m.Evaluate(n, []polydd.Value{0, 1}))
	// Output:
	// max(2, 1) = 2
	// max(0, 1) = 1
}
