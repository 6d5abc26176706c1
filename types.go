// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

// Value is the value carried along an edge of a diagram, or returned by
// Evaluate. Ordinary values for a variable of domain size P lie in [0, P).
// Two additional sentinel values are used internally and can appear as the
// result of an operator application.
type Value uint32

const (
	// Undefined marks a value that has not been set, for instance an unset
	// input in a partial assignment passed to Evaluate, or the saturated
	// "no value in this domain" result some multi-valued operators produce.
	Undefined Value = 1<<32 - 1

	// Nondetermined is returned by Evaluate when an assignment does not fix
	// the function's value. Operators use it internally to stand for an
	// operand that is still an internal node, forcing Apply to recurse.
	Nondetermined Value = 1<<32 - 2
)
