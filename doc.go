// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package polydd defines a concrete type for Multi-valued Decision Diagrams
(MDD), a data structure used to efficiently represent discrete functions over
a fixed set of variables, each ranging over its own finite domain. Binary
Decision Diagrams (BDD) are the special case where every variable has domain
{0, 1}.

Basics

Each diagram is built and owned by a Manager. A Manager has a fixed number of
variables, declared when it is created with New; each variable is named by an
index in [0..Varnum), has a domain size, and occupies a level in the same
interval under the Manager's current order. Index and level coincide until a
reordering call (SwapVars, MoveVar, SiftVars) changes the order; Evaluate and
variable-directed operations always address variables by index, so their
results do not depend on the order. A library user can create multiple
Manager values, possibly with different numbers of variables and different
domains per variable.

Most operations on a Manager return a Node; a Node is a handle to a vertex in
a diagram, including the index of the variable it tests and the addresses of
its sons (one per value in the variable's domain). Nodes are only ever valid
with respect to the Manager that produced them; mixing Nodes from different
managers in a single operation is a programming error and panics.

Node manager

Internally, a Manager hash-conses every node it creates through a per-variable
unique table, so that structurally identical sub-diagrams are always
represented by the same Node. Results of the generic Apply operation are
memoized in a per-operator apply cache keyed by node identity. Nodes whose
reference count has dropped to zero are reclaimed by a deferred sweep of the
unique tables, and variable order can be
adjusted, either by swapping two adjacent levels or by a greedy sifting
pass, without changing the function a diagram represents.

Automatic memory management

Like BuDDy and its Go port rudd, we piggyback on the garbage collection
mechanism offered by our host language. The Manager takes care of table
resizing and memory reclamation internally, but external references to nodes
made by library users are tracked automatically by the Go runtime through
finalizers attached to exported node handles; a caller never needs to call a
"deref" method explicitly.

External interfaces

Two subpackages provide interfaces to the outside world that do not belong in
the node manager itself: pla ingests files in the Programmable Logic Array
format, and reliability computes availability and importance measures over a
diagram given a per-node user-data slot, using only a generic level-order
traversal exported by this package.
*/
package polydd
