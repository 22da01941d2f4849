// Package datamodel is a minimal reference implementation of the
// walker.Node and walker.ValueType contracts. It is not "the" data-model
// library — a production fuzzing target wires in its own grammar — but
// it is enough of one to drive the walker package's tests and the PNG
// grammar under datamodel/png.
package datamodel
