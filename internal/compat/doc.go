// Package compat implements the compatibility verifier.
//
// Check is the primitive: encode a value under one revision's type, then
// attempt to decode the bytes under another revision's type, and report
// the outcome. A check is directional: Check[A, B] says nothing about
// Check[B, A]. It is also pure, so repeating it on the same input always
// yields the same result.
//
// Audit runs both directions for a record's revision pair and compares
// the observed outcomes against the prediction the schema model derives
// from the structural diff. A disagreement means either the codec policy
// or the truth table is wrong, which is exactly what the harness exists
// to catch.
package compat
