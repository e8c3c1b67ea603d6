// Package wire provides the byte-level codec boundary for skew.
//
// The codec policy is fixed and is what the compatibility model in
// internal/compat is derived from:
//
//   - Unknown fields present in the byte stream are silently ignored.
//   - Fields required by the target schema but absent from the byte
//     stream fail decoding with ErrCodeMissingField.
//   - Input that is not valid encoded data at all fails with
//     ErrCodeMalformed.
//
// Encoding is canonical: object keys are emitted in sorted order, string
// values are NFC normalized, and HTML characters are not escaped. Canonical
// output makes encode/decode pairs deterministic, which the harness relies
// on for golden trace comparison.
//
// The concrete format is JSON. The Codec interface keeps the format
// swappable: compatibility logic in internal/compat depends only on
// Marshal/Unmarshal, never on JSON details. An implementation bound to a
// different codec policy (for example one that defaults missing fields)
// invalidates the compatibility truth table in internal/schema and must
// re-derive it.
package wire
