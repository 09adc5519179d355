// Package diag defines the diagnostic model shared by the lexer and the
// driver.
//
// Diagnostic is the central record: severity, stable numeric code, message,
// primary span, plus optional notes and fix suggestions. Producers emit
// through the Reporter interface (BagReporter aggregates into a Bag, which
// supports bounded collection, sorting, and deduplication).
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration in internal/driver.
package diag
