// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity - tri-level enum (Info, Warning, Error) defined in severity.go.
//     The compiler only ever emits errors; the other levels exist for tooling.
//   - Code - compact numeric identifier (see codes.go) with stable string form
//     such as SEM3004.
//   - Message - human oriented text; keep it short and actionable.
//   - Primary span - the source.Span pointing to the offending token.
//   - Notes - optional secondary spans/messages.
//
// # Emitting diagnostics
//
// The lexer keeps scanning after a bad character, so it reports through a
// Reporter (BagReporter collects into a Bag). Code generation cannot recover
// once instructions are emitted, so the parser fails fast by returning an
// *Error wrapping a single Diagnostic; the driver adds it to the Bag and picks
// the process exit code from Code.Class.
package diag
