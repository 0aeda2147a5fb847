// Package fuzztests houses Go fuzz harnesses for the c0 pipeline
// (source -> lexer -> parser -> emit). They guard against panics, hangs and
// modules that do not survive a read-back.
//
// Семена берутся из Markdown-кейсов internal/driver/testdata.
package fuzztests
