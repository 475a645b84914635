// Package fuzztests houses Go fuzz harnesses that exercise the
// translation pipeline (ESTree JSON -> generator -> correction pass).
// Its goal is to smoke test robustness and guard against panics on
// arbitrary inputs.
//
// Does not: generate corpora, write files, execute the CLI.
package fuzztests
