package fuzztests

import (
	"testing"

	"jsrb/internal/correct"
	"jsrb/internal/driver"
	"jsrb/internal/project"
)

// FuzzTranslateSource feeds arbitrary bytes through the full decode ->
// generate -> correct sequence. Errors are expected for malformed or
// unsupported documents; panics are not.
func FuzzTranslateSource(f *testing.F) {
	addASTSeeds(f)
	tr, err := driver.New(project.Default())
	if err != nil {
		f.Fatalf("driver.New failed: %v", err)
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		_, _ = tr.TranslateSource(input)
	})
}

// FuzzCorrectApply runs the correction pipeline over arbitrary text. The
// pipeline only promises sensible results for generator output, but it
// must never panic regardless of input.
func FuzzCorrectApply(f *testing.F) {
	addTextSeeds(f)
	pipe, err := correct.New(correct.DefaultRules(), correct.Options{})
	if err != nil {
		f.Fatalf("correct.New failed: %v", err)
	}
	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		_ = pipe.Apply(input)
	})
}
