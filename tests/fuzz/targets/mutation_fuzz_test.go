package targets

import (
	"testing"

	"github.com/funvibe/lolc/internal/prettyprinter"
	"github.com/funvibe/lolc/tests/fuzz/mutator"
)

// FuzzMutation parses a valid seed, mutates its AST and feeds the printed
// result back through the whole front end. Mutations may produce programs
// that are ill-typed or fault at run time; they must never panic, and every
// failure must surface as a diagnostic or a machine error.
func FuzzMutation(f *testing.F) {
	f.Add([]byte("HAI 1.2\nI HAS A x ITZ NUMBER R 3\nVISIBLE SUM OF x AN 4\nKTHXBYE\n"))
	LoadCorpus(f, "../../testdata")

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := compile(string(data))
		if ctx.Failed() {
			return
		}

		// Use a deterministic seed based on the input data to ensure reproducibility
		seed := int64(len(data))
		for _, b := range data {
			seed = seed*31 + int64(b)
		}
		mutator.NewASTMutator(seed).Mutate(ctx.AstRoot)

		mutated := prettyprinter.Print(ctx.AstRoot)
		ctx2 := compile(mutated)
		if ctx2.Failed() {
			return
		}
		if _, _, err := runProgram(ctx2, ""); err != nil {
			t.Logf("mutant faulted: %v", err)
		}
	})
}
