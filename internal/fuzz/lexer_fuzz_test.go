package fuzztests

import (
	"testing"

	"sealscan/internal/diag"
	"sealscan/internal/lexer"
	"sealscan/internal/source"
	"sealscan/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.kt", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for i := 0; ; i++ {
			if lx.Next().Kind == token.EOF {
				break
			}
			if i > 2*len(input)+2 {
				t.Fatalf("lexer did not reach EOF after %d tokens", i)
			}
		}
	})
}
