package fuzztests

import (
	"testing"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/lexer"
	"pystrfmt/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.py", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		for {
			tok := lx.Next()
			if tok.IsEOF() {
				break
			}
		}
	})
}
