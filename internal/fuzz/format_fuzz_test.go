package fuzztests

import (
	"bytes"
	"testing"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/format"
	"pystrfmt/internal/source"
)

// formatOnce runs the printer over raw bytes and returns the output.
func formatOnce(input []byte, opts format.Options) []byte {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.py", input)
	bag := diag.NewBag(64)
	return format.FormatFile(fs.Get(fileID), opts, &diag.BagReporter{Bag: bag})
}

func FuzzFormatIdempotent(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		var opts format.Options
		once := formatOnce(input, opts)
		twice := formatOnce(once, opts)
		if !bytes.Equal(once, twice) {
			t.Fatalf("output not stable under a second pass\nfirst:  %q\nsecond: %q", once, twice)
		}
	})
}

func FuzzFormatLegacyTarget(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		opts := format.Options{Target: format.Py311, Quotes: format.QuoteSingle}
		once := formatOnce(input, opts)
		twice := formatOnce(once, opts)
		if !bytes.Equal(once, twice) {
			t.Fatalf("output not stable under a second pass\nfirst:  %q\nsecond: %q", once, twice)
		}
	})
}
