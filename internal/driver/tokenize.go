package driver

import (
	"pystrfmt/internal/diag"
	"pystrfmt/internal/lexer"
	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
)

// TokenizeResult carries everything the CLI needs to render a token
// dump: the tokens, the file set for span resolution, and the
// collected diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single file.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiag(maxDiagnostics))
	toks := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fileSet,
		FileID:  id,
		Tokens:  toks,
		Bag:     bag,
	}, nil
}
