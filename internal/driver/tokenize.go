package driver

import (
	"os"

	"luafmt/internal/diag"
	"luafmt/internal/lexer"
	"luafmt/internal/source"
	"luafmt/internal/token"
)

// TokenizeResult holds the tokens and diagnostics of one file.
type TokenizeResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single file, returning every token with its trivia.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}

	fileSet := source.NewFileSet()
	fileID := fileSet.Add(path, data, 0)
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(fileSet.Get(fileID), lexer.Options{Bag: bag})
	tokens := lx.Tokens()
	bag.Sort()

	return &TokenizeResult{
		Path:    path,
		FileSet: fileSet,
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
