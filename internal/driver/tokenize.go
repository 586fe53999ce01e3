package driver

import (
	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/lexer"
	"reform/internal/source"
	"reform/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lang    dialect.Lang
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file without running any other stage.
func Tokenize(path string, lang dialect.Lang, types []string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	if lang == dialect.None {
		lang = dialect.FromFilename(path)
	}

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.All(file, lexer.Options{
		Lang:     lang,
		Types:    types,
		Reporter: diag.BagReporter{Bag: bag},
	})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Lang:    lang,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
