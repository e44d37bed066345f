// Package convert turns local files into text suitable for gist files.
package convert

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Converter extracts text from file data.
type Converter interface {
	Convert(data []byte) ([]byte, error)
}

// Func adapts a function to Converter.
type Func func(data []byte) ([]byte, error)

func (f Func) Convert(data []byte) ([]byte, error) { return f(data) }

// Factory selects a Converter by file extension.
type Factory struct {
	byExtension map[string]Converter
}

// NewFactory creates a factory with pdf, excel, xls and docx converters registered.
func NewFactory() *Factory {
	f := &Factory{byExtension: map[string]Converter{}}
	f.Register(".pdf", Func(PDF))
	f.Register(".xlsx", Func(Excel))
	f.Register(".xlsm", Func(Excel))
	f.Register(".xls", Func(XLS))
	f.Register(".docx", Func(DOCX))
	return f
}

// Register sets the converter for an extension.
func (f *Factory) Register(ext string, converter Converter) {
	f.byExtension[strings.ToLower(ext)] = converter
}

// Text converts data read from name. It returns the gist file name to use:
// converted documents get a ".txt" suffix, plain files keep their name.
func (f *Factory) Text(name string, data []byte) (string, []byte, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if converter, ok := f.byExtension[ext]; ok {
		text, err := converter.Convert(data)
		if err != nil {
			return "", nil, err
		}
		return name + ".txt", text, nil
	}
	if utf8.Valid(data) {
		return name, data, nil
	}
	return name, printableText(data), nil
}

var defaultFactory = NewFactory()

// Text converts with the default factory.
func Text(name string, data []byte) (string, []byte, error) {
	return defaultFactory.Text(name, data)
}
