package convert

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestText_PlainPassThrough(t *testing.T) {
	name, text, err := Text("notes.md", []byte("# hello"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if name != "notes.md" || string(text) != "# hello" {
		t.Fatalf("unexpected result: %q %q", name, text)
	}
}

func TestText_BinaryReducedToPrintable(t *testing.T) {
	name, text, err := Text("blob.bin", []byte{'a', 0xff, 'b', 0x01, '\n'})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if name != "blob.bin" || string(text) != "ab\n" {
		t.Fatalf("unexpected result: %q %q", name, text)
	}
}

func TestText_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"col1", "col2"}); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"x", 2}); err != nil {
		t.Fatalf("set row: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	name, text, err := Text("Report.XLSX", buf.Bytes())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if name != "Report.XLSX.txt" {
		t.Fatalf("name mismatch: %q", name)
	}
	content := string(text)
	if !strings.Contains(content, "Header: col1\tcol2") || !strings.Contains(content, "Row 2: x\t2") {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestText_DOCX(t *testing.T) {
	data := buildDOCX(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World</w:t></w:r></w:p></w:body></w:document>`)
	name, text, err := Text("a.docx", data)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if name != "a.docx.txt" || string(text) != "Hello\nWorld\n" {
		t.Fatalf("unexpected result: %q %q", name, text)
	}
}

func TestFactory_Register(t *testing.T) {
	f := NewFactory()
	f.Register(".UP", Func(func(data []byte) ([]byte, error) {
		return bytes.ToUpper(data), nil
	}))
	name, text, err := f.Text("x.up", []byte("abc"))
	if err != nil || name != "x.up.txt" || string(text) != "ABC" {
		t.Fatalf("unexpected result: %q %q %v", name, text, err)
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
