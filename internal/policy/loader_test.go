package policy

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PlainText(t *testing.T) {
	text := Load(filepath.Join("testdata", "policy.txt"))
	require.NotEmpty(t, text)
	assert.Contains(t, text, "credit score >= 680 is low risk")
}

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	assert.Empty(t, Load(filepath.Join("testdata", "no_such_policy.pdf")))
}

func TestLoad_EmptyFileReturnsEmpty(t *testing.T) {
	assert.Empty(t, Load(filepath.Join("testdata", "empty.txt")))
}

func TestLoad_CorruptPDFReturnsEmpty(t *testing.T) {
	assert.Empty(t, Load(filepath.Join("testdata", "garbage.pdf")))
}

func TestLoad_DOCX(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>DTI ceiling is 40 percent.</w:t></w:r></w:p></w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "policy.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	assert.Equal(t, "DTI ceiling is 40 percent.", Load(path))
}
