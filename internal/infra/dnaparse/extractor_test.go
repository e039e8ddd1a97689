package dnaparse

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF wraps a content stream in just enough PDF structure for the
// extractor to find it.
func buildPDF(t *testing.T, content []byte, compress bool) []byte {
	t.Helper()

	stream := content
	if compress {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		_, err := w.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		stream = buf.Bytes()
	}

	var pdf bytes.Buffer
	pdf.WriteString("%PDF-1.4\n1 0 obj\n<< /Length 99 >>\nstream\n")
	pdf.Write(stream)
	pdf.WriteString("endstream\nendobj\n%%EOF")

	return pdf.Bytes()
}

func TestExtractText_TextObjects(t *testing.T) {
	content := []byte("BT (Trait: Caffeine Metabolism rs762551 Genotype: A/A) Tj (Outcome: Fast metabolizer) Tj ET")
	pdf := buildPDF(t, content, true)

	extraction, err := ExtractText(pdf)
	require.NoError(t, err)
	assert.Equal(t, MethodTextObjects, extraction.Method)
	assert.InDelta(t, 0.9, extraction.Confidence, 0.001)
	assert.Contains(t, extraction.Text, "rs762551")
	assert.Contains(t, extraction.Text, "Fast metabolizer")
}

func TestExtractText_StringScrapeFallback(t *testing.T) {
	// Strings present but no Tj operators, so the text-object scan finds nothing.
	content := []byte("(Trait: Lactose Tolerance rs4988235) (Genotype: C/T moderate risk result here)")
	pdf := buildPDF(t, content, false)

	extraction, err := ExtractText(pdf)
	require.NoError(t, err)
	assert.Equal(t, MethodStringScrape, extraction.Method)
	assert.Contains(t, extraction.Text, "rs4988235")
}

func TestExtractText_PlainTextFallback(t *testing.T) {
	raw := []byte("Aevum lab report\nrs1815739 Genotype C/C typical muscle composition\n")

	extraction, err := ExtractText(raw)
	require.NoError(t, err)
	assert.Equal(t, MethodPlainText, extraction.Method)
	assert.Contains(t, extraction.Text, "rs1815739")
}

func TestExtractText_NoText(t *testing.T) {
	_, err := ExtractText([]byte{0x00, 0x01, 0x02})
	assert.ErrorIs(t, err, ErrNoText)

	_, err = ExtractText(nil)
	assert.ErrorIs(t, err, ErrNoText)
}
