package pdfvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facet-unt/departamentos-api/utils/testutil"
)

func TestValidatePDFBytes(t *testing.T) {
	res, err := ValidatePDFBytes(testutil.MinimalPDF(2), ResolucionLimits)
	require.NoError(t, err)
	assert.Equal(t, 2, res.PageCount)
}

func TestValidatePDFBytesRejects(t *testing.T) {
	_, err := ValidatePDFBytes([]byte("hola"), ResolucionLimits)
	require.ErrorIs(t, err, ErrInvalidPDF)
	assert.Equal(t, "Invalid PDF file: missing PDF header", Message(err))

	_, err = ValidatePDFBytes(testutil.MinimalPDF(3), PDFLimits{MaxFileSizeMB: 1, MaxPages: 2, DocumentTypeName: "resolución"})
	require.ErrorIs(t, err, ErrInvalidPDF)
	assert.Contains(t, Message(err), "exceeds the maximum of 2 pages")
}
