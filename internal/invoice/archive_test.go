package invoice

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/models"
	"rlopes/conciliador/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_AddAndLoad(t *testing.T) {
	archive := NewArchive(store.NewMemoryRepository(), nil)

	doc, err := NewExtractor(nil).Extract("nota.xml", []byte(sampleInvoice))
	require.NoError(t, err)
	require.NoError(t, archive.Add(doc))

	docs, err := archive.Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.AccessionKey, docs[0].AccessionKey)
	assert.Equal(t, sampleInvoice, docs[0].RawXML)
	assert.Equal(t, "145.00", docs[0].Totals.Invoice.StringFixed(2))
	require.Len(t, docs[0].Items, 2)
}

func TestArchive_DuplicateRejected(t *testing.T) {
	archive := NewArchive(store.NewMemoryRepository(), nil)

	doc, err := NewExtractor(nil).Extract("nota.xml", []byte(sampleInvoice))
	require.NoError(t, err)
	require.NoError(t, archive.Add(doc))

	err = archive.Add(doc)
	var dup *importerror.DuplicateDocumentError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, doc.AccessionKey, dup.AccessionKey)

	docs, err := archive.Load()
	require.NoError(t, err)
	assert.Len(t, docs, 1, "archive size must be unchanged on the second attempt")
}

func TestImporter_BatchProceedsPastRejects(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "nota1.xml")
	require.NoError(t, os.WriteFile(first, []byte(sampleInvoice), 0o644))

	// Same accession key, different file.
	second := filepath.Join(dir, "nota2.xml")
	require.NoError(t, os.WriteFile(second, []byte(sampleInvoice), 0o644))

	// Distinct key, archived fine.
	third := filepath.Join(dir, "nota3.xml")
	other := strings.Replace(sampleInvoice, "000001011000000010", "000001021000000025", 1)
	require.NoError(t, os.WriteFile(third, []byte(other), 0o644))

	// No accession key at all.
	fourth := filepath.Join(dir, "nota4.xml")
	require.NoError(t, os.WriteFile(fourth, []byte("<NFe><infNFe></infNFe></NFe>"), 0o644))

	archive := NewArchive(store.NewMemoryRepository(), nil)
	importer := NewImporter(NewExtractor(nil), archive, nil)

	accepted, err := importer.ImportFiles([]string{first, second, third, fourth})
	assert.Equal(t, 2, accepted)

	var dup *importerror.DuplicateDocumentError
	assert.True(t, errors.As(err, &dup), "duplicate cause reported")
	var malformed *importerror.MalformedDocumentError
	assert.True(t, errors.As(err, &malformed), "malformed cause reported alongside")

	docs, loadErr := archive.Load()
	require.NoError(t, loadErr)
	assert.Len(t, docs, 2)
}

func TestImporter_NothingAcceptedWritesNothing(t *testing.T) {
	repo := store.NewMemoryRepository()
	archive := NewArchive(repo, nil)
	importer := NewImporter(NewExtractor(nil), archive, nil)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<NFe><infNFe></infNFe></NFe>"), 0o644))

	accepted, err := importer.ImportFiles([]string{bad})
	assert.Zero(t, accepted)
	assert.Error(t, err)

	_, ok, getErr := repo.Get(ArchiveKey)
	require.NoError(t, getErr)
	assert.False(t, ok, "a fully rejected batch must not touch the archive")
}

func TestImporter_GateRejectsConcurrentImport(t *testing.T) {
	importer := NewImporter(NewExtractor(nil), NewArchive(store.NewMemoryRepository(), nil), nil)

	importer.mu.Lock()
	_, err := importer.ImportFiles(nil)
	importer.mu.Unlock()

	assert.ErrorIs(t, err, importerror.ErrImportInProgress)
}

func TestArchive_DocumentsAreImmutableOnReload(t *testing.T) {
	archive := NewArchive(store.NewMemoryRepository(), nil)
	doc := models.InvoiceDocument{AccessionKey: "NFe1", Number: "1"}
	require.NoError(t, archive.Add(doc))

	docs, err := archive.Load()
	require.NoError(t, err)
	docs[0].Number = "changed"

	reloaded, err := archive.Load()
	require.NoError(t, err)
	assert.Equal(t, "1", reloaded[0].Number)
}
