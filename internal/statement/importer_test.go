package statement

import (
	"errors"
	"testing"

	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = "Data;Lançamento;Descrição;Valor\n" +
	"15/03/2024;EXTRATO X;PAGAMENTO CARTAO;1.234,56\n" +
	"20/03/2024;EXTRATO X;PIX RECEBIDO;500,00\n"

func newTestImporter(t *testing.T) (*Importer, *Store) {
	t.Helper()
	recordStore := NewStore(store.NewMemoryRepository(), nil)
	return NewImporter(NewParser(nil, nil), recordStore, nil), recordStore
}

func TestImport_Idempotence(t *testing.T) {
	importer, recordStore := newTestImporter(t)

	first, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	before, err := recordStore.Load()
	require.NoError(t, err)

	second, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Imported)

	after, err := recordStore.Load()
	require.NoError(t, err)

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Fingerprint, after[i].Fingerprint)
		assert.Equal(t, before[i].Date, after[i].Date)
		assert.True(t, before[i].Amount.Equal(after[i].Amount))
	}
}

func TestImport_AnnotationLatch(t *testing.T) {
	importer, recordStore := newTestImporter(t)

	_, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)

	records, err := recordStore.Load()
	require.NoError(t, err)
	fp := records[0].Fingerprint

	require.NoError(t, recordStore.Annotate(fp, "Mercado", "conciliado"))

	result, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Carried)

	records, err = recordStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "Mercado", records[0].Category)
	assert.Equal(t, "conciliado", records[0].Status)
	assert.Empty(t, records[1].Category)
}

func TestImport_BatchReplaceDropsAbsentRecords(t *testing.T) {
	importer, recordStore := newTestImporter(t)

	_, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)

	records, err := recordStore.Load()
	require.NoError(t, err)
	require.NoError(t, recordStore.Annotate(records[1].Fingerprint, "Receita", ""))

	// The reimported file no longer contains the annotated PIX line.
	smaller := "Data;Lançamento;Descrição;Valor\n15/03/2024;EXTRATO X;PAGAMENTO CARTAO;1.234,56\n"
	_, err = importer.Import([]byte(smaller))
	require.NoError(t, err)

	records, err = recordStore.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PAGAMENTO CARTAO", records[0].Description)
}

func TestImport_FatalErrorLeavesStoreUntouched(t *testing.T) {
	importer, recordStore := newTestImporter(t)

	_, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)

	broken := "Data;Histórico\n01/01/2024;X\n"
	_, err = importer.Import([]byte(broken))
	var missing *importerror.MissingColumnsError
	require.True(t, errors.As(err, &missing))

	records, err := recordStore.Load()
	require.NoError(t, err)
	assert.Len(t, records, 2, "failed import must not commit anything")
}

func TestImport_MissingColumnsAddsZeroRecords(t *testing.T) {
	importer, recordStore := newTestImporter(t)

	_, err := importer.Import([]byte("Data;Lançamento;Valor\n01/01/2024;PIX;10\n"))
	var missing *importerror.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Descrição"}, missing.Columns)

	records, err := recordStore.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_AnnotateRefusesUnknownFingerprint(t *testing.T) {
	_, recordStore := newTestImporter(t)
	err := recordStore.Annotate("does|not|exist|0.00", "X", "")
	assert.Error(t, err)
}

func TestStore_AnnotateEmptyInputKeepsValue(t *testing.T) {
	importer, recordStore := newTestImporter(t)
	_, err := importer.Import([]byte(sampleFile))
	require.NoError(t, err)

	records, _ := recordStore.Load()
	fp := records[0].Fingerprint

	require.NoError(t, recordStore.Annotate(fp, "Mercado", "conciliado"))
	require.NoError(t, recordStore.Annotate(fp, "", "pendente"))

	records, _ = recordStore.Load()
	assert.Equal(t, "Mercado", records[0].Category, "empty input must not clear an existing value")
	assert.Equal(t, "pendente", records[0].Status)
}

func TestImport_GateRejectsConcurrentImport(t *testing.T) {
	importer, _ := newTestImporter(t)

	importer.mu.Lock()
	_, err := importer.Import([]byte(sampleFile))
	importer.mu.Unlock()

	assert.ErrorIs(t, err, importerror.ErrImportInProgress)
}
