package storage

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookLedger_LookupMissing(t *testing.T) {
	ledger, cleanup, err := NewTestLedger()
	require.NoError(t, err)
	defer cleanup()

	rec, found, err := ledger.Lookup(t.Context(), "cs_test_unknown")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestWebhookLedger_RecordThenLookup(t *testing.T) {
	ledger, cleanup, err := NewTestLedger()
	require.NoError(t, err)
	defer cleanup()

	ctx := t.Context()
	sessionID := "cs_test_" + gofakeit.LetterN(16)
	body := []byte(`{"success":true,"orderId":"` + sessionID + `"}`)

	inserted, err := ledger.Record(ctx, sessionID, "evt_1", "checkout.session.completed", 200, body)
	require.NoError(t, err)
	assert.True(t, inserted)

	rec, found, err := ledger.Lookup(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "evt_1", rec.EventID)
	assert.Equal(t, 200, rec.StatusCode)
	assert.JSONEq(t, string(body), string(rec.Body))
}

func TestWebhookLedger_FirstRecordWins(t *testing.T) {
	ledger, cleanup, err := NewTestLedger()
	require.NoError(t, err)
	defer cleanup()

	ctx := t.Context()

	inserted, err := ledger.Record(ctx, "cs_test_dup", "evt_1", "checkout.session.completed", 200, []byte(`{"first":true}`))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = ledger.Record(ctx, "cs_test_dup", "evt_2", "checkout.session.completed", 200, []byte(`{"first":false}`))
	require.NoError(t, err)
	assert.False(t, inserted)

	rec, found, err := ledger.Lookup(ctx, "cs_test_dup")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "evt_1", rec.EventID)
	assert.JSONEq(t, `{"first":true}`, string(rec.Body))

	count, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestNew_CreatesDirectoryAndMigrates(t *testing.T) {
	path := t.TempDir() + "/nested/ledger.db"

	store, err := New(path)
	require.NoError(t, err)
	defer store.Close()

	ledger := NewWebhookLedger(store.Queries)
	inserted, err := ledger.Record(t.Context(), "cs_live_1", "evt_live", "checkout.session.completed", 200, []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, inserted)
}
