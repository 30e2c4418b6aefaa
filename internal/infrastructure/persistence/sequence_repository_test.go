package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
)

func TestSequenceRepository_NextSequence_FirstAllocation(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	seq, number, err := repo.NextSequence(ctx, 2024, 12)
	require.NoError(t, err)

	assert.Equal(t, 1, number)
	assert.Equal(t, 2024, seq.Year)
	assert.Equal(t, 12, seq.Month)
	assert.Equal(t, 1, seq.CurrentNumber)
	assert.Equal(t, "INV-24-12-001", seq.FormatNumber(number))
}

func TestSequenceRepository_NextSequence_Increments(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		_, number, err := repo.NextSequence(ctx, 2024, 12)
		require.NoError(t, err)
		assert.Equal(t, want, number)
	}
}

func TestSequenceRepository_NextSequence_IndependentPeriods(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	_, dec1, err := repo.NextSequence(ctx, 2024, 12)
	require.NoError(t, err)
	_, dec2, err := repo.NextSequence(ctx, 2024, 12)
	require.NoError(t, err)

	// A new month starts back at 1
	_, jan1, err := repo.NextSequence(ctx, 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, dec1)
	assert.Equal(t, 2, dec2)
	assert.Equal(t, 1, jan1)
}

func TestSequenceRepository_NextSequence_InvalidPeriod(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	_, _, err := repo.NextSequence(ctx, 2024, 13)
	assert.Error(t, err)

	_, _, err = repo.NextSequence(ctx, 1999, 1)
	assert.Error(t, err)
}

func TestSequenceRepository_CurrentSequence(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	current, err := repo.CurrentSequence(ctx, 2024, 12)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, _, err = repo.NextSequence(ctx, 2024, 12)
	require.NoError(t, err)

	current, err = repo.CurrentSequence(ctx, 2024, 12)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 1, current.CurrentNumber)

	// Peeking does not advance the sequence
	current, err = repo.CurrentSequence(ctx, 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, current.CurrentNumber)

	var count int64
	require.NoError(t, db.Model(&invoicing.InvoiceNumberSequence{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
