package invoicing

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// fakeSequenceRepo is a thread-safe in-memory SequenceRepository used to
// exercise the allocator under concurrency
type fakeSequenceRepo struct {
	mu        sync.Mutex
	sequences map[[2]int]*invoicing.InvoiceNumberSequence
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{sequences: make(map[[2]int]*invoicing.InvoiceNumberSequence)}
}

func (f *fakeSequenceRepo) NextSequence(_ context.Context, year, month int) (*invoicing.InvoiceNumberSequence, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := [2]int{year, month}
	seq, ok := f.sequences[key]
	if !ok {
		created, err := invoicing.NewInvoiceNumberSequence(year, month)
		if err != nil {
			return nil, 0, err
		}
		seq = created
		f.sequences[key] = seq
	}
	return seq, seq.Next(), nil
}

func (f *fakeSequenceRepo) CurrentSequence(_ context.Context, year, month int) (*invoicing.InvoiceNumberSequence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sequences[[2]int{year, month}], nil
}

func TestAllocatorFirstNumberOfPeriod(t *testing.T) {
	seqRepo := newFakeSequenceRepo()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil)

	allocator := NewInvoiceNumberAllocator(seqRepo, invoiceRepo, nil)

	number, err := allocator.Allocate(context.Background(), time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV-24-12-001", number)
}

func TestAllocatorSequentialNumbers(t *testing.T) {
	seqRepo := newFakeSequenceRepo()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil)

	allocator := NewInvoiceNumberAllocator(seqRepo, invoiceRepo, nil)
	date := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		number, err := allocator.Allocate(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, invoicing.FormatInvoiceNumber(2024, 12, i, "INV", "-"), number)
	}
}

func TestAllocatorSeparatePeriods(t *testing.T) {
	seqRepo := newFakeSequenceRepo()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil)

	allocator := NewInvoiceNumberAllocator(seqRepo, invoiceRepo, nil)

	dec, err := allocator.Allocate(context.Background(), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	jan, err := allocator.Allocate(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "INV-24-12-001", dec)
	assert.Equal(t, "INV-25-01-001", jan)
}

func TestAllocatorConcurrentDistinctNumbers(t *testing.T) {
	seqRepo := newFakeSequenceRepo()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil)

	allocator := NewInvoiceNumberAllocator(seqRepo, invoiceRepo, nil)
	date := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)

	const workers = 50
	results := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = allocator.Allocate(context.Background(), date)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	sort.Strings(results)
	for i := 1; i < workers; i++ {
		assert.NotEqual(t, results[i-1], results[i], "duplicate invoice number allocated")
	}
	assert.Equal(t, invoicing.FormatInvoiceNumber(2024, 12, 1, "INV", "-"), results[0])
}

func TestAllocatorRetriesOnCollision(t *testing.T) {
	seqRepo := newFakeSequenceRepo()
	invoiceRepo := new(MockInvoiceRepository)
	// First allocated number is already taken by an imported invoice
	invoiceRepo.On("ExistsByNumber", mock.Anything, "INV-24-12-001").Return(true, nil).Once()
	invoiceRepo.On("ExistsByNumber", mock.Anything, "INV-24-12-002").Return(false, nil).Once()

	allocator := NewInvoiceNumberAllocator(seqRepo, invoiceRepo, nil)

	number, err := allocator.Allocate(context.Background(), time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV-24-12-002", number)
	invoiceRepo.AssertExpectations(t)
}

func TestAllocatorGivesUpAfterMaxAttempts(t *testing.T) {
	seqRepo := newFakeSequenceRepo()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(true, nil)

	allocator := NewInvoiceNumberAllocator(seqRepo, invoiceRepo, nil)

	_, err := allocator.Allocate(context.Background(), time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAllocationConflict)
	invoiceRepo.AssertNumberOfCalls(t, "ExistsByNumber", 3)
}
