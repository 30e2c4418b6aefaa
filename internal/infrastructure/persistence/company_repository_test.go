package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

func setupCompanyTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&partner.Company{}, &partner.BankAccount{})
	require.NoError(t, err)

	return db
}

func newTestCompany(t *testing.T, name, npwp, idtku string) *partner.Company {
	t.Helper()
	company, err := partner.NewCompany(name, npwp, idtku, "Jl. Sudirman No. 1, Jakarta")
	require.NoError(t, err)
	return company
}

func TestCompanyRepository_SaveAndFindByID(t *testing.T) {
	db := setupCompanyTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	company := newTestCompany(t, "PT Maju Jaya", "01.234.567.8-901.000", "IDTKU-001")
	require.NoError(t, repo.Save(ctx, company))

	found, err := repo.FindByID(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "PT Maju Jaya", found.CompanyName)
	assert.Equal(t, "01.234.567.8-901.000", found.NPWP)
	assert.True(t, found.IsActive)

	// Missing companies come back as nil, not an error
	found, err = repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCompanyRepository_Search(t *testing.T) {
	db := setupCompanyTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	active := newTestCompany(t, "PT Maju Jaya", "01.234.567.8-901.000", "IDTKU-001")
	require.NoError(t, repo.Save(ctx, active))

	inactive := newTestCompany(t, "PT Maju Mundur", "02.234.567.8-901.000", "IDTKU-002")
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	t.Run("matches name case-insensitively, active only", func(t *testing.T) {
		found, err := repo.Search(ctx, "maju", 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, active.ID, found[0].ID)
	})

	t.Run("matches NPWP fragment", func(t *testing.T) {
		found, err := repo.Search(ctx, "01.234", 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, active.ID, found[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := repo.Search(ctx, "tidak ada", 10)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestCompanyRepository_Uniqueness(t *testing.T) {
	db := setupCompanyTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	company := newTestCompany(t, "PT Maju Jaya", "01.234.567.8-901.000", "IDTKU-001")
	require.NoError(t, repo.Save(ctx, company))

	exists, err := repo.ExistsByNPWP(ctx, "01.234.567.8-901.000", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// The owning company is excluded when checking its own update
	exists, err = repo.ExistsByNPWP(ctx, "01.234.567.8-901.000", company.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByIDTKU(ctx, "IDTKU-001", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByIDTKU(ctx, "IDTKU-999", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCompanyRepository_FindAllAndCount(t *testing.T) {
	db := setupCompanyTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	active := newTestCompany(t, "PT Alpha", "01.234.567.8-901.000", "IDTKU-001")
	require.NoError(t, repo.Save(ctx, active))

	inactive := newTestCompany(t, "PT Beta", "02.234.567.8-901.000", "IDTKU-002")
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	all, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"is_active": true},
	})
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID, activeOnly[0].ID)

	count, err := repo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{"is_active": true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCompanyRepository_Delete(t *testing.T) {
	db := setupCompanyTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	company := newTestCompany(t, "PT Maju Jaya", "01.234.567.8-901.000", "IDTKU-001")
	require.NoError(t, repo.Save(ctx, company))

	require.NoError(t, repo.Delete(ctx, company.ID))

	found, err := repo.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestBankAccountRepository_DefaultHandling(t *testing.T) {
	db := setupCompanyTestDB(t)
	repo := NewGormBankAccountRepository(db)
	ctx := context.Background()

	first, err := partner.NewBankAccount("BCA", "1234567890", "PT Invoice Mgr")
	require.NoError(t, err)
	first.MarkDefault()
	require.NoError(t, repo.Save(ctx, first))

	second, err := partner.NewBankAccount("Mandiri", "0987654321", "PT Invoice Mgr")
	require.NoError(t, err)
	second.MarkDefault()
	require.NoError(t, repo.Save(ctx, second))

	// Marking a new default clears the previous one
	def, err := repo.FindDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	previous, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsDefault)

	accounts, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
