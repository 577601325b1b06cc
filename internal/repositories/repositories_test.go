package repositories_test

import (
	"context"
	"testing"
	"time"

	"vendorhub/internal/database"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory("repos-" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createDeal(t *testing.T, repo repositories.DealRepository, status models.DealStatus, limit int) *models.Deal {
	t.Helper()
	deal := &models.Deal{
		Title:          "Console bundle",
		RetailPrice:    decimal.NewFromInt(1199),
		Payout:         decimal.NewFromInt(1050),
		Status:         status,
		LimitPerVendor: limit,
	}
	require.NoError(t, repo.Create(context.Background(), deal))
	return deal
}

func TestProfileRepository_VendorNumbersAreSequential(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProfileRepository(openDB(t))

	var numbers []int
	for i := 0; i < 3; i++ {
		p := &models.Profile{UserID: uuid.NewString(), Email: "Vendor@Example.com ", Role: models.RoleSeller}
		require.NoError(t, repo.Create(ctx, p))
		numbers = append(numbers, p.VendorNumber)
		assert.Equal(t, "vendor@example.com", p.Email)
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)

	_, err := repo.GetByUserID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProfileRepository_DuplicateUserID(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProfileRepository(openDB(t))

	userID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, &models.Profile{UserID: userID, Email: "a@example.com", Role: models.RoleSeller}))
	err := repo.Create(ctx, &models.Profile{UserID: userID, Email: "b@example.com", Role: models.RoleSeller})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)
}

func TestProfileRepository_ClearDiscord(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProfileRepository(openDB(t))

	discordID, username, now := "1234", "vendor#1", time.Now()
	p := &models.Profile{UserID: uuid.NewString(), Email: "d@example.com", Role: models.RoleSeller,
		DiscordID: &discordID, DiscordUsername: &username, DiscordLinkedAt: &now}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.ClearDiscord(ctx, p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DiscordID)
	assert.Nil(t, got.DiscordUsername)
	assert.Nil(t, got.DiscordLinkedAt)
}

func TestDealRepository_PersistsDerivedPriceType(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMDealRepository(openDB(t))

	deal := createDeal(t, repo, models.DealStatusActive, 2)

	got, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriceTypeBelowCost, got.PriceType)
	assert.True(t, got.RetailPrice.Equal(decimal.NewFromInt(1199)))

	got.Payout = decimal.NewFromInt(1199)
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriceTypeRetail, got.PriceType)
}

func TestDealRepository_ListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMDealRepository(openDB(t))

	createDeal(t, repo, models.DealStatusActive, 1)
	createDeal(t, repo, models.DealStatusExpired, 1)

	all, err := repo.List(ctx, repositories.DealFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active := models.DealStatusActive
	onlyActive, err := repo.List(ctx, repositories.DealFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, models.DealStatusActive, onlyActive[0].Status)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repositories.ErrNotFound)
}

func TestCommitmentRepository_EnforcesLimit(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	deal := createDeal(t, repositories.NewGORMDealRepository(db), models.DealStatusActive, 3)
	repo := repositories.NewGORMCommitmentRepository(db)

	first := &models.Commitment{DealID: deal.ID, ProfileID: "p1", Quantity: 2, Status: models.CommitmentStatusPending}
	require.NoError(t, repo.CreateWithinLimit(ctx, first, deal.LimitPerVendor))

	over := &models.Commitment{DealID: deal.ID, ProfileID: "p1", Quantity: 2, Status: models.CommitmentStatusPending}
	assert.ErrorIs(t, repo.CreateWithinLimit(ctx, over, deal.LimitPerVendor), repositories.ErrLimitExceeded)

	other := &models.Commitment{DealID: deal.ID, ProfileID: "p2", Quantity: 3, Status: models.CommitmentStatusPending}
	require.NoError(t, repo.CreateWithinLimit(ctx, other, deal.LimitPerVendor))

	mine, err := repo.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Deal)
	assert.Equal(t, deal.Title, mine[0].Deal.Title)
}

func TestCommitmentRepository_MissingDeal(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := repositories.NewGORMCommitmentRepository(db)

	commitment := &models.Commitment{DealID: uuid.NewString(), ProfileID: "p1", Quantity: 1, Status: models.CommitmentStatusPending}
	assert.ErrorIs(t, repo.CreateWithinLimit(ctx, commitment, 5), repositories.ErrNotFound)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommitmentRepository_SequentialCommitsNeverExceedLimit(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	deal := createDeal(t, repositories.NewGORMDealRepository(db), models.DealStatusActive, 5)
	repo := repositories.NewGORMCommitmentRepository(db)

	var accepted int
	for i := 0; i < 4; i++ {
		c := &models.Commitment{DealID: deal.ID, ProfileID: "p1", Quantity: 3, Status: models.CommitmentStatusPending}
		err := repo.CreateWithinLimit(ctx, c, deal.LimitPerVendor)
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, repositories.ErrLimitExceeded)
	}
	assert.Equal(t, 1, accepted)

	var total int
	require.NoError(t, db.Model(&models.Commitment{}).Select("COALESCE(SUM(quantity), 0)").Where("deal_id = ?", deal.ID).Scan(&total).Error)
	assert.LessOrEqual(t, total, deal.LimitPerVendor)
}

func TestInvoiceRepository_OnePerCommitmentAndNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	deal := createDeal(t, repositories.NewGORMDealRepository(db), models.DealStatusActive, 10)
	repo := repositories.NewGORMInvoiceRepository(db)

	older := &models.Invoice{CommitmentID: "c1", ProfileID: "p1", DealID: deal.ID, Amount: decimal.NewFromInt(1050), Status: models.InvoiceStatusUnpaid}
	require.NoError(t, repo.CreateForCommitment(ctx, older))
	assert.Equal(t, "INV-000001", older.Number)

	dup := &models.Invoice{CommitmentID: "c1", ProfileID: "p1", DealID: deal.ID, Amount: decimal.NewFromInt(1050), Status: models.InvoiceStatusUnpaid}
	assert.ErrorIs(t, repo.CreateForCommitment(ctx, dup), repositories.ErrAlreadyExists)

	require.NoError(t, db.Model(&models.Invoice{}).Where("id = ?", older.ID).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := &models.Invoice{CommitmentID: "c2", ProfileID: "p1", DealID: deal.ID, Amount: decimal.NewFromInt(2100), Status: models.InvoiceStatusUnpaid}
	require.NoError(t, repo.CreateForCommitment(ctx, newer))
	assert.Equal(t, "INV-000002", newer.Number)

	invoices, err := repo.ListByProfile(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, newer.ID, invoices[0].ID)
	require.NotNil(t, invoices[0].Deal)
	assert.Equal(t, "Console bundle", invoices[0].Deal.Title)

	paidAt := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, newer.ID, models.InvoiceStatusPaid, &paidAt))
	got, err := repo.GetByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, got.Status)
	assert.NotNil(t, got.PaidAt)
}

func TestLabelRequestRepository_Process(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	deal := createDeal(t, repositories.NewGORMDealRepository(db), models.DealStatusActive, 5)
	commitments := repositories.NewGORMCommitmentRepository(db)
	commitment := &models.Commitment{DealID: deal.ID, ProfileID: "p1", Quantity: 1, Status: models.CommitmentStatusPending}
	require.NoError(t, commitments.CreateWithinLimit(ctx, commitment, 5))

	repo := repositories.NewGORMLabelRequestRepository(db)
	notes := "two boxes"
	request := &models.LabelRequest{CommitmentID: commitment.ID, ProfileID: "p1", Quantity: 1, Status: models.LabelStatusPending, Notes: &notes}
	require.NoError(t, repo.Create(ctx, request))

	url := "/api/files/labels/labels/x/label.pdf"
	processedAt := time.Now().UTC().Truncate(time.Second)
	got, err := repo.Process(ctx, request.ID, repositories.LabelProcessUpdate{
		Status:        models.LabelStatusProcessed,
		LabelURL:      &url,
		ProcessedAt:   processedAt,
		ProcessedByID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LabelStatusProcessed, got.Status)
	require.NotNil(t, got.LabelURL)
	assert.Equal(t, url, *got.LabelURL)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes, "notes are kept when not provided")
	require.NotNil(t, got.ProcessedAt)
	assert.True(t, processedAt.Equal(*got.ProcessedAt))
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, "admin-1", *got.ProcessedByID)

	pending, err := repo.List(ctx, repositories.LabelRequestFilter{Status: models.LabelStatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = repo.Process(ctx, "missing", repositories.LabelProcessUpdate{Status: models.LabelStatusProcessed, ProcessedAt: processedAt, ProcessedByID: "admin-1"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestWarehouseRepository_ActiveOnlyAndUniqueCode(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMWarehouseRepository(openDB(t))

	require.NoError(t, repo.Create(ctx, &models.Warehouse{Code: "nj1", Name: "Newark", IsActive: true, AcceptsShipping: true}))
	require.NoError(t, repo.Create(ctx, &models.Warehouse{Code: "DE2", Name: "Wilmington", IsActive: false}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Warehouse{Code: "NJ1", Name: "Dup"}), repositories.ErrAlreadyExists)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "NJ1", active[0].Code)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
