package services_test

import (
	"context"
	"time"

	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockIdentityRepository is a mock implementation of repositories.IdentityRepository
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockIdentityRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockIdentityRepository) UpdateEmail(ctx context.Context, id, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of services.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Verify(ctx context.Context, accessToken string) (*services.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Identity), args.Error(1)
}

func (m *MockIdentityProvider) Refresh(ctx context.Context, refreshToken string) (*services.Identity, *services.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*services.Identity), args.Get(1).(*services.TokenPair), args.Error(2)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*services.Identity, *services.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*services.Identity), args.Get(1).(*services.TokenPair), args.Error(2)
}

func (m *MockIdentityProvider) CreateIdentity(ctx context.Context, email, password string) (*services.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Identity), args.Error(1)
}

func (m *MockIdentityProvider) UpdatePassword(ctx context.Context, identityID, password string) error {
	args := m.Called(ctx, identityID, password)
	return args.Error(0)
}

func (m *MockIdentityProvider) UpdateEmail(ctx context.Context, identityID, email string) error {
	args := m.Called(ctx, identityID, email)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ClearDiscord(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDealRepository is a mock implementation of repositories.DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) List(ctx context.Context, filter repositories.DealFilter) ([]models.Deal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deal), args.Error(1)
}

func (m *MockDealRepository) GetByID(ctx context.Context, id string) (*models.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deal), args.Error(1)
}

func (m *MockDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) Update(ctx context.Context, deal *models.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommitmentRepository is a mock implementation of repositories.CommitmentRepository
type MockCommitmentRepository struct {
	mock.Mock
}

func (m *MockCommitmentRepository) CreateWithinLimit(ctx context.Context, commitment *models.Commitment, limit int) error {
	args := m.Called(ctx, commitment, limit)
	return args.Error(0)
}

func (m *MockCommitmentRepository) GetByID(ctx context.Context, id string) (*models.Commitment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commitment), args.Error(1)
}

func (m *MockCommitmentRepository) List(ctx context.Context, profileID string) ([]models.Commitment, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commitment), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of repositories.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) CreateForCommitment(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByProfile(ctx context.Context, profileID string) ([]models.Invoice, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus, paidAt *time.Time) error {
	args := m.Called(ctx, id, status, paidAt)
	return args.Error(0)
}

// MockLabelRequestRepository is a mock implementation of repositories.LabelRequestRepository
type MockLabelRequestRepository struct {
	mock.Mock
}

func (m *MockLabelRequestRepository) Create(ctx context.Context, request *models.LabelRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockLabelRequestRepository) GetByID(ctx context.Context, id string) (*models.LabelRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabelRequest), args.Error(1)
}

func (m *MockLabelRequestRepository) List(ctx context.Context, filter repositories.LabelRequestFilter) ([]models.LabelRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabelRequest), args.Error(1)
}

func (m *MockLabelRequestRepository) Process(ctx context.Context, id string, update repositories.LabelProcessUpdate) (*models.LabelRequest, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabelRequest), args.Error(1)
}

// MockWarehouseRepository is a mock implementation of repositories.WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) List(ctx context.Context, activeOnly bool) ([]models.Warehouse, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id string) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func adminProfile() *models.Profile {
	return &models.Profile{ID: "admin-1", UserID: "user-admin", Email: "admin@example.com", Role: models.RoleAdmin, VendorNumber: 1}
}

func sellerProfile() *models.Profile {
	return &models.Profile{ID: "seller-1", UserID: "user-seller", Email: "seller@example.com", Role: models.RoleSeller, VendorNumber: 2}
}
