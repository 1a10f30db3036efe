package profile_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/internal/module/tamagotchi"
	"github.com/saverfox/saverfox/internal/platform/profile"
	"github.com/saverfox/saverfox/pkg/logger"
)

// MockRepository is a mock implementation of profile.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *profile.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *profile.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockShop is a mock implementation of profile.ShopService
type MockShop struct {
	mock.Mock
}

func (m *MockShop) GetCharacter(ctx context.Context, id uuid.UUID) (*shop.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Character), args.Error(1)
}

func (m *MockShop) ListFoods(ctx context.Context) ([]*shop.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Food), args.Error(1)
}

func (m *MockShop) GrantItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType shop.ItemType, qty int) error {
	args := m.Called(ctx, userID, itemID, itemType, qty)
	return args.Error(0)
}

// MockTamagotchis is a mock implementation of profile.TamagotchiService
type MockTamagotchis struct {
	mock.Mock
}

func (m *MockTamagotchis) Adopt(ctx context.Context, userID, characterID uuid.UUID, name string) (*tamagotchi.Tamagotchi, error) {
	args := m.Called(ctx, userID, characterID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tamagotchi.Tamagotchi), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger() *logger.Logger {
	return logger.New("test", io.Discard)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("defaults currency", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(nil, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*profile.Profile")).Return(nil)

		svc := profile.NewService(repo, new(MockShop), new(MockTamagotchis), passthroughTx{}, testLogger())
		p, err := svc.Create(ctx, userID, 9, decimal.NewFromInt(50), "")

		require.NoError(t, err)
		assert.Equal(t, "IDR", p.Currency)
		assert.False(t, p.OnboardingCompleted)
	})

	t.Run("uppercases currency", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(nil, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*profile.Profile")).Return(nil)

		svc := profile.NewService(repo, new(MockShop), new(MockTamagotchis), passthroughTx{}, testLogger())
		p, err := svc.Create(ctx, userID, 9, decimal.NewFromInt(50), "usd")
		require.NoError(t, err)
		assert.Equal(t, "USD", p.Currency)
	})

	t.Run("validation", func(t *testing.T) {
		svc := profile.NewService(new(MockRepository), new(MockShop), new(MockTamagotchis), passthroughTx{}, testLogger())

		_, err := svc.Create(ctx, userID, 4, decimal.NewFromInt(50), "")
		assert.ErrorIs(t, err, profile.ErrInvalidAge)

		_, err = svc.Create(ctx, userID, 19, decimal.NewFromInt(50), "")
		assert.ErrorIs(t, err, profile.ErrInvalidAge)

		_, err = svc.Create(ctx, userID, 9, decimal.Zero, "")
		assert.ErrorIs(t, err, profile.ErrInvalidAllowance)

		_, err = svc.Create(ctx, userID, 9, decimal.NewFromInt(50), "RUPIAH")
		assert.ErrorIs(t, err, profile.ErrInvalidCurrency)
	})

	t.Run("conflict when profile exists", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(&profile.Profile{UserID: userID}, nil)

		svc := profile.NewService(repo, new(MockShop), new(MockTamagotchis), passthroughTx{}, testLogger())
		_, err := svc.Create(ctx, userID, 9, decimal.NewFromInt(50), "")
		assert.ErrorIs(t, err, profile.ErrAlreadyExists)
	})
}

func TestService_ChooseStarterCharacter(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	characterID := uuid.New()

	starter := &shop.Character{ID: characterID, Name: "Foxy", IsStarter: true, Price: decimal.Zero}
	apple := &shop.Food{ID: uuid.New(), Name: "Apple", NutritionValue: 10, Price: decimal.NewFromInt(5)}
	pizza := &shop.Food{ID: uuid.New(), Name: "Pizza", NutritionValue: 30, Price: decimal.NewFromInt(15)}

	t.Run("bootstraps pet and inventory", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(&profile.Profile{ID: uuid.New(), UserID: userID}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*profile.Profile")).Return(nil)

		shopSvc := new(MockShop)
		shopSvc.On("GetCharacter", ctx, characterID).Return(starter, nil)
		shopSvc.On("GrantItem", ctx, userID, characterID, shop.ItemTypeCharacter, 1).Return(nil)
		shopSvc.On("ListFoods", ctx).Return([]*shop.Food{apple, pizza}, nil)
		shopSvc.On("GrantItem", ctx, userID, apple.ID, shop.ItemTypeFood, 10).Return(nil)

		pet := &tamagotchi.Tamagotchi{ID: uuid.New(), UserID: userID, Name: "Foxy"}
		tams := new(MockTamagotchis)
		tams.On("Adopt", ctx, userID, characterID, "Foxy").Return(pet, nil)

		svc := profile.NewService(repo, shopSvc, tams, passthroughTx{}, testLogger())
		res, err := svc.ChooseStarterCharacter(ctx, userID, characterID)

		require.NoError(t, err)
		assert.Equal(t, pet.ID, res.TamagotchiID)
		assert.Equal(t, apple.ID, res.SeededFoodID)
		assert.Equal(t, 10, res.SeededQty)
		assert.True(t, res.Profile.OnboardingCompleted)
		shopSvc.AssertExpectations(t)
		tams.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-starter", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(&profile.Profile{UserID: userID}, nil)

		shopSvc := new(MockShop)
		shopSvc.On("GetCharacter", ctx, characterID).Return(&shop.Character{ID: characterID, Name: "Dragon", IsStarter: false}, nil)

		svc := profile.NewService(repo, shopSvc, new(MockTamagotchis), passthroughTx{}, testLogger())
		_, err := svc.ChooseStarterCharacter(ctx, userID, characterID)
		assert.ErrorIs(t, err, profile.ErrNotStarter)
	})

	t.Run("conflict when pet exists", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(&profile.Profile{UserID: userID}, nil)

		shopSvc := new(MockShop)
		shopSvc.On("GetCharacter", ctx, characterID).Return(starter, nil)

		tams := new(MockTamagotchis)
		tams.On("Adopt", ctx, userID, characterID, "Foxy").Return(nil, tamagotchi.ErrAlreadyExists)

		svc := profile.NewService(repo, shopSvc, tams, passthroughTx{}, testLogger())
		_, err := svc.ChooseStarterCharacter(ctx, userID, characterID)
		assert.ErrorIs(t, err, tamagotchi.ErrAlreadyExists)
	})

	t.Run("missing profile", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", ctx, userID).Return(nil, nil)

		svc := profile.NewService(repo, new(MockShop), new(MockTamagotchis), passthroughTx{}, testLogger())
		_, err := svc.ChooseStarterCharacter(ctx, userID, characterID)
		assert.ErrorIs(t, err, profile.ErrNotFound)
	})
}
