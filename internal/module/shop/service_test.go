package shop_test

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
	"github.com/saverfox/saverfox/internal/platform/wallet"
	"github.com/saverfox/saverfox/pkg/logger"
)

// MockCatalog is a mock implementation of shop.CatalogRepository
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListCharacters(ctx context.Context) ([]*shop.Character, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Character), args.Error(1)
}

func (m *MockCatalog) ListStarterCharacters(ctx context.Context) ([]*shop.Character, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Character), args.Error(1)
}

func (m *MockCatalog) GetCharacter(ctx context.Context, id uuid.UUID) (*shop.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Character), args.Error(1)
}

func (m *MockCatalog) ListFoods(ctx context.Context) ([]*shop.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Food), args.Error(1)
}

func (m *MockCatalog) GetFood(ctx context.Context, id uuid.UUID) (*shop.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Food), args.Error(1)
}

// MockInventory is a mock implementation of shop.InventoryRepository
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) List(ctx context.Context, userID uuid.UUID) ([]*shop.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.InventoryItem), args.Error(1)
}

func (m *MockInventory) Get(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID) (*shop.InventoryItem, error) {
	args := m.Called(ctx, userID, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.InventoryItem), args.Error(1)
}

func (m *MockInventory) GetForUpdate(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID) (*shop.InventoryItem, error) {
	args := m.Called(ctx, userID, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.InventoryItem), args.Error(1)
}

func (m *MockInventory) AddQuantity(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID, qty int) error {
	args := m.Called(ctx, userID, itemType, itemID, qty)
	return args.Error(0)
}

func (m *MockInventory) InsertIfAbsent(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemType, itemID)
	return args.Error(0)
}

func (m *MockInventory) SetQuantity(ctx context.Context, id uuid.UUID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *MockInventory) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWallets is a mock implementation of shop.WalletService
type MockWallets struct {
	mock.Mock
}

func (m *MockWallets) GetBalance(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWallets) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType wallet.TransactionType, description string) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, amount, txType, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger() *logger.Logger {
	return logger.New("test", io.Discard)
}

func TestService_Purchase_Food(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	foodID := uuid.New()

	pizza := &shop.Food{ID: foodID, Name: "Pizza", NutritionValue: 30, Price: decimal.NewFromInt(15)}

	catalog := new(MockCatalog)
	catalog.On("GetFood", ctx, foodID).Return(pizza, nil)

	wallets := new(MockWallets)
	wallets.On("Debit", ctx, userID, decimal.NewFromInt(15), wallet.TxTypeShopPurchase, "Bought Pizza").
		Return(&wallet.Wallet{UserID: userID, Balance: decimal.NewFromInt(35)}, nil)

	inventory := new(MockInventory)
	inventory.On("AddQuantity", ctx, userID, shop.ItemTypeFood, foodID, 1).Return(nil)

	svc := shop.NewService(catalog, inventory, wallets, nil, passthroughTx{}, testLogger())
	res, err := svc.Purchase(ctx, userID, foodID, shop.ItemTypeFood)

	require.NoError(t, err)
	assert.Equal(t, "35", res.NewBalance.String())
	assert.Equal(t, "Pizza", res.ItemName())
	catalog.AssertExpectations(t)
	wallets.AssertExpectations(t)
	inventory.AssertExpectations(t)
}

func TestService_Purchase_CharacterIsBinaryOwned(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	charID := uuid.New()

	dragon := &shop.Character{ID: charID, Name: "Dragon", Price: decimal.NewFromInt(100)}

	catalog := new(MockCatalog)
	catalog.On("GetCharacter", ctx, charID).Return(dragon, nil)

	wallets := new(MockWallets)
	wallets.On("Debit", ctx, userID, decimal.NewFromInt(100), wallet.TxTypeShopPurchase, "Bought Dragon").
		Return(&wallet.Wallet{UserID: userID, Balance: decimal.Zero}, nil)

	inventory := new(MockInventory)
	inventory.On("InsertIfAbsent", ctx, userID, shop.ItemTypeCharacter, charID).Return(nil)

	svc := shop.NewService(catalog, inventory, wallets, nil, passthroughTx{}, testLogger())
	res, err := svc.Purchase(ctx, userID, charID, shop.ItemTypeCharacter)

	require.NoError(t, err)
	assert.Equal(t, shop.ItemTypeCharacter, res.ItemType)
	inventory.AssertExpectations(t)
}

func TestService_Purchase_FreeItemSkipsDebit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	charID := uuid.New()

	foxy := &shop.Character{ID: charID, Name: "Foxy", Price: decimal.Zero, IsStarter: true}

	catalog := new(MockCatalog)
	catalog.On("GetCharacter", ctx, charID).Return(foxy, nil)

	wallets := new(MockWallets)
	wallets.On("GetBalance", ctx, userID).
		Return(&wallet.Wallet{UserID: userID, Balance: decimal.NewFromInt(20)}, nil)

	inventory := new(MockInventory)
	inventory.On("InsertIfAbsent", ctx, userID, shop.ItemTypeCharacter, charID).Return(nil)

	svc := shop.NewService(catalog, inventory, wallets, nil, passthroughTx{}, testLogger())
	res, err := svc.Purchase(ctx, userID, charID, shop.ItemTypeCharacter)

	require.NoError(t, err)
	assert.Equal(t, "20", res.NewBalance.String())
	wallets.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	inventory.AssertExpectations(t)
}

func TestService_Purchase_InsufficientFundsSkipsInventory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	foodID := uuid.New()

	catalog := new(MockCatalog)
	catalog.On("GetFood", ctx, foodID).Return(&shop.Food{ID: foodID, Name: "Cake", Price: decimal.NewFromInt(25)}, nil)

	wallets := new(MockWallets)
	wallets.On("Debit", ctx, userID, decimal.NewFromInt(25), wallet.TxTypeShopPurchase, "Bought Cake").
		Return(nil, wallet.ErrInsufficientFunds)

	inventory := new(MockInventory)

	svc := shop.NewService(catalog, inventory, wallets, nil, passthroughTx{}, testLogger())
	_, err := svc.Purchase(ctx, userID, foodID, shop.ItemTypeFood)

	require.Error(t, err)
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	inventory.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Purchase_InvalidItemType(t *testing.T) {
	svc := shop.NewService(new(MockCatalog), new(MockInventory), new(MockWallets), nil, passthroughTx{}, testLogger())

	_, err := svc.Purchase(context.Background(), uuid.New(), uuid.New(), shop.ItemType("vehicle"))
	assert.ErrorIs(t, err, shop.ErrInvalidItemType)
}

func TestService_ConsumeItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	foodID := uuid.New()

	t.Run("decrements stack", func(t *testing.T) {
		inventory := new(MockInventory)
		row := &shop.InventoryItem{ID: uuid.New(), UserID: userID, ItemType: shop.ItemTypeFood, ItemID: foodID, Quantity: 10}
		inventory.On("GetForUpdate", ctx, userID, shop.ItemTypeFood, foodID).Return(row, nil)
		inventory.On("SetQuantity", ctx, row.ID, 9).Return(nil)

		svc := shop.NewService(new(MockCatalog), inventory, new(MockWallets), nil, passthroughTx{}, testLogger())
		require.NoError(t, svc.ConsumeItem(ctx, userID, foodID, shop.ItemTypeFood, 1))
		inventory.AssertExpectations(t)
	})

	t.Run("deletes row at zero", func(t *testing.T) {
		inventory := new(MockInventory)
		row := &shop.InventoryItem{ID: uuid.New(), UserID: userID, ItemType: shop.ItemTypeFood, ItemID: foodID, Quantity: 1}
		inventory.On("GetForUpdate", ctx, userID, shop.ItemTypeFood, foodID).Return(row, nil)
		inventory.On("Delete", ctx, row.ID).Return(nil)

		svc := shop.NewService(new(MockCatalog), inventory, new(MockWallets), nil, passthroughTx{}, testLogger())
		require.NoError(t, svc.ConsumeItem(ctx, userID, foodID, shop.ItemTypeFood, 1))
		inventory.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		inventory := new(MockInventory)
		inventory.On("GetForUpdate", ctx, userID, shop.ItemTypeFood, foodID).Return(nil, nil)

		svc := shop.NewService(new(MockCatalog), inventory, new(MockWallets), nil, passthroughTx{}, testLogger())
		err := svc.ConsumeItem(ctx, userID, foodID, shop.ItemTypeFood, 1)
		assert.ErrorIs(t, err, shop.ErrItemNotOwned)
	})

	t.Run("insufficient quantity", func(t *testing.T) {
		inventory := new(MockInventory)
		row := &shop.InventoryItem{ID: uuid.New(), Quantity: 2}
		inventory.On("GetForUpdate", ctx, userID, shop.ItemTypeFood, foodID).Return(row, nil)

		svc := shop.NewService(new(MockCatalog), inventory, new(MockWallets), nil, passthroughTx{}, testLogger())
		err := svc.ConsumeItem(ctx, userID, foodID, shop.ItemTypeFood, 3)
		assert.ErrorIs(t, err, shop.ErrInsufficientQuantity)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		svc := shop.NewService(new(MockCatalog), new(MockInventory), new(MockWallets), nil, passthroughTx{}, testLogger())
		err := svc.ConsumeItem(ctx, userID, foodID, shop.ItemTypeFood, 0)
		assert.ErrorIs(t, err, shop.ErrInvalidQuantity)
	})
}

func TestService_UserOwns(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	inventory := new(MockInventory)
	inventory.On("Get", ctx, userID, shop.ItemTypeFood, itemID).Return(&shop.InventoryItem{Quantity: 3}, nil).Once()
	inventory.On("Get", ctx, userID, shop.ItemTypeCharacter, itemID).Return(nil, nil).Once()

	svc := shop.NewService(new(MockCatalog), inventory, new(MockWallets), nil, passthroughTx{}, testLogger())

	owns, err := svc.UserOwns(ctx, userID, itemID, shop.ItemTypeFood)
	require.NoError(t, err)
	assert.True(t, owns)

	owns, err = svc.UserOwns(ctx, userID, itemID, shop.ItemTypeCharacter)
	require.NoError(t, err)
	assert.False(t, owns)
}
