package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jess232017/wallet-service/internal/apperrors"
	"github.com/jess232017/wallet-service/internal/core/domain"
	portssvc "github.com/jess232017/wallet-service/internal/core/ports/services"
	"github.com/jess232017/wallet-service/internal/core/services"
	"github.com/jess232017/wallet-service/internal/dto"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	service        portssvc.WalletSvcFacade
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo)
}

func (suite *WalletServiceTestSuite) TestCreateWallet_Success() {
	ctx := context.Background()

	suite.mockWalletRepo.On("SaveWallet", mock.Anything, mock.MatchedBy(func(w domain.Wallet) bool {
		return w.Name == "Groceries" && w.Balance.IsZero() && w.Version == 1 && w.WalletID != ""
	})).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, dto.CreateWalletRequest{Name: "  Groceries  "})

	suite.Require().NoError(err)
	suite.Equal("Groceries", wallet.Name)
	suite.True(wallet.Balance.IsZero())
	suite.Equal(int64(1), wallet.Version)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCreateWallet_EmptyNameRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateWallet(ctx, dto.CreateWalletRequest{Name: "   "})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SaveWallet", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestGetWalletByID_NotFound() {
	ctx := context.Background()
	walletID := uuid.NewString()

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetWalletByID(ctx, walletID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WalletServiceTestSuite) TestGetBalance() {
	ctx := context.Background()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Name:     "Savings",
		Balance:  decimal.RequireFromString("123.45"),
		Version:  2,
	}

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, wallet.WalletID).Return(wallet, nil).Once()

	balance, err := suite.service.GetBalance(ctx, wallet.WalletID)
	suite.Require().NoError(err)
	suite.Equal(wallet.WalletID, balance.WalletID)
	suite.True(balance.Balance.Equal(decimal.RequireFromString("123.45")))
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_RenameKeepsBalance() {
	ctx := context.Background()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Name:     "Old Name",
		Balance:  decimal.RequireFromString("10.00"),
		Version:  4,
	}
	newName := "New Name"

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, wallet.WalletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("UpdateWallet", mock.Anything, mock.MatchedBy(func(w domain.Wallet) bool {
		return w.Name == newName && w.Balance.Equal(decimal.RequireFromString("10.00")) && w.Version == 4
	})).Return(&domain.Wallet{
		WalletID: wallet.WalletID,
		Name:     newName,
		Balance:  wallet.Balance,
		Version:  5,
	}, nil).Once()

	updated, err := suite.service.UpdateWallet(ctx, wallet.WalletID, dto.UpdateWalletRequest{Name: &newName})
	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(int64(5), updated.Version)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_VersionConflict() {
	ctx := context.Background()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Name:     "Old Name",
		Balance:  decimal.Zero,
		Version:  1,
	}
	newName := "New Name"

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, wallet.WalletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("UpdateWallet", mock.Anything, mock.AnythingOfType("domain.Wallet")).Return(nil, apperrors.ErrVersionConflict).Once()

	_, err := suite.service.UpdateWallet(ctx, wallet.WalletID, dto.UpdateWalletRequest{Name: &newName})
	suite.Require().ErrorIs(err, apperrors.ErrConcurrentModification)
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_NoFieldsIsNoOp() {
	ctx := context.Background()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Name:     "Unchanged",
		Balance:  decimal.Zero,
		Version:  1,
	}

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, wallet.WalletID).Return(wallet, nil).Once()

	got, err := suite.service.UpdateWallet(ctx, wallet.WalletID, dto.UpdateWalletRequest{})
	suite.Require().NoError(err)
	suite.Equal("Unchanged", got.Name)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWallet", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestDeleteWallet_NotFound() {
	ctx := context.Background()
	walletID := uuid.NewString()

	suite.mockWalletRepo.On("DeleteWallet", mock.Anything, walletID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteWallet(ctx, walletID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
