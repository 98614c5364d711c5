package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/core/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

const testRejectedTTL = 30 * 24 * time.Hour

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         portssvc.ProductSvcFacade
	areaID          string
	userID          string
	product         domain.Product
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockProductRepo, testRejectedTTL)

	suite.areaID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.product = domain.Product{
		ProductID:     uuid.NewString(),
		AreaID:        suite.areaID,
		Reference:     "OIL-1L",
		Name:          "Sunflower oil 1L",
		PurchasePrice: decimal.NewFromInt(8000),
		SalePrice:     decimal.NewFromInt(9500),
		State:         domain.ProductValidated,
	}
}

func (suite *ProductServiceTestSuite) TestCreateProduct_StartsPendingWithZeroStock() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		AreaID:        suite.areaID,
		Reference:     "OIL-1L",
		Name:          "Sunflower oil 1L",
		PurchasePrice: decimal.NewFromInt(8000),
		SalePrice:     decimal.NewFromInt(9500),
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.State == domain.ProductPending && p.ActualStock.IsZero() && p.OldStock.IsZero()
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.Equal(domain.ProductPending, product.State)
	suite.Equal(suite.userID, product.CreatedBy)

	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativePriceRefused() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		AreaID:        suite.areaID,
		Reference:     "OIL-1L",
		Name:          "Sunflower oil 1L",
		PurchasePrice: decimal.NewFromInt(-1),
		SalePrice:     decimal.NewFromInt(9500),
	}

	_, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PriceChangeRecorded() {
	ctx := context.Background()
	newSale := decimal.NewFromInt(10500)
	req := dto.UpdateProductRequest{SalePrice: &newSale}

	suite.mockProductRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product"), mock.MatchedBy(func(history []domain.PriceHistory) bool {
		return len(history) == 1 &&
			history[0].Type == domain.PriceSale &&
			history[0].OldValue.Equal(decimal.NewFromInt(9500)) &&
			history[0].NewValue.Equal(newSale)
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, suite.product.ProductID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newSale.String(), product.SalePrice.String())

	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_BothPricesChanged() {
	ctx := context.Background()
	newSale := decimal.NewFromInt(10500)
	newPurchase := decimal.NewFromInt(8800)
	req := dto.UpdateProductRequest{SalePrice: &newSale, PurchasePrice: &newPurchase}

	suite.mockProductRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product"), mock.MatchedBy(func(history []domain.PriceHistory) bool {
		return len(history) == 2
	})).Return(nil).Once()

	_, err := suite.service.UpdateProduct(ctx, suite.product.ProductID, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_SamePriceNoHistory() {
	ctx := context.Background()
	samePrice := suite.product.SalePrice
	newName := "Sunflower oil 1L bottle"
	req := dto.UpdateProductRequest{Name: &newName, SalePrice: &samePrice}

	suite.mockProductRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product"), mock.MatchedBy(func(history []domain.PriceHistory) bool {
		return len(history) == 0
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, suite.product.ProductID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, product.Name)
}

func (suite *ProductServiceTestSuite) TestValidateProduct_Approve() {
	ctx := context.Background()
	pending := suite.product
	pending.State = domain.ProductPending

	suite.mockProductRepo.On("FindProductByID", ctx, pending.ProductID).Return(&pending, nil).Once()
	suite.mockProductRepo.On("UpdateProductState", ctx, pending.ProductID, domain.ProductValidated, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	product, err := suite.service.ValidateProduct(ctx, pending.ProductID, true, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProductValidated, product.State)
}

func (suite *ProductServiceTestSuite) TestValidateProduct_Reject() {
	ctx := context.Background()
	pending := suite.product
	pending.State = domain.ProductPending

	suite.mockProductRepo.On("FindProductByID", ctx, pending.ProductID).Return(&pending, nil).Once()
	suite.mockProductRepo.On("UpdateProductState", ctx, pending.ProductID, domain.ProductRejected, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	product, err := suite.service.ValidateProduct(ctx, pending.ProductID, false, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProductRejected, product.State)
}

func (suite *ProductServiceTestSuite) TestValidateProduct_AlreadySettled() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()

	_, err := suite.service.ValidateProduct(ctx, suite.product.ProductID, true, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProductState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestPurgeRejectedProducts_CutoffFromTTL() {
	ctx := context.Background()

	suite.mockProductRepo.On("DeleteRejectedProducts", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-testRejectedTTL)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(3), nil).Once()

	removed, err := suite.service.PurgeRejectedProducts(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), removed)
}

func (suite *ProductServiceTestSuite) TestCreateCategory_SetsAuditFields() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{AreaID: suite.areaID, Name: "Groceries"}

	suite.mockProductRepo.On("SaveCategory", ctx, mock.MatchedBy(func(cat domain.ProductCategory) bool {
		return cat.AreaID == suite.areaID && cat.Name == "Groceries" &&
			cat.CategoryID != "" && cat.CreatedBy == suite.userID
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Groceries", category.Name)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateCategory_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{AreaID: suite.areaID, Name: "Groceries"}

	suite.mockProductRepo.On("SaveCategory", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCategory(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestUpdateCategory_Renames() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	existing := domain.ProductCategory{
		CategoryID: categoryID,
		AreaID:     suite.areaID,
		Name:       "Groceries",
	}

	suite.mockProductRepo.On("FindCategoryByID", ctx, categoryID).Return(&existing, nil).Once()
	suite.mockProductRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(cat domain.ProductCategory) bool {
		return cat.CategoryID == categoryID && cat.Name == "Beverages" && cat.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	category, err := suite.service.UpdateCategory(ctx, categoryID, dto.UpdateCategoryRequest{Name: "Beverages"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Beverages", category.Name)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
