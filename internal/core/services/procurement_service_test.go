package services_test

import (
	"context"
	"testing"

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

type ProcurementServiceTestSuite struct {
	suite.Suite
	mockProcurementRepo *MockProcurementRepository
	mockStockRepo       *MockStockRepository
	service             portssvc.ProcurementSvcFacade
	areaID              string
	userID              string
}

func (suite *ProcurementServiceTestSuite) SetupTest() {
	suite.mockProcurementRepo = new(MockProcurementRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.service = services.NewProcurementService(suite.mockProcurementRepo, suite.mockStockRepo)

	suite.areaID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ProcurementServiceTestSuite) purchaseRequest(lines ...domain.ProcurementDetailLine) domain.PurchaseRequest {
	return domain.PurchaseRequest{
		PurchaseID: uuid.NewString(),
		AreaID:     suite.areaID,
		Reference:  "PR-2026-014",
		Status:     domain.RequestOpened,
		Details:    lines,
	}
}

func (suite *ProcurementServiceTestSuite) TestCreatePurchaseRequest_Success() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequestRequest{
		AreaID:    suite.areaID,
		Reference: "PR-2026-014",
		Details: []dto.ProcurementLineRequest{
			{ProductID: uuid.NewString(), QuantityRequested: decimal.NewFromInt(12), UnitaryPrice: decimal.NewFromInt(2500)},
		},
	}

	suite.mockProcurementRepo.On("SavePurchaseRequest", ctx, mock.AnythingOfType("domain.PurchaseRequest")).Return(nil).Once()

	request, err := suite.service.CreatePurchaseRequest(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestOpened, request.Status)
	suite.Len(request.Details, 1)
	suite.Equal(decimal.NewFromInt(30000).String(), request.TotalAmount().String())

	suite.mockProcurementRepo.AssertExpectations(suite.T())
}

func (suite *ProcurementServiceTestSuite) TestCreatePurchaseRequest_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequestRequest{
		AreaID: suite.areaID,
		Details: []dto.ProcurementLineRequest{
			{ProductID: uuid.NewString(), QuantityRequested: decimal.Zero, UnitaryPrice: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreatePurchaseRequest(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProcurementRepo.AssertNotCalled(suite.T(), "SavePurchaseRequest", mock.Anything, mock.Anything)
}

func (suite *ProcurementServiceTestSuite) TestDeliverPurchaseRequest_PostsSupplyPerLine() {
	ctx := context.Background()
	accorded := decimal.NewFromInt(8)
	lineGranted := domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(10),
		QuantityAccorded:  &accorded,
	}
	lineFull := domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(4),
	}
	request := suite.purchaseRequest(lineGranted, lineFull)
	delivered := request
	delivered.Status = domain.RequestDelivered

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil).Once()
	suite.mockStockRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Direction == domain.MovementIn &&
			m.Operation == domain.MovementSupply &&
			m.PurchaseDetailLineID != nil && *m.PurchaseDetailLineID == lineGranted.LineID &&
			m.Quantity.Equal(accorded)
	})).Return(nil).Once()
	suite.mockStockRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.PurchaseDetailLineID != nil && *m.PurchaseDetailLineID == lineFull.LineID &&
			m.Quantity.Equal(lineFull.QuantityRequested)
	})).Return(nil).Once()
	suite.mockProcurementRepo.On("UpdatePurchaseRequestStatus", ctx, request.PurchaseID, domain.RequestDelivered, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&delivered, nil).Once()

	result, err := suite.service.DeliverPurchaseRequest(ctx, request.PurchaseID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestDelivered, result.Status)

	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockProcurementRepo.AssertExpectations(suite.T())
}

func (suite *ProcurementServiceTestSuite) TestDeliverPurchaseRequest_SkipsDeliveredLines() {
	ctx := context.Background()
	movementID := uuid.NewString()
	lineDone := domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(10),
		StockMovementID:   &movementID,
	}
	lineTodo := domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(4),
	}
	request := suite.purchaseRequest(lineDone, lineTodo)
	request.Status = domain.RequestDelivered // redelivery after a partial failure

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil)
	suite.mockStockRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.PurchaseDetailLineID != nil && *m.PurchaseDetailLineID == lineTodo.LineID
	})).Return(nil).Once()

	_, err := suite.service.DeliverPurchaseRequest(ctx, request.PurchaseID, suite.userID)

	suite.Require().NoError(err)
	// Only the undelivered line produced a movement; the status is already
	// DELIVERED so no transition is written.
	suite.mockStockRepo.AssertNumberOfCalls(suite.T(), "SaveMovement", 1)
	suite.mockProcurementRepo.AssertNotCalled(suite.T(), "UpdatePurchaseRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProcurementServiceTestSuite) TestDeliverPurchaseRequest_DuplicateMovementSkipped() {
	ctx := context.Background()
	line := domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(10),
	}
	request := suite.purchaseRequest(line)
	delivered := request
	delivered.Status = domain.RequestDelivered

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil).Once()
	// A concurrent delivery already stamped the line.
	suite.mockStockRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.StockMovement")).Return(apperrors.ErrDuplicate).Once()
	suite.mockProcurementRepo.On("UpdatePurchaseRequestStatus", ctx, request.PurchaseID, domain.RequestDelivered, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&delivered, nil).Once()

	result, err := suite.service.DeliverPurchaseRequest(ctx, request.PurchaseID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestDelivered, result.Status)
}

func (suite *ProcurementServiceTestSuite) TestDeliverPurchaseRequest_InsufficientStockFails() {
	ctx := context.Background()
	line := domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(10),
	}
	order := domain.Order{
		OrderID:   uuid.NewString(),
		AreaID:    suite.areaID,
		Reference: "ORD-2026-031",
		Status:    domain.RequestOpened,
		Details:   []domain.ProcurementDetailLine{line},
	}

	suite.mockProcurementRepo.On("FindOrderByID", ctx, order.OrderID).Return(&order, nil).Once()
	suite.mockStockRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.StockMovement")).Return(domain.ErrInsufficientStock).Once()

	_, err := suite.service.DeliverOrder(ctx, order.OrderID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInsufficientStock)
	suite.mockProcurementRepo.AssertNotCalled(suite.T(), "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProcurementServiceTestSuite) TestSetPurchaseRequestStatus_ClosedIsTerminal() {
	ctx := context.Background()
	request := suite.purchaseRequest()
	request.Status = domain.RequestClosed

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil).Once()

	_, err := suite.service.SetPurchaseRequestStatus(ctx, request.PurchaseID, domain.RequestOpened, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ProcurementServiceTestSuite) TestGrantPurchaseRequestLines_UnknownLine() {
	ctx := context.Background()
	request := suite.purchaseRequest(domain.ProcurementDetailLine{
		LineID:            uuid.NewString(),
		ProductID:         uuid.NewString(),
		QuantityRequested: decimal.NewFromInt(10),
	})

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil).Once()

	_, err := suite.service.GrantPurchaseRequestLines(ctx, request.PurchaseID, dto.GrantLinesRequest{
		Lines: []dto.GrantLineRequest{{LineID: uuid.NewString(), QuantityAccorded: decimal.NewFromInt(5)}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProcurementRepo.AssertNotCalled(suite.T(), "SetLineQuantityAccorded", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProcurementServiceTestSuite) TestGrantPurchaseRequestLines_OnlyWhileOpened() {
	ctx := context.Background()
	request := suite.purchaseRequest()
	request.Status = domain.RequestDelivered

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil).Once()

	_, err := suite.service.GrantPurchaseRequestLines(ctx, request.PurchaseID, dto.GrantLinesRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ProcurementServiceTestSuite) TestDeliverSale_PostsSalePerLine() {
	ctx := context.Background()
	line := domain.SaleDetailLine{
		LineID:       uuid.NewString(),
		ProductID:    uuid.NewString(),
		Quantity:     decimal.NewFromInt(2),
		UnitaryPrice: decimal.NewFromInt(15000),
	}
	sale := domain.Sale{
		SaleID:    uuid.NewString(),
		AreaID:    suite.areaID,
		Reference: "SALE-0007",
		Status:    domain.SalePending,
		Details:   []domain.SaleDetailLine{line},
	}
	delivered := sale
	delivered.Status = domain.SaleDelivered

	suite.mockProcurementRepo.On("FindSaleByID", ctx, sale.SaleID).Return(&sale, nil).Once()
	suite.mockStockRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Direction == domain.MovementOut &&
			m.Operation == domain.MovementSale &&
			m.SaleDetailLineID != nil && *m.SaleDetailLineID == line.LineID &&
			m.Quantity.Equal(line.Quantity)
	})).Return(nil).Once()
	suite.mockProcurementRepo.On("UpdateSaleStatus", ctx, sale.SaleID, domain.SaleDelivered, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockProcurementRepo.On("FindSaleByID", ctx, sale.SaleID).Return(&delivered, nil).Once()

	result, err := suite.service.DeliverSale(ctx, sale.SaleID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleDelivered, result.Status)

	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *ProcurementServiceTestSuite) TestRejectSale_OnlyPending() {
	ctx := context.Background()
	sale := domain.Sale{
		SaleID: uuid.NewString(),
		Status: domain.SaleDelivered,
	}

	suite.mockProcurementRepo.On("FindSaleByID", ctx, sale.SaleID).Return(&sale, nil).Once()

	_, err := suite.service.RejectSale(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockProcurementRepo.AssertNotCalled(suite.T(), "UpdateSaleStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProcurementServiceTestSuite) TestRejectSale_Success() {
	ctx := context.Background()
	sale := domain.Sale{
		SaleID: uuid.NewString(),
		Status: domain.SalePending,
	}

	suite.mockProcurementRepo.On("FindSaleByID", ctx, sale.SaleID).Return(&sale, nil).Once()
	suite.mockProcurementRepo.On("UpdateSaleStatus", ctx, sale.SaleID, domain.SaleRejected, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.RejectSale(ctx, sale.SaleID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleRejected, result.Status)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func TestProcurementService(t *testing.T) {
	suite.Run(t, new(ProcurementServiceTestSuite))
}
