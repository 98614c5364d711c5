package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// CreateMovementRequest defines the data needed to record a stock movement.
type CreateMovementRequest struct {
	AreaID      string                   `json:"areaID" binding:"required"`
	ProductID   string                   `json:"productID" binding:"required"`
	Direction   domain.MovementDirection `json:"direction" binding:"required,oneof=IN OUT"`
	Operation   domain.MovementOperation `json:"operation" binding:"required,oneof=SALE SUPPLY CORRECTION RETURN_SUPPLIER RETURN_CUSTOMER OTHER"`
	Quantity    decimal.Decimal          `json:"quantity" binding:"required,dgt0"`
	DateOf      *time.Time               `json:"dateOf"`
	Comment     string                   `json:"comment"`
	InitiatedBy string                   `json:"initiatedBy"`
}

// ListMovementsParams narrows and paginates a movement history query.
type ListMovementsParams struct {
	ProductID string     `form:"productID" binding:"required"`
	AreaID    string     `form:"areaID"`
	DateBegin *time.Time `form:"dateBegin" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"dateEnd" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// MovementResponse defines the data returned for a stock movement.
type MovementResponse struct {
	MovementID         string                   `json:"movementID"`
	AreaID             string                   `json:"areaID"`
	ProductID          string                   `json:"productID"`
	Direction          domain.MovementDirection `json:"direction"`
	Operation          domain.MovementOperation `json:"operation"`
	Quantity           decimal.Decimal          `json:"quantity"`
	SignedQuantity     decimal.Decimal          `json:"signedQuantity"`
	Status             domain.MovementStatus    `json:"status"`
	DateOf             time.Time                `json:"dateOf"`
	Comment            string                   `json:"comment,omitempty"`
	InitiatedBy        string                   `json:"initiatedBy,omitempty"`
	OriginalMovementID *string                  `json:"originalMovementID,omitempty"`
	CreatedAt          time.Time                `json:"createdAt"`
	CreatedBy          string                   `json:"createdBy"`
}

// ListMovementsResponse wraps a page of movements, newest first.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// StockCheckResponse reports stored against recomputed stock for a product.
type StockCheckResponse struct {
	ProductID   string          `json:"productID"`
	Stored      decimal.Decimal `json:"stored"`
	Recomputed  decimal.Decimal `json:"recomputed"`
	Drifted     bool            `json:"drifted"`
	Repaired    bool            `json:"repaired"`
}

// ToMovementResponse converts a domain.StockMovement to its DTO.
func ToMovementResponse(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		MovementID:         m.MovementID,
		AreaID:             m.AreaID,
		ProductID:          m.ProductID,
		Direction:          m.Direction,
		Operation:          m.Operation,
		Quantity:           m.Quantity,
		SignedQuantity:     m.SignedQuantity(),
		Status:             m.Status,
		DateOf:             m.DateOf,
		Comment:            m.Comment,
		InitiatedBy:        m.InitiatedBy,
		OriginalMovementID: m.OriginalMovementID,
		CreatedAt:          m.CreatedAt,
		CreatedBy:          m.CreatedBy,
	}
}

// ToMovementResponses converts a slice of movements to DTOs.
func ToMovementResponses(movements []domain.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
