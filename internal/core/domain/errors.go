package domain

import "errors"

// Business-rule violations surfaced by the ledger operations. They are
// declared here so both services and repositories can return them: some
// invariants (overpayment, underpaid closure) depend on live detail-line
// data and must be re-checked inside the storage transaction itself.
var (
	// ErrInvalidOperationDirection is returned when a movement or cash
	// transaction pairs an operation with a direction outside its partition.
	ErrInvalidOperationDirection = errors.New("operation is not compatible with direction")

	// ErrStaleMovementCancellation is returned when cancelling a stock
	// movement created on a prior business day. The caller should post an
	// opposite movement instead.
	ErrStaleMovementCancellation = errors.New("movement is older than the current business day, post an opposite movement instead")

	// ErrAlreadyCanceled is returned when cancelling a cash transaction or
	// stock movement twice.
	ErrAlreadyCanceled = errors.New("entry is already canceled")

	// ErrNonCancelableOperation is returned when cancelling a SALE_PAYMENT
	// cash transaction: money that physically changed hands must be corrected
	// with an offsetting CORRECTION transaction, never canceled.
	ErrNonCancelableOperation = errors.New("sale payments cannot be canceled directly")

	// ErrOverpayment is returned when a payment would push amount_payed past
	// amount_to_pay. No state is changed.
	ErrOverpayment = errors.New("payment exceeds the amount left to pay")

	// ErrUnderpaidClosure is returned when closing an invoice whose paid
	// amount has not reached the amount to pay.
	ErrUnderpaidClosure = errors.New("cannot close invoice, amount paid is less than amount to pay")

	// ErrRejectedWithPayment is returned when rejecting an invoice that has
	// already received money.
	ErrRejectedWithPayment = errors.New("cannot reject invoice, amount paid is greater than zero")

	// ErrAccountNotOpen is returned when posting a transaction to a cash
	// account that is not in the OPEN state.
	ErrAccountNotOpen = errors.New("cash account is not open for transactions")

	// ErrInsufficientStock is returned when an OUT movement would drive a
	// product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)
