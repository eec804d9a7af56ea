package services

import "errors"

// Sentinel errors for the points, reward and recognition services.
// Controllers translate these to HTTP statuses with errors.Is.
var (
	// ErrInvalidAmount is returned when a points amount is not positive.
	ErrInvalidAmount = errors.New("points amount must be positive")

	// ErrInvalidAllocation is returned when a monthly allocation is negative.
	ErrInvalidAllocation = errors.New("monthly allocation must be non-negative")

	// ErrSelfTransfer is returned when a user tries to transfer points to themselves.
	ErrSelfTransfer = errors.New("cannot transfer points to yourself")

	// ErrSelfRecognition is returned when a user tries to recognize themselves.
	ErrSelfRecognition = errors.New("cannot send recognition to yourself")

	// ErrUserNotFound is returned when a referenced user is missing or inactive.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientBalance is returned when a debit exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient points balance")

	// ErrRewardNotFound is returned when a referenced reward does not exist.
	ErrRewardNotFound = errors.New("reward not found")

	// ErrRewardInactive is returned when redeeming a deactivated reward.
	ErrRewardInactive = errors.New("reward is not active")

	// ErrOutOfStock is returned when a limited reward has no stock left.
	ErrOutOfStock = errors.New("reward is out of stock")

	// ErrRedemptionNotFound is returned when a referenced redemption does not exist.
	ErrRedemptionNotFound = errors.New("redemption not found")

	// ErrPendingRedemptions is returned when deleting a reward that still has
	// pending redemptions against it.
	ErrPendingRedemptions = errors.New("cannot delete reward with pending redemptions")

	// ErrRecognitionNotFound is returned when a referenced recognition does not exist.
	ErrRecognitionNotFound = errors.New("recognition not found")

	// ErrNotRecognitionOwner is returned when someone other than the sender
	// edits or deletes a recognition, or views a private one they are not
	// part of.
	ErrNotRecognitionOwner = errors.New("recognition does not belong to you")
)

// IsClientError reports whether the error is caller-correctable input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidAllocation) ||
		errors.Is(err, ErrSelfTransfer) ||
		errors.Is(err, ErrSelfRecognition) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrRewardInactive) ||
		errors.Is(err, ErrOutOfStock) ||
		errors.Is(err, ErrPendingRedemptions)
}

// IsNotFound reports whether the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRewardNotFound) ||
		errors.Is(err, ErrRedemptionNotFound) ||
		errors.Is(err, ErrRecognitionNotFound)
}
