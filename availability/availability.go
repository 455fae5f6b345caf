// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package availability

import "github.com/danielhkuo/signup-sheets/models"

// Remaining returns the number of unclaimed slots given a needed
// quantity and a claim count, floored at zero. A claim count above the
// needed quantity can occur transiently if admission control is
// bypassed; the result is clamped rather than going negative.
func Remaining(quantityNeeded, claimCount int) int {
	available := quantityNeeded - claimCount
	if available < 0 {
		return 0
	}
	return available
}

// CalculateAvailableQuantity computes the remaining slots for an item:
// max(0, quantityNeeded - len(claims)). A nil item yields 0; nil claims
// are treated as an empty collection.
func CalculateAvailableQuantity(item *models.SignupItem, claims []models.Claim) int {
	if item == nil {
		return 0
	}
	return Remaining(item.QuantityNeeded, len(claims))
}

// IsItemFull reports whether no more claims can be accepted for the
// item. An item with quantityNeeded of zero (impossible per the schema
// constraint) is always full.
func IsItemFull(item *models.SignupItem, claims []models.Claim) bool {
	return CalculateAvailableQuantity(item, claims) == 0
}
