// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package availability derives remaining quantity from an item and its
claims. Availability is never stored; it is recomputed on every read.

	available := availability.CalculateAvailableQuantity(&item, claims)
	full := availability.IsItemFull(&item, claims)

available == max(0, quantityNeeded - claimCount), never negative.
IsItemFull is equivalent to available == 0.

The enforcement of the claim-count invariant happens at admission time
in the handlers package; this package only reports the derived state.
*/
package availability
