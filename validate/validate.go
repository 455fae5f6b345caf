// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"regexp"
	"strings"

	"github.com/danielhkuo/signup-sheets/models"
)

// Field keys used in claim validation error maps. They match the JSON
// field names of models.ClaimFormData.
const (
	FieldGuestName    = "guest_name"
	FieldGuestContact = "guest_contact"
	FieldItemDetails  = "item_details"
)

// ClaimRequirements mirrors an item's requirement flags.
type ClaimRequirements struct {
	RequireName        bool
	RequireContact     bool
	RequireItemDetails bool
}

// ValidateClaimForm checks the submitted claim fields against the item's
// requirement flags. A field produces an error if and only if it is
// required and blank (or absent) after trimming. Fields that are not
// required never produce errors, regardless of content. The returned map
// is empty when the submission is acceptable.
func ValidateClaimForm(form models.ClaimFormData, req ClaimRequirements) map[string]string {
	errs := make(map[string]string)

	if req.RequireName && !IsNonEmptyString(form.GuestName) {
		errs[FieldGuestName] = "Name is required"
	}
	if req.RequireContact && (form.GuestContact == nil || !IsNonEmptyString(*form.GuestContact)) {
		errs[FieldGuestContact] = "Contact information is required"
	}
	if req.RequireItemDetails && (form.ItemDetails == nil || !IsNonEmptyString(*form.ItemDetails)) {
		errs[FieldItemDetails] = "Item details are required"
	}

	return errs
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML replaces &, <, >, " and ' with their HTML entities in a
// single pass over the raw string. All other characters pass through
// unchanged. Already-escaped input is escaped again rather than parsed,
// so the function is never applied iteratively.
func EscapeHTML(input string) string {
	return htmlEscaper.Replace(input)
}

// SanitizeInput trims surrounding whitespace, then escapes HTML.
// Applied to every free-text guest-supplied field before it is persisted.
func SanitizeInput(input string) string {
	return EscapeHTML(strings.TrimSpace(input))
}

// IsNonEmptyString reports whether the value contains any
// non-whitespace characters.
func IsNonEmptyString(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsPositiveInteger reports whether the value is strictly greater
// than zero.
func IsPositiveInteger(value int) bool {
	return value > 0
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether the string has a basic local@domain.tld
// shape: no whitespace, exactly one @, and at least one dot in the
// domain part.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
