// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate contains the pure validation functions for guest input.

# Claim Form Validation

An item's three requirement flags decide which claim fields are
mandatory. ValidateClaimForm returns a field→message map that is empty
when the submission is acceptable:

	errs := validate.ValidateClaimForm(form, validate.ClaimRequirements{
		RequireName:    item.RequireName,
		RequireContact: item.RequireContact,
	})
	if len(errs) > 0 {
		// 400 with per-field messages
	}

"Acceptable" means only that required fields are non-blank after
trimming; there are no length or format constraints beyond that.

# Sanitization

Free-text guest input is trimmed and HTML-escaped before persisting:

	clean := validate.SanitizeInput(raw)

EscapeHTML converts & < > " ' to &amp; &lt; &gt; &quot; &#39; in a
single pass.

# Predicates

IsNonEmptyString, IsPositiveInteger, and IsValidEmail are small pure
predicates used by the handlers for sheet and item validation.
*/
package validate
