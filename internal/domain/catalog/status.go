package catalog

import "fmt"

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	StatusDraft      ProductStatus = "draft"
	StatusActive     ProductStatus = "active"
	StatusSuspended  ProductStatus = "suspended"
	StatusInactive   ProductStatus = "inactive"
	StatusOutOfStock ProductStatus = "out_of_stock"
	StatusArchived   ProductStatus = "archived"
)

// AllStatuses lists every valid product status
func AllStatuses() []ProductStatus {
	return []ProductStatus{
		StatusDraft,
		StatusActive,
		StatusSuspended,
		StatusInactive,
		StatusOutOfStock,
		StatusArchived,
	}
}

// IsValid checks whether the status is a known lifecycle status
func (s ProductStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusSuspended, StatusInactive, StatusOutOfStock, StatusArchived:
		return true
	}
	return false
}

// ParseStatus parses a status string
func ParseStatus(value string) (ProductStatus, error) {
	status := ProductStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown product status %q", value)
	}
	return status, nil
}

// TransitionViolations decides whether a status change from current to
// requested is legal for the given product. It is a pure decision function:
// an empty result means the transition is accepted, otherwise each entry is
// a human-readable reason for rejection.
//
// Rules, in evaluation order:
//   - Archived is terminal; nothing leaves it, override or not.
//   - Requesting the current status is an accepted no-op.
//   - Entering Active requires the activation gate to pass, from any state.
//   - Returning to Draft is an admin-only path.
//   - Leaving Draft for anything other than Active or Archived is an
//     admin-only path. The override bypasses this transition restriction but
//     never the activation gate above.
//   - Every other transition is accepted unconditionally.
func TransitionViolations(current, requested ProductStatus, product *Product, adminOverride bool) []string {
	if current == StatusArchived {
		return []string{"Cannot change the status of an archived product."}
	}

	if requested == current {
		return nil
	}

	if requested == StatusActive {
		return ActivationViolations(product)
	}

	if requested == StatusDraft && !adminOverride {
		return []string{"Returning a product to Draft requires admin approval."}
	}

	if current == StatusDraft && requested != StatusArchived && !adminOverride {
		return []string{fmt.Sprintf("Moving a draft product to %s requires admin approval.", requested)}
	}

	return nil
}

// ActivationViolations checks the data-quality gate a product must satisfy
// to enter or remain in the Active status. One violation is returned per
// missing or invalid field.
func ActivationViolations(product *Product) []string {
	var violations []string

	if product.Description == "" {
		violations = append(violations, "Description is required to set product to Active.")
	}
	if product.Category == "" {
		violations = append(violations, "Category is required to set product to Active.")
	}
	if !product.Price.IsPositive() {
		violations = append(violations, "Price must be greater than zero to set product to Active.")
	}
	if product.Stock < 0 {
		violations = append(violations, "Stock cannot be negative to set product to Active.")
	}
	if !product.HasImages() {
		violations = append(violations, "At least one image is required to set product to Active.")
	}

	return violations
}

// CanActivate reports whether the activation gate passes
func CanActivate(product *Product) bool {
	return len(ActivationViolations(product)) == 0
}
