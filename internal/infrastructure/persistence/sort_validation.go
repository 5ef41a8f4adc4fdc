package persistence

import (
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// OrderSortFields contains allowed sort fields for production orders
var OrderSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"sequence":       true,
	"reference_code": true,
	"status":         true,
	"finished_at":    true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"code":        true,
	"description": true,
}

// FabricSortFields contains allowed sort fields for fabrics
var FabricSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"color":       true,
	"stock_rolls": true,
}

// SeamstressSortFields contains allowed sort fields for seamstresses
var SeamstressSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
}

// applySearch restricts query to rows whose folded search column matches
func applySearch(query *gorm.DB, search string) *gorm.DB {
	if strings.TrimSpace(search) == "" {
		return query
	}
	return query.Where(`search_text LIKE ? ESCAPE '\'`, likePattern(search))
}

// applyPage adds whitelisted ordering and pagination
func applyPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
