package query

import (
	"strings"

	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
)

// FilterKind discriminates the closed set of catalog filters.
type FilterKind string

const (
	// FilterNone matches every row.
	FilterNone FilterKind = "none"
	// FilterTextSearch matches by trigram similarity against the product name.
	FilterTextSearch FilterKind = "text_search"
	// FilterExactID matches by exact external product id.
	FilterExactID FilterKind = "exact_id"
)

// Filter is a tagged union; exactly one variant is active per query. Use the
// constructors rather than building the struct by hand.
type Filter struct {
	Kind      FilterKind
	Query     string
	ProductID string
}

// NoFilter matches everything.
func NoFilter() Filter {
	return Filter{Kind: FilterNone}
}

// TextSearch matches rows whose name is similar to the given query string.
func TextSearch(q string) Filter {
	return Filter{Kind: FilterTextSearch, Query: q}
}

// ExactID matches rows whose external product id equals the literal value.
func ExactID(productID string) Filter {
	return Filter{Kind: FilterExactID, ProductID: productID}
}

func (f Filter) validate() *pkgerrors.Error {
	switch f.Kind {
	case FilterNone, "":
		return nil
	case FilterTextSearch:
		if strings.TrimSpace(f.Query) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "search query must not be empty")
		}
		return nil
	case FilterExactID:
		if strings.TrimSpace(f.ProductID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id filter must not be empty")
		}
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown filter kind").
			WithDetails(map[string]any{"kind": string(f.Kind)})
	}
}

// Sort selects the primary ordering of a catalog query. The internal row id
// is always appended as the final tie-break so pagination stays stable.
type Sort struct {
	Field enums.SortField
	Order enums.SortOrder
}

// Params carries the filter, ordering, and window of a list query. Limit is
// required; Offset defaults to zero.
type Params struct {
	Filter Filter
	Sort   *Sort
	Offset int
	Limit  int
}

// Validate checks the window and the filter/sort variants. Violations are
// reported as validation errors so the boundary maps them to 400.
func (p Params) Validate() error {
	if p.Limit <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "limit must be greater than zero").
			WithDetails(map[string]any{"limit": p.Limit})
	}
	if p.Offset < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "offset must not be negative").
			WithDetails(map[string]any{"offset": p.Offset})
	}
	if err := p.Filter.validate(); err != nil {
		return err
	}
	if p.Sort != nil {
		if !p.Sort.Field.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown sort field").
				WithDetails(map[string]any{"field": p.Sort.Field.String()})
		}
		if !p.Sort.Order.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order").
				WithDetails(map[string]any{"order": p.Sort.Order.String()})
		}
	}
	return nil
}

// EffectiveSort resolves the ordering actually applied: an explicit sort
// wins, a text search without one ranks by similarity descending, and
// anything else falls through to the id tie-break alone.
func (p Params) EffectiveSort() *Sort {
	if p.Sort != nil {
		return p.Sort
	}
	if p.Filter.Kind == FilterTextSearch {
		return &Sort{Field: enums.SortFieldSimilarity, Order: enums.SortOrderDesc}
	}
	return nil
}
