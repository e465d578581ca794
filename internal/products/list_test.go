package product

import (
	"context"
	"testing"

	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/query"
)

func TestListRejectsBadWindow(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.List(context.Background(), query.Params{Limit: 0})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = repo.List(context.Background(), query.Params{Limit: 10, Offset: -1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListSortsByName(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	mustCreateProduct(t, repo, "3", "Cashews")
	mustCreateProduct(t, repo, "1", "Almonds")
	mustCreateProduct(t, repo, "2", "Brazil Nuts")

	rows, err := repo.List(ctx, query.Params{
		Limit: 10,
		Sort:  &query.Sort{Field: enums.SortFieldProductName, Order: enums.SortOrderAsc},
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"Almonds", "Brazil Nuts", "Cashews"} {
		if rows[i].Description == nil || rows[i].Description.Name != want {
			t.Fatalf("row %d: expected %q, got %+v", i, want, rows[i].Description)
		}
	}
}

func TestListExactIDFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	mustCreateProduct(t, repo, "4001724819806", "Rolled Oats")
	mustCreateProduct(t, repo, "4001724819807", "Wheat Flour")

	rows, err := repo.List(ctx, query.Params{
		Limit:  10,
		Filter: query.ExactID("4001724819807"),
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductID != "4001724819807" {
		t.Fatalf("expected single exact match, got %+v", rows)
	}

	rows, err = repo.List(ctx, query.Params{
		Limit:  10,
		Filter: query.ExactID("0000000000000"),
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
}

func TestListWindowingIsStable(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	// identical names force the id tie-break to decide the order
	for _, id := range []string{"10", "11", "12", "13", "14"} {
		mustCreateProduct(t, repo, id, "Oat Milk")
	}

	var collected []string
	for offset := 0; offset < 5; offset += 2 {
		rows, err := repo.List(ctx, query.Params{
			Limit:  2,
			Offset: offset,
			Sort:   &query.Sort{Field: enums.SortFieldProductName, Order: enums.SortOrderAsc},
		})
		if err != nil {
			t.Fatalf("list offset=%d failed: %v", offset, err)
		}
		for _, row := range rows {
			collected = append(collected, row.ProductID)
		}
	}

	if len(collected) != 5 {
		t.Fatalf("expected 5 rows across windows, got %d", len(collected))
	}
	seen := map[string]bool{}
	for _, id := range collected {
		if seen[id] {
			t.Fatalf("row %s appeared in two windows", id)
		}
		seen[id] = true
	}
}

func TestListOffsetPastEndIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	mustCreateProduct(t, repo, "1", "Almonds")

	rows, err := repo.List(ctx, query.Params{Limit: 10, Offset: 50})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty window, got %d rows", len(rows))
	}
}

func TestListSimilaritySortWithoutSearchDegrades(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	mustCreateProduct(t, repo, "2", "Brazil Nuts")
	mustCreateProduct(t, repo, "1", "Almonds")

	rows, err := repo.List(ctx, query.Params{
		Limit: 10,
		Sort:  &query.Sort{Field: enums.SortFieldSimilarity, Order: enums.SortOrderDesc},
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID > rows[1].ID {
		t.Fatal("expected id ascending fallback order")
	}
}
