package catalog

import (
	"reflect"
	"testing"

	"github.com/minimartx/storefront/internal/domain"
)

var browseFixture = []domain.ProductSnapshot{
	{ID: 1, Title: "Essence Mascara", Price: 9.99, Category: "beauty", Rating: 4.94},
	{ID: 2, Title: "Eyeshadow Palette", Price: 19.99, Category: "beauty", Rating: 3.28},
	{ID: 3, Title: "Powder Canister", Price: 14.99, Category: "beauty", Rating: 4.64},
	{ID: 4, Title: "Red Lipstick", Price: 12.99, Category: "beauty", Rating: 4.36},
	{ID: 5, Title: "Calvin Klein CK One", Price: 49.99, Category: "fragrances", Rating: 4.37},
	{ID: 6, Title: "Wooden Bathroom Shelf", Price: 62.99, Category: "furniture", Rating: 4.32},
}

func TestFilter(t *testing.T) {
	t.Run("search matches title case-insensitively", func(t *testing.T) {
		got := Filter(browseFixture, "LIPSTICK", "")
		if len(got) != 1 || got[0].ID != 4 {
			t.Errorf("expected only the lipstick, got %v", got)
		}
	})

	t.Run("search matches category too", func(t *testing.T) {
		got := Filter(browseFixture, "fragrance", "")
		if len(got) != 1 || got[0].ID != 5 {
			t.Errorf("expected only the fragrance, got %v", got)
		}
	})

	t.Run("category All passes everything", func(t *testing.T) {
		got := Filter(browseFixture, "", CategoryAll)
		if len(got) != len(browseFixture) {
			t.Errorf("expected %d products, got %d", len(browseFixture), len(got))
		}
	})

	t.Run("search and category combine", func(t *testing.T) {
		got := Filter(browseFixture, "e", "beauty")
		for _, p := range got {
			if p.Category != "beauty" {
				t.Errorf("product %d leaked through category filter", p.ID)
			}
		}
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := browseFixture[0]
		_ = Filter(browseFixture, "lipstick", "beauty")
		if !reflect.DeepEqual(browseFixture[0], before) {
			t.Error("filter mutated its input")
		}
	})
}

func TestSort(t *testing.T) {
	t.Run("price low to high", func(t *testing.T) {
		got := Sort(browseFixture, SortPriceLowHigh)
		for i := 1; i < len(got); i++ {
			if got[i-1].Price > got[i].Price {
				t.Fatalf("prices out of order at %d: %v > %v", i, got[i-1].Price, got[i].Price)
			}
		}
	})

	t.Run("price high to low", func(t *testing.T) {
		got := Sort(browseFixture, SortPriceHighLow)
		for i := 1; i < len(got); i++ {
			if got[i-1].Price < got[i].Price {
				t.Fatalf("prices out of order at %d: %v < %v", i, got[i-1].Price, got[i].Price)
			}
		}
	})

	t.Run("rating high to low", func(t *testing.T) {
		got := Sort(browseFixture, SortRatingHighLow)
		for i := 1; i < len(got); i++ {
			if got[i-1].Rating < got[i].Rating {
				t.Fatalf("ratings out of order at %d: %v < %v", i, got[i-1].Rating, got[i].Rating)
			}
		}
	})

	t.Run("unknown option keeps catalog order", func(t *testing.T) {
		got := Sort(browseFixture, "bogus")
		for i, p := range got {
			if p.ID != browseFixture[i].ID {
				t.Fatalf("order changed at %d: got id %d, want %d", i, p.ID, browseFixture[i].ID)
			}
		}
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := browseFixture[0]
		_ = Sort(browseFixture, SortPriceHighLow)
		if !reflect.DeepEqual(browseFixture[0], before) {
			t.Error("sort mutated its input")
		}
	})
}

func TestCategories(t *testing.T) {
	got := Categories(browseFixture)

	want := []string{"All", "beauty", "fragrances", "furniture"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
