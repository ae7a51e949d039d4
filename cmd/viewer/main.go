// Command viewer renders the catalog in a terminal: it fetches the priced
// collection from a running catalog service and prints one card per
// product, with optional filter flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/goldgallery/backend/internal/client"
)

func main() {
	var (
		addr          = flag.String("addr", "http://localhost:5001", "catalog service base URL")
		minPrice      = flag.String("min-price", "", "minimum computed price")
		maxPrice      = flag.String("max-price", "", "maximum computed price")
		minPopularity = flag.String("min-popularity", "", "minimum popularity score (0-5)")
		maxPopularity = flag.String("max-popularity", "", "maximum popularity score (0-5)")
		timeout       = flag.Duration("timeout", 10*time.Second, "request timeout")
	)
	flag.Parse()

	api := client.NewAPIClient(*addr, *timeout)
	vm := client.NewViewModel(api)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Println("Loading products...")
	if err := vm.LoadInitial(ctx); err != nil {
		log.Fatalf("initial fetch failed (state=%s): %v", vm.State(), err)
	}

	vm.UpdateFilter(client.FieldMinPrice, *minPrice)
	vm.UpdateFilter(client.FieldMaxPrice, *maxPrice)
	vm.UpdateFilter(client.FieldMinPopularity, *minPopularity)
	vm.UpdateFilter(client.FieldMaxPopularity, *maxPopularity)

	if *minPrice != "" || *maxPrice != "" || *minPopularity != "" || *maxPopularity != "" {
		if err := vm.ApplyFilters(ctx); err != nil {
			// Keep showing the unfiltered list, matching the UI behavior
			fmt.Fprintf(os.Stderr, "applying filters failed, showing unfiltered list: %v\n", err)
		}
	}

	products := vm.Products()
	if len(products) == 0 {
		fmt.Println("No products match the given filters.")
		return
	}

	fmt.Printf("Product List (%d items)\n\n", len(products))
	for _, p := range products {
		variant := vm.SelectedVariant(p.Name)

		fmt.Println(p.Name)
		fmt.Printf("  %s\n", client.VariantLabel(variant))
		fmt.Printf("  Popularity: %s\n", client.Stars(p.PopularityScoreOutOf5))
		fmt.Printf("  Price: $%.2f\n", p.Price)
		fmt.Printf("  Image: %s\n", vm.ImageFor(p))
		fmt.Printf("  Variants: %s\n\n", variantList(p.Images))
	}
}

// variantList renders the available color variants in stable order
func variantList(images map[string]string) string {
	keys := make([]string, 0, len(images))
	for k := range images {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k
	}
	return out
}
