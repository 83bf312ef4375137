package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/rounitsingh/retail-etl/internal/logger"
	"github.com/shopspring/decimal"
)

// catalog entries carry a fixed unit price so line totals stay checkable.
type catalogItem struct {
	product  string
	category string
	price    decimal.Decimal
}

var catalog = []catalogItem{
	{"Blue T-Shirt", "Apparel", decimal.RequireFromString("15.00")},
	{"Red Mug", "Home", decimal.RequireFromString("7.50")},
	{"Water Bottle", "Outdoors", decimal.RequireFromString("12.00")},
	{"Sneakers", "Footwear", decimal.RequireFromString("55.00")},
	{"Backpack", "Outdoors", decimal.RequireFromString("35.00")},
	{"Laptop Stand", "Electronics", decimal.RequireFromString("40.00")},
	{"Desk Chair", "Furniture", decimal.RequireFromString("120.00")},
	{"Headphones", "Electronics", decimal.RequireFromString("65.00")},
	{"Notebook", "Stationery", decimal.RequireFromString("5.00")},
	{"Pen Set", "Stationery", decimal.RequireFromString("3.00")},
}

// Intentionally mixed casing so the cleaner has work to do.
var regions = []string{"singapore", "MALAYSIA", "thailand", "Vietnam", "Philippines", "indonesia"}

func main() {
	log := logger.New()

	var (
		out   string
		rows  int
		dirty float64
		seed  int64
	)

	flag.StringVar(&out, "out", "sample_sales_dirty.csv", "Output CSV path")
	flag.IntVar(&rows, "rows", 150, "Number of rows to generate")
	flag.Float64Var(&dirty, "dirty", 0.1, "Probability of each defect (duplicate id, missing product, wrong date format)")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	if rows <= 0 {
		log.Fatal().Int("rows", rows).Msg("rows must be positive")
	}
	if dirty < 0 || dirty > 1 {
		log.Fatal().Float64("dirty", dirty).Msg("dirty must be between 0 and 1")
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	f, err := os.Create(out)
	if err != nil {
		log.Fatal().Err(err).Str("out", out).Msg("Failed to create output file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"order_id", "product", "category", "quantity", "price", "order_date", "region"}); err != nil {
		log.Fatal().Err(err).Msg("Failed to write header")
	}

	var usedIDs []string
	now := time.Now()

	for i := 0; i < rows; i++ {
		item := catalog[rng.Intn(len(catalog))]
		quantity := rng.Intn(5) + 1

		// Occasionally reuse an earlier order id
		var orderID string
		if rng.Float64() < dirty && len(usedIDs) > 0 {
			orderID = usedIDs[rng.Intn(len(usedIDs))]
		} else {
			orderID = strconv.Itoa(1001 + i)
			usedIDs = append(usedIDs, orderID)
		}

		// Occasionally drop the product
		product := item.product
		if rng.Float64() < dirty {
			product = ""
		}

		// Occasionally emit a day-first date instead of ISO
		date := now.AddDate(0, 0, -rng.Intn(91))
		orderDate := date.Format("2006-01-02")
		if rng.Float64() < dirty {
			orderDate = date.Format("02-01-2006")
		}

		region := regions[rng.Intn(len(regions))]

		record := []string{
			orderID,
			product,
			item.category,
			strconv.Itoa(quantity),
			item.price.StringFixed(2),
			orderDate,
			region,
		}
		if err := w.Write(record); err != nil {
			log.Fatal().Err(err).Msg("Failed to write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal().Err(err).Msg("Failed to flush CSV")
	}

	fmt.Printf("Generated %d rows of dirty sales data in %s (seed %d)\n", rows, out, seed)
}
