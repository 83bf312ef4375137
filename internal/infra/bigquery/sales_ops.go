package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
)

// TotalsByRegionWithClient aggregates loaded sales between two dates
// inclusive, grouped by region.
func TotalsByRegionWithClient(ctx context.Context, client *bigquery.Client, start, end civil.Date) ([]*bq.RegionTotalsRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			region,
			COUNT(*) AS orders,
			SUM(quantity) AS units,
			SUM(line_total) AS revenue
		FROM %s.%s
		WHERE order_date >= @start_date
		  AND order_date <= @end_date
		GROUP BY region
		ORDER BY revenue DESC
	`, datasetID(), salesTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: start},
		{Name: "end_date", Value: end},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("TotalsByRegion: query read: %w", err)
	}

	var rows []*bq.RegionTotalsRow
	for {
		var r bq.RegionTotalsRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("TotalsByRegion: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}

// QuerySalesByDateRangeWithClient returns loaded sales rows between two
// dates inclusive, ordered by date then order id.
func QuerySalesByDateRangeWithClient(ctx context.Context, client *bigquery.Client, start, end civil.Date) ([]*bq.SalesRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			order_id,
			product,
			category,
			quantity,
			price,
			order_date,
			region,
			line_total
		FROM %s.%s
		WHERE order_date >= @start_date
		  AND order_date <= @end_date
		ORDER BY order_date, order_id
	`, datasetID(), salesTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: start},
		{Name: "end_date", Value: end},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QuerySalesByDateRange: query read: %w", err)
	}

	var rows []*bq.SalesRow
	for {
		var r bq.SalesRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QuerySalesByDateRange: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
