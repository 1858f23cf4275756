package core

// Statistics is the month-level sales summary.
type Statistics struct {
	TotalSaleAmount float64
	SoldCount       int
	UnsoldCount     int
}

// HistogramBuckets are the fixed price-range labels, in ascending order.
// Each bucket is inclusive of its upper bound; the last one is open-ended.
var HistogramBuckets = []string{
	"0-100", "101-200", "201-300", "301-400", "401-500",
	"501-600", "601-700", "701-800", "801-900", "901-above",
}

// Summarize computes totals over all given transactions.
func Summarize(ts []Transaction) Statistics {
	var s Statistics
	for _, t := range ts {
		s.TotalSaleAmount += t.Price
		if t.Sold {
			s.SoldCount++
		} else {
			s.UnsoldCount++
		}
	}
	return s
}

// PriceHistogram buckets the transactions into the ten fixed price ranges.
// Every bucket is present in the result, zero-filled when empty, and every
// transaction lands in exactly one bucket.
func PriceHistogram(ts []Transaction) map[string]int {
	hist := make(map[string]int, len(HistogramBuckets))
	for _, label := range HistogramBuckets {
		hist[label] = 0
	}
	for _, t := range ts {
		hist[bucketFor(t.Price)]++
	}
	return hist
}

func bucketFor(price float64) string {
	switch {
	case price <= 100:
		return "0-100"
	case price <= 200:
		return "101-200"
	case price <= 300:
		return "201-300"
	case price <= 400:
		return "301-400"
	case price <= 500:
		return "401-500"
	case price <= 600:
		return "501-600"
	case price <= 700:
		return "601-700"
	case price <= 800:
		return "701-800"
	case price <= 900:
		return "801-900"
	default:
		return "901-above"
	}
}

// CountByCategory tallies transactions per category label. Only labels
// present among the given transactions appear; there are no zero entries.
func CountByCategory(ts []Transaction) map[string]int {
	counts := make(map[string]int)
	for _, t := range ts {
		counts[t.Category]++
	}
	return counts
}
