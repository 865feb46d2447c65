// Package pricing estimates a fair market price for a cluster of listings.
package pricing

// referenceWeight is the share of the estimate taken from an externally
// supplied reference price when one is available. The remainder comes from
// the observed mean.
const referenceWeight = 0.5

// FairPrice combines a cluster's known member prices with an optional
// reference (manufacturer/list) price. The observed base is the arithmetic
// mean of known prices; a reference price, when given, is blended in to
// anchor noisy scraped prices. With no known prices the result is nil.
//
// The condition score is accepted for a future depreciation term and is
// deliberately ignored so it cannot silently distort prices.
func FairPrice(prices []*float64, conditionScore float64, reference *float64) *float64 {
	_ = conditionScore

	sum := 0.0
	n := 0
	for _, p := range prices {
		if p != nil {
			sum += *p
			n++
		}
	}
	if n == 0 {
		return nil
	}

	estimate := sum / float64(n)
	if reference != nil {
		estimate = referenceWeight**reference + (1-referenceWeight)*estimate
	}
	return &estimate
}
