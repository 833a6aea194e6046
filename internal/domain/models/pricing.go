package models

// Pack sizes offered on the product page, in grams.
const (
	PackSmall = 250
	PackLarge = 500
)

// packPrices is the fixed price table. Price is a pure function of pack size
// and is always computed here, never taken from the checkout form.
var packPrices = map[int]int{
	PackSmall: 350,
	PackLarge: 700,
}

// PriceFor returns the price for a pack size. Unrecognized sizes are priced
// as the small pack.
func PriceFor(size int) int {
	if price, ok := packPrices[size]; ok {
		return price
	}
	return packPrices[PackSmall]
}

// ValidSize reports whether size is one of the offered packs.
func ValidSize(size int) bool {
	_, ok := packPrices[size]
	return ok
}

// PackSizes returns the offered pack sizes in ascending order.
func PackSizes() []int {
	return []int{PackSmall, PackLarge}
}
