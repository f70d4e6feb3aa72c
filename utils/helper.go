package utils

import (
	"github.com/shopspring/decimal"
)

// RoundTo rounds half away from zero to the given number of decimal places.
// Going through decimal avoids the float64 representation surprises of
// math.Round(x*100)/100 on report figures.
func RoundTo(value float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return out
}

// returns slice removing duplicate elements
func UniqueSlice[T comparable](slice []T) []T {
	inResult := make(map[T]bool)
	var result []T
	for _, elm := range slice {
		if _, ok := inResult[elm]; !ok {
			// if not exists in map, append it, otherwise do nothing
			inResult[elm] = true
			result = append(result, elm)
		}
	}
	return result
}
