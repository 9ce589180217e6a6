package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove returns slice without the first occurrence of item.
func Remove[T comparable](slice []T, item T) []T {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice
	}
	return append(slice[:i:i], slice[i+1:]...)
}

func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Integer](x, lo, hi T) T {
	return max(lo, min(x, hi))
}
