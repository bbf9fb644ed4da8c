package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// RemoveAt removes the i-th element by moving the last element into its
// place. The order of the remaining elements is not preserved.
func RemoveAt[T any](slice []T, i int) []T {
	last := len(slice) - 1
	slice[i] = slice[last]
	return slice[:last]
}
