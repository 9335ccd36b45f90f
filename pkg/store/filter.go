package store

// Filter computes the subset of items matching key. Filters must not
// modify items and should preserve their order.
type Filter[T any] func(items []T, key string) []T

// Where builds an order-preserving Filter from a per-item predicate.
func Where[T any](match func(item T, key string) bool) Filter[T] {
	return func(items []T, key string) []T {
		out := make([]T, 0, len(items))
		for _, it := range items {
			if match(it, key) {
				out = append(out, it)
			}
		}
		return out
	}
}

// FieldEquals builds a Filter selecting items whose field equals the key.
func FieldEquals[T any](field func(T) string) Filter[T] {
	return Where(func(item T, key string) bool {
		return field(item) == key
	})
}
