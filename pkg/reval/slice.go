package reval

// Slice mutation helpers for containers holding a slice. Each helper mutates
// the held slice under the container's lock without a notifying write, then
// calls ForceNotify, so every call produces exactly one notification whether
// or not the mutation changed the slice's length.
//
// On a container with no value yet they return ErrNoValue instead of
// conjuring an empty slice; an absent collection is a caller mistake and is
// reported as one.

// Append adds item to the end of the held slice and re-notifies observers.
func Append[T any](c *Container[[]T], item T) error {
	return mutate(c, func(items []T) []T {
		return append(items, item)
	})
}

// Prepend adds item to the front of the held slice and re-notifies observers.
func Prepend[T any](c *Container[[]T], item T) error {
	return mutate(c, func(items []T) []T {
		result := make([]T, 0, len(items)+1)
		result = append(result, item)
		return append(result, items...)
	})
}

// Remove deletes the first occurrence of item from the held slice and
// re-notifies observers. Observers are notified even when item was not
// found.
func Remove[T comparable](c *Container[[]T], item T) error {
	return mutate(c, func(items []T) []T {
		for i, existing := range items {
			if existing == item {
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
}

// mutate applies fn to the held slice in place and delivers exactly one
// ForceNotify. The value slot is updated directly rather than through Set so
// the mutation itself does not notify.
func mutate[T any](c *Container[[]T], fn func([]T) []T) error {
	c.mu.Lock()
	if !c.present {
		c.mu.Unlock()
		return ErrNoValue
	}
	c.value = fn(c.value)
	c.mu.Unlock()

	c.ForceNotify()
	return nil
}
