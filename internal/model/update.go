package model

// An Update describes the change of one field in a partial update:
// either the field is left unchanged or it is set to a value.
type Update[T any] struct {
	set   bool
	value T
}

// Unchanged returns an Update that keeps the previous value.
func Unchanged[T any]() Update[T] {
	return Update[T]{}
}

// SetTo returns an Update that replaces the previous value by v.
func SetTo[T any](v T) Update[T] {
	return Update[T]{set: true, value: v}
}

// SetToPtr returns SetTo(*v) when v is not nil, Unchanged otherwise.
func SetToPtr[T any](v *T) Update[T] {
	if v == nil {
		return Unchanged[T]()
	}
	return SetTo(*v)
}

// Get returns the new value and true if the field is set.
func (u Update[T]) Get() (T, bool) {
	return u.value, u.set
}

// IsSet returns true if the field is set.
func (u Update[T]) IsSet() bool {
	return u.set
}

// Apply returns the new value if set, prev otherwise.
func (u Update[T]) Apply(prev T) T {
	if u.set {
		return u.value
	}
	return prev
}

// Ptr returns a pointer to the new value, or nil when unchanged.
func (u Update[T]) Ptr() *T {
	if !u.set {
		return nil
	}
	v := u.value
	return &v
}
