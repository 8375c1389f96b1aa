package futures

// Of returns an already produced future. It is the one constructor
// whose reactions run synchronously at registration: there is no
// pending state to protect, so no queue hop happens.
func Of[T any](v T) Future[T] {
	return Future[T]{register: func(h func(T)) {
		h(v)
	}}
}

// Map returns a future producing fn applied to the value of f.
func Map[T, U any](f Future[T], fn func(T) U) Future[U] {
	if fn == nil {
		panic("futures: nil transform")
	}
	return Future[U]{register: func(h func(U)) {
		f.OnComplete(func(v T) {
			h(fn(v))
		})
	}}
}

// FlatMap returns a future producing the value of the future fn
// returns for the value of f.
func FlatMap[T, U any](f Future[T], fn func(T) Future[U]) Future[U] {
	if fn == nil {
		panic("futures: nil transform")
	}
	return Future[U]{register: func(h func(U)) {
		f.OnComplete(func(v T) {
			fn(v).OnComplete(h)
		})
	}}
}

// Apply combines a value future with a function future. The reaction
// chain registers on ff first and on f from within, so whichever side
// produces last triggers the single delivery; either completion order
// yields exactly one invocation.
func Apply[T, U any](f Future[T], ff Future[func(T) U]) Future[U] {
	return Future[U]{register: func(h func(U)) {
		ff.OnComplete(func(fn func(T) U) {
			f.OnComplete(func(v T) {
				h(fn(v))
			})
		})
	}}
}
