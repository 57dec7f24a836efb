package reval

// Combine returns a container recomputed from two sources whenever either
// one changes. On a notification from either side, fn is applied to the
// triggering side's fresh value and the other side's last known value.
//
// Unless the EmitAbsent option is given, recomputation is skipped while
// either source is absent; with EmitAbsent, an absent side contributes its
// zero value.
//
// The two subscriptions are independent: updating both sources produces two
// recomputations, one per write, not a single joint one. Callers that need
// an atomic joint update must sequence their writes deliberately.
func Combine[A, B, C any](first *Container[A], second *Container[B], fn func(A, B) C, opts ...Option) *Container[C] {
	cfg := applyOptions(opts)
	combined := New[C]()

	recompute := func() {
		a, aok := first.Get()
		b, bok := second.Get()
		if (!aok || !bok) && !cfg.emitAbsent {
			return
		}
		combined.Set(fn(a, b))
	}

	first.Observe(func(A, bool) { recompute() })
	second.Observe(func(B, bool) { recompute() })

	return combined
}
