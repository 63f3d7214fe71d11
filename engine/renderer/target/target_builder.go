package target

// PoolBuilderOption is a functional option applied to a Pool during construction via NewPool.
type PoolBuilderOption func(*Pool)

// WithGeneralDivisor sets the screen size divisor of the 15 general targets.
//
// Parameters:
//   - d: the divisor, 4 by default
//
// Returns:
//   - PoolBuilderOption: a function that applies the divisor option to a pool
func WithGeneralDivisor(d int) PoolBuilderOption {
	return func(p *Pool) {
		p.generalDivisor = d
	}
}

// WithPostDivisors sets the screen size divisors of the post-process targets.
// Post1 and Post2 use small, Post3 and Post4 use large.
//
// Parameters:
//   - small: the divisor of the low resolution pair, 8 by default
//   - large: the divisor of the high resolution pair, 2 by default
//
// Returns:
//   - PoolBuilderOption: a function that applies the divisors option to a pool
func WithPostDivisors(small, large int) PoolBuilderOption {
	return func(p *Pool) {
		p.postSmallDivisor = small
		p.postLargeDivisor = large
	}
}

// WithExhaustionPolicy sets what FindFree does when no target is free.
//
// Parameters:
//   - policy: PolicyReuse or PolicyFail
//
// Returns:
//   - PoolBuilderOption: a function that applies the policy option to a pool
func WithExhaustionPolicy(policy ExhaustionPolicy) PoolBuilderOption {
	return func(p *Pool) {
		p.policy = policy
	}
}
