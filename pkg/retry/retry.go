// Package retry runs actions until they succeed or a set of strategies gives
// up on them.
package retry

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	// Retry runs action until it succeeds or a strategy stops it, and returns
	// the number of attempts made along with the last error.
	Retry(action Action) (uint, error)
}

type retrier []Strategy

// NewRetrier returns a Retrier bound to the provided strategies. Without
// strategies it retries in a tight loop until the action succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return retrier(strategies)
}

func (r retrier) Retry(action Action) (uint, error) {
	return Retry(action, r...)
}

// Retry executes action until it succeeds or one of the strategies declines a
// further attempt.
//
// Strategies run in order and evaluation stops at the first one that
// declines, so strategies that sleep belong last.
func Retry(action Action, strategies ...Strategy) (attempts uint, err error) {
	for attempts = 1; ; attempts++ {
		if err = action(); err == nil {
			return attempts, nil
		}
		if !shouldRetry(strategies, attempts, err) {
			return attempts, err
		}
	}
}

func shouldRetry(strategies []Strategy, attempts uint, err error) bool {
	for _, s := range strategies {
		if !s(attempts, err) {
			return false
		}
	}
	return true
}
