package retry

import "time"

// Policy describes a bounded retry loop: how many attempts to make and how
// long to pause between them. Sleep is injectable so tests can run with no
// real delay.
type Policy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
	Sleep       func(d time.Duration)
}

// Fixed returns a policy with a constant delay between attempts.
func Fixed(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay:       func(int) time.Duration { return delay },
		Sleep:       time.Sleep,
	}
}

// Linear returns a policy whose delay grows with the attempt number
// (attempt * base), a simple backoff for flaky collaborators.
func Linear(maxAttempts int, base time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay:       func(attempt int) time.Duration { return time.Duration(attempt) * base },
		Sleep:       time.Sleep,
	}
}

// None returns a policy that makes maxAttempts attempts with no delay.
// Intended for tests.
func None(maxAttempts int) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay:       func(int) time.Duration { return 0 },
		Sleep:       func(time.Duration) {},
	}
}

// Do runs fn until it returns nil or MaxAttempts is reached, sleeping
// between attempts. The attempt number passed to fn starts at 1. The last
// error is returned when all attempts fail.
func (p Policy) Do(fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt < p.MaxAttempts {
			p.sleep(p.Delay(attempt))
		}
	}
	return err
}

func (p Policy) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}
