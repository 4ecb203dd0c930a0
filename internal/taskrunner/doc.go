// Package taskrunner runs independent units of work concurrently and joins
// their results in submission order.
//
// A unit of work is a plain function returning a value and an error. Units
// are handed to Submit, which produces a Handle, and RunAndJoin starts every
// unit and blocks until all of them have finished:
//
//	h, err := taskrunner.Submit([]taskrunner.WorkUnit[int]{a, b, c})
//	if err != nil {
//	    return err
//	}
//	values, err := taskrunner.RunAndJoin(runner, h)
//
// # Ordering
//
// values[i] always belongs to units[i], whatever order the units complete in.
// Nothing is observable before RunAndJoin returns.
//
// # Failures
//
// A unit that returns an error or panics is recorded as a WorkerFailureError
// carrying its submission index. RunAndJoin still waits for every sibling,
// then returns all failures joined together and no values. The per-unit
// outcomes, including the successful ones, stay readable through
// Handle.Outcomes.
//
// # Scheduling
//
// By default every unit gets its own goroutine. WithLimit caps the number of
// units running at once without changing how callers submit or join. There is
// no cancellation: once started, a unit runs to completion.
package taskrunner
