package interp

// signal is GLang's execution-signal record, per spec.md §4.E: each
// visit produces a value alongside a signal describing whether it
// wants to return, continue, or break. It is the Go analogue of the
// Rust source's RuntimeResult{should_return, loop_should_continue,
// loop_should_break} — GLang keeps the same three booleans rather than
// folding them into one enum, since a statement sequence must be able
// to ask "do I stop running statements" (any of the three) separately
// from "which one is it" (decided by the nearest handler: Call for
// return, the nearest loop for continue/break).
type signal struct {
	isReturn, isContinue, isBreak bool
}

// stops reports whether the receiver should halt execution of the
// statement sequence it's part of.
func (s signal) stops() bool { return s.isReturn || s.isContinue || s.isBreak }

var noSignal = signal{}

var returnSignal = signal{isReturn: true}
var continueSignal = signal{isContinue: true}
var breakSignal = signal{isBreak: true}
