package executor

import "reflect"

// selectAny blocks until exactly one of chans has a value ready and
// returns its index and value. The handle count is only known at runtime
// (one per task registered), so reflect.Select is the idiomatic
// unbounded-fan-in primitive; golang.org/x/sync's errgroup does not cover
// "first of N" semantics, only "all of N", so it doesn't fit here.
func selectAny(chans []chan Outcome) (int, Outcome) {
	cases := make([]reflect.SelectCase, len(chans))
	for i, ch := range chans {
		cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)}
	}
	chosen, value, _ := reflect.Select(cases)
	return chosen, value.Interface().(Outcome)
}
