package board

import "fmt"

// debugAssertions gates internal invariant checks that are too expensive, or
// too redundant with the type system, to run unconditionally. Release
// builds may flip this off; doing so must never introduce undefined
// behavior, only skip the early, more specific panic.
const debugAssertions = true

func assertf(cond bool, format string, args ...interface{}) {
	if debugAssertions && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
