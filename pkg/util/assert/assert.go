package assert

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

// Equal errors if actual is not equal to expected.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()

	if reflect.DeepEqual(expected, actual) || intEqual(expected, actual) {
		return
	}

	t.Errorf("expected: %v, actual: %v", expected, actual)
	report(t, msg)
	t.FailNow()
}

// True errors if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()

	if condition {
		return
	}

	t.Errorf("condition is false")
	report(t, msg)
	t.FailNow()
}

// False errors if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()

	if !condition {
		return
	}

	t.Errorf("condition is true")
	report(t, msg)
	t.FailNow()
}

// Lines compares two multi-line texts line by line, ignoring blank lines and
// trailing whitespace.  On mismatch, the first differing line is reported
// alongside both texts in full.
func Lines(t *testing.T, expected, actual string) {
	t.Helper()

	var (
		exp = nonBlankLines(expected)
		act = nonBlankLines(actual)
	)

	for i := 0; i < max(len(exp), len(act)); i++ {
		var e, a = "<missing>", "<missing>"
		//
		if i < len(exp) {
			e = exp[i]
		}
		//
		if i < len(act) {
			a = act[i]
		}
		//
		if e != a {
			t.Fatalf("line %d: expected %q, actual %q\n--- expected\n%s\n--- actual\n%s",
				i+1, e, a, strings.Join(exp, "\n"), strings.Join(act, "\n"))
		}
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	//
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		//
		if line != "" {
			lines = append(lines, line)
		}
	}
	//
	return lines
}

func report(t *testing.T, msg []any) {
	if len(msg) != 0 {
		t.Errorf("%s", fmt.Sprintf(msg[0].(string), msg[1:]...))
	}
}

// intEqual returns whether expected and actual are both integers and whether they are equal
// if that is the case.
func intEqual(expected, actual any) bool {
	a, aInt64 := asInt64(expected)
	b, bInt64 := asInt64(actual)

	if aInt64 != bInt64 {
		return false
	}

	if aInt64 {
		return a == b
	}

	x, aUint64 := expected.(uint64)
	y, bUint64 := actual.(uint64)

	if !aUint64 || !bUint64 {
		return false
	}

	return x == y
}

// asInt64 tries to convert x to an int64 and specifies if the conversion was successful or
// if x only can be expressed as a uint64
func asInt64(x any) (int64, bool) {
	if y, ok := x.(uint64); ok && y > math.MaxInt64 {
		return 0, false
	}

	switch x := x.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}

	return 0, false
}
