package metadata

import (
	"fmt"
	"strconv"
)

// condition matches a key against a set of canonicalized values.
type condition struct {
	key    string
	values []string
}

// Filter is a conjunction of equality conditions over metadata records.
// A nil Filter matches everything.
type Filter struct {
	conds []condition
}

// Eq creates a filter requiring key to equal value.
func Eq(key string, value any) *Filter {
	return In(key, value)
}

// In creates a filter requiring key to equal one of values.
func In(key string, values ...any) *Filter {
	canon := make([]string, len(values))
	for i, v := range values {
		canon[i] = canonicalize(v)
	}
	return &Filter{conds: []condition{{key: key, values: canon}}}
}

// AndEq adds a further condition requiring key to equal value.
func (f *Filter) AndEq(key string, value any) *Filter {
	return f.AndIn(key, value)
}

// AndIn adds a further condition requiring key to equal one of values.
func (f *Filter) AndIn(key string, values ...any) *Filter {
	other := In(key, values...)
	f.conds = append(f.conds, other.conds...)
	return f
}

// Matches reports whether md satisfies every condition.
func (f *Filter) Matches(md Metadata) bool {
	if f == nil {
		return true
	}
	for _, c := range f.conds {
		v, ok := md[c.key]
		if !ok {
			return false
		}
		canon := canonicalize(v)
		found := false
		for _, want := range c.values {
			if canon == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// canonicalize maps a scalar value to the string key used in posting lists.
// Numeric types collapse to one representation so that int(5), int64(5) and
// float64(5) all produce the same key.
func canonicalize(v any) string {
	switch x := v.(type) {
	case nil:
		return "\x00nil"
	case string:
		return "s:" + x
	case bool:
		return "b:" + strconv.FormatBool(x)
	case int:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case int32:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case int64:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case uint:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case uint64:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case float32:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case float64:
		return "n:" + strconv.FormatFloat(x, 'g', -1, 64)
	default:
		// Non-scalar values are not indexed for filtering; give them a
		// representation anyway so Matches stays total.
		return fmt.Sprintf("x:%v", x)
	}
}
