package qb

import "reflect"

// sliceToInterfaces converts any slice/array (other than []byte, which is
// treated as a single scalar so a caller passing a blob into In/NotIn gets
// one placeholder rather than exploding into individual bytes) into
// []interface{}. A non-slice value yields an empty slice, matching the
// teacher's WhereIn behavior of treating a scalar passed to IN as empty.
// Adapted from Serajian/go-query-builder's qb.go sliceToInterfaces.
func sliceToInterfaces(v interface{}) []interface{} {
	val := reflect.ValueOf(v)
	k := val.Kind()
	if k != reflect.Slice && k != reflect.Array {
		return nil
	}
	if val.Type().Elem().Kind() == reflect.Uint8 {
		return []interface{}{v}
	}
	out := make([]interface{}, val.Len())
	for i := 0; i < val.Len(); i++ {
		out[i] = val.Index(i).Interface()
	}
	return out
}
