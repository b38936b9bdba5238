package coding

// String codes strings through a process-wide intern table.
//
// Codes reflect arrival order, not lexicographic order, so they are only
// meaningful within the current process. Persisting string-coded arrays
// writes the decoded strings, never the codes.
var String IntCoding = stringCoding{table: newInternTable()}

type stringCoding struct {
	table *internTable
}

func (c stringCoding) Code(v any) int32 {
	if v == nil {
		return NullInt32
	}
	s, ok := v.(string)
	if !ok {
		panic(encodeErr("string", v))
	}
	return c.table.code(s)
}

func (c stringCoding) Value(code int32) any {
	if code == NullInt32 {
		return nil
	}
	s, ok := c.table.name(code)
	if !ok {
		return nil
	}
	return s
}

func (stringCoding) Ordered() bool { return false }
