package coding

import "time"

// Zone codes *time.Location values by interning their zone names.
//
// Decoding reloads the location via time.LoadLocation, so only zone names
// resolvable from the local zoneinfo database round-trip. Like String,
// codes are process-local; persistence writes zone names.
var Zone IntCoding = zoneCoding{table: newInternTable()}

type zoneCoding struct {
	table *internTable
}

func (c zoneCoding) Code(v any) int32 {
	if v == nil {
		return NullInt32
	}
	loc, ok := v.(*time.Location)
	if !ok || loc == nil {
		panic(encodeErr("zone", v))
	}
	return c.table.code(loc.String())
}

func (c zoneCoding) Value(code int32) any {
	if code == NullInt32 {
		return nil
	}
	name, ok := c.table.name(code)
	if !ok {
		return nil
	}
	switch name {
	case "UTC", "":
		return time.UTC
	case "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(encodeErr("zone", name))
	}
	return loc
}

func (zoneCoding) Ordered() bool { return false }
