// README: Common geographic value types shared across modules.
package types

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point carries real coordinates.
// (0, 0) in either axis is the "unresolved" sentinel used by place resolution.
func (p Point) Valid() bool {
	return p.Lat != 0 && p.Lng != 0
}
