// Package types provides the float32 vector, matrix and colour math shared by
// the photon map, the irradiance cache and the photon tracer.
package types

// Values whose magnitude is below this threshold are treated as zero.
const floatCmpEpsilon float32 = 1e-7

// Axis selects one of the three vector components.
type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Return the axis name.
func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	}
	return "?"
}
