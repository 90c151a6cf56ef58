package types

// An RGB triplet used for photon power, irradiance and material reflectance.
type Color Vec3

// Define a colour.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// Add a colour.
func (c Color) Add(c2 Color) Color {
	return Color{c[0] + c2[0], c[1] + c2[1], c[2] + c2[2]}
}

// Component-wise multiplication.
func (c Color) Mul(c2 Color) Color {
	return Color{c[0] * c2[0], c[1] * c2[1], c[2] * c2[2]}
}

// Multiply with a scalar.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Return the largest channel.
func (c Color) Max() float32 {
	m := c[0]
	if c[1] > m {
		m = c[1]
	}
	if c[2] > m {
		m = c[2]
	}
	return m
}

// Check whether all channels are zero.
func (c Color) IsBlack() bool {
	return c[0] == 0 && c[1] == 0 && c[2] == 0
}
