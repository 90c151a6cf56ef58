package scene

import "github.com/achilleasa/photon-gi/types"

// Material holds the surface response used by the photon random walk. The
// Diffuse, Specular and Refractive colors are per-channel reflectances; the
// walk picks one of them with probability max(power*k)/max(power).
type Material struct {
	Diffuse    types.Color
	Specular   types.Color
	Refractive types.Color

	// Index of refraction (refractive materials only).
	RefractiveIndex float32

	// Phong exponent; only used by shading code.
	SpecularExponent float32

	// Photons are stored on diffuse surfaces.
	IsDiffuse bool

	// Specular (mirror or refractive) surfaces start caustic paths.
	IsSpecular bool

	// Light sources absorb every photon that reaches them.
	IsLight bool
}

// Create a lambertian material.
func NewDiffuseMaterial(color types.Color) *Material {
	return &Material{
		Diffuse:   color,
		IsDiffuse: true,
	}
}

// Create a perfect mirror with the given reflectance.
func NewMirrorMaterial(reflectance types.Color) *Material {
	return &Material{
		Specular:         reflectance,
		SpecularExponent: 1000,
		IsSpecular:       true,
	}
}

// Create a dielectric that refracts with the given transmittance and ior.
func NewGlassMaterial(transmittance types.Color, ior float32) *Material {
	return &Material{
		Refractive:       transmittance,
		RefractiveIndex:  ior,
		SpecularExponent: 1000,
		IsSpecular:       true,
	}
}

// Create an emissive material. The emission color is kept in the diffuse
// slot so that shading code can return it directly.
func NewLightMaterial(emission types.Color) *Material {
	return &Material{
		Diffuse: emission,
		IsLight: true,
	}
}
