package tracer

import (
	"github.com/achilleasa/photon-gi/scene"
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// ShadeFunc returns the radiance leaving hit towards the origin of ray.
type ShadeFunc func(ray scene.Ray, hit scene.Intersection) types.Color

// Estimate the indirect irradiance arriving at hit. The irradiance cache is
// consulted first. On a miss the hemisphere around hit.Normal is sampled with
// StratificationN x StratificationM jittered, cosine-weighted rays which are
// shaded with shade (GatherShade when nil). The estimate is added to the
// cache only when every sample ray hit a surface; its validity radius is
// 1/sum(1/d) over the hit distances d, which the cache clamps to its minimum
// spacing for typical sample counts.
//
// hit.Normal must face the side the irradiance is requested for. The second
// return value reports whether the result came from the cache.
func (pl *PhotonLight) GlobalIllumination(hit scene.Intersection, shade ShadeFunc) (types.Color, bool) {
	if !hit.Hit {
		return types.Color{}, false
	}

	normal := hit.Normal.Normalize()
	if irr, found := pl.cache.Query(hit.Point, normal); found {
		return irr, true
	}

	if shade == nil {
		shade = pl.GatherShade
	}

	s := pl.samplers.Get().(Sampler)
	defer pl.samplers.Put(s)

	var (
		n, m     = pl.opts.StratificationN, pl.opts.StratificationM
		basis    = types.OrthonormalBasis(normal)
		sum      types.Color
		invDist  float32
		hitCount int
	)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			u := s.Get2D()
			sinPhi, cosPhi := math32.Sincos(2 * math32.Pi * (float32(i) + u[0]) / float32(n))
			cosTheta := math32.Sqrt(1 - (float32(j)+u[1])/float32(m))
			sinTheta := math32.Sqrt(1 - cosTheta*cosTheta)

			ray := scene.Ray{
				Origin: hit.Point,
				Dir:    basis.Mul3x1(types.XYZ(cosPhi*sinTheta, sinPhi*sinTheta, cosTheta)).Normalize(),
			}
			sampleHit := pl.sc.Intersect(ray)
			if !sampleHit.Hit {
				continue
			}

			sum = sum.Add(shade(ray, sampleHit))
			invDist += 1 / sampleHit.Distance
			hitCount++
		}
	}

	if hitCount == 0 {
		return types.Color{}, false
	}

	irr := sum.Scale(1 / float32(hitCount))
	if hitCount == n*m && invDist > 0 {
		pl.cache.Insert(hit.Point, normal, 1/invDist, irr)
	}
	return irr, false
}

// Estimate the irradiance at hit from the caustic photon map.
func (pl *PhotonLight) CausticIrradiance(hit scene.Intersection) types.Color {
	if !hit.Hit {
		return types.Color{}
	}
	return pl.CausticMap().IrradianceEstimate(hit.Point, hit.Normal.Normalize(), pl.opts.CausticMaxDistance, pl.opts.CausticMaxPhotons)
}

// Estimate the irradiance at hit from the global photon map.
func (pl *PhotonLight) IndirectIrradiance(hit scene.Intersection) types.Color {
	if !hit.Hit {
		return types.Color{}
	}
	return pl.GlobalMap().IrradianceEstimate(hit.Point, hit.Normal.Normalize(), pl.opts.IndirectMaxDistance, pl.opts.IndirectMaxPhotons)
}

// Shade a hit by reading the global photon map directly: lights return their
// emission and other surfaces return the photon map irradiance filtered by
// their diffuse color.
func (pl *PhotonLight) GatherShade(ray scene.Ray, hit scene.Intersection) types.Color {
	mat := hit.Material
	if mat == nil {
		return types.Color{}
	}
	if mat.IsLight {
		return mat.Diffuse
	}

	// Photons are stored with their incoming direction so the normal used
	// for the estimate must face the incoming ray.
	if ray.Dir.Dot(hit.Normal) > 0 {
		hit.Normal = hit.Normal.Neg()
	}
	return pl.IndirectIrradiance(hit).Mul(mat.Diffuse)
}
