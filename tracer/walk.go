package tracer

import (
	"github.com/achilleasa/photon-gi/scene"
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// The outcome of a russian roulette step.
type event uint8

const (
	absorbed event = iota
	diffuseReflection
	specularReflection
	refraction
)

// Choose what happens to a photon with the given power when it reaches hit.
// Each surface response k is selected with probability max(power*k)/max(power)
// and the surviving photon carries power*k/P so that the estimate stays
// unbiased. A photon with no power is absorbed. When allowDiffuse is false
// the diffuse response is skipped (caustic paths).
func scatter(s Sampler, ray scene.Ray, hit scene.Intersection, power types.Color, allowDiffuse bool) (scene.Ray, types.Color, event) {
	mat := hit.Material
	maxPower := power.Max()
	if mat == nil || mat.IsLight || maxPower <= 0 {
		return ray, types.Color{}, absorbed
	}

	ran := s.Get1D()

	if allowDiffuse {
		c := power.Mul(mat.Diffuse)
		p := c.Max() / maxPower
		if ran < p {
			normal := hit.Normal
			if ray.Dir.Dot(normal) > 0 {
				normal = normal.Neg()
			}
			return scene.Ray{Origin: hit.Point, Dir: sampleCosineHemisphere(normal, s.Get2D())}, c.Scale(1 / p), diffuseReflection
		}
		ran -= p
	}

	c := power.Mul(mat.Specular)
	p := c.Max() / maxPower
	if ran < p {
		return scene.Ray{Origin: hit.Point, Dir: ray.Dir.Reflect(hit.Normal)}, c.Scale(1 / p), specularReflection
	}
	ran -= p

	c = power.Mul(mat.Refractive)
	p = c.Max() / maxPower
	if ran < p {
		return scene.Ray{Origin: hit.Point, Dir: refract(ray.Dir, hit.Normal, mat.RefractiveIndex)}, c.Scale(1 / p), refraction
	}

	return ray, types.Color{}, absorbed
}

// Refract the unit direction dir through a surface with the given normal and
// index of refraction. The normal may face either side; rays leaving the
// medium use the inverse ratio. Total internal reflection yields the mirror
// direction.
func refract(dir, normal types.Vec3, ior float32) types.Vec3 {
	if ior <= 0 {
		ior = 1
	}

	eta := 1 / ior
	if dir.Dot(normal) >= 0 {
		normal = normal.Neg()
		eta = ior
	}

	cosI := normal.Dot(dir)
	sinT2 := eta * eta * (1 - cosI*cosI)
	if sinT2 >= 1 {
		return dir.Reflect(normal)
	}

	return dir.Mul(eta).Sub(normal.Mul(eta*cosI + math32.Sqrt(1-sinT2))).Normalize()
}

// Trace a global illumination photon. Photons are stored at every diffuse
// surface they reach. Returns false when the emitted ray left the scene
// without hitting anything; such photons are not counted as emitted.
func (w *worker) traceGlobalPhoton() bool {
	ray := w.light.Emit(w.sampler, false)
	power := w.light.Power()
	minPower := power.Max() * w.opts.MinPowerRatio

	for bounce := 0; bounce < w.opts.MaxBounces; bounce++ {
		if power.Max() <= minPower {
			return true
		}

		hit := w.sc.Intersect(ray)
		if !hit.Hit {
			if bounce == 0 {
				w.stats.Retries++
				return false
			}
			w.stats.Escaped++
			return true
		}
		w.stats.Bounces++

		if hit.Material != nil && hit.Material.IsDiffuse && (bounce > 0 || w.opts.StoreDirectHits) {
			w.store.Store(power, hit.Point, ray.Dir)
		}

		var ev event
		if ray, power, ev = scatter(w.sampler, ray, hit, power, true); ev == absorbed {
			w.stats.Absorbed++
			return true
		}
	}
	return true
}

// Trace a caustic photon. Only photons whose first hit is a specular surface
// are followed; they are stored when they reach a diffuse surface after one
// or more specular bounces. Returns true if the path completed by being
// stored or absorbed.
func (w *worker) traceCausticPhoton() bool {
	ray := w.light.Emit(w.sampler, true)
	power := w.light.Power()

	hit := w.sc.Intersect(ray)
	if !hit.Hit || hit.Material == nil || !hit.Material.IsSpecular {
		return false
	}

	for bounce := 0; bounce < w.opts.MaxBounces; bounce++ {
		w.stats.Bounces++

		var ev event
		if ray, power, ev = scatter(w.sampler, ray, hit, power, false); ev == absorbed {
			w.stats.Absorbed++
			return true
		}

		if hit = w.sc.Intersect(ray); !hit.Hit {
			w.stats.Escaped++
			return false
		}

		if hit.Material != nil && hit.Material.IsDiffuse {
			w.store.Store(power, hit.Point, ray.Dir)
			return true
		}
	}

	// Paths trapped between specular surfaces are treated as absorbed.
	w.stats.Absorbed++
	return true
}
