package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/achilleasa/photon-gi/photon"
	"github.com/achilleasa/photon-gi/scene"
	"github.com/achilleasa/photon-gi/tracer"
	"github.com/achilleasa/photon-gi/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Archive entry names for the photon maps.
const (
	globalMapName  = "global"
	causticMapName = "caustic"
)

// A surface point where irradiance is sampled after tracing.
type probe struct {
	name   string
	point  types.Vec3
	normal types.Vec3
}

var cornellProbes = []probe{
	{"floor center", types.XYZ(0, -scene.CornellHalfSize, 0), types.XYZ(0, 1, 0)},
	{"floor by glass ball", types.XYZ(20, -scene.CornellHalfSize, 35), types.XYZ(0, 1, 0)},
	{"floor by mirror ball", types.XYZ(-20, -scene.CornellHalfSize, 10), types.XYZ(0, 1, 0)},
	{"back wall", types.XYZ(0, 0, -scene.CornellHalfSize), types.XYZ(0, 0, 1)},
	{"left wall", types.XYZ(-scene.CornellHalfSize, 0, 0), types.XYZ(1, 0, 0)},
	{"right wall", types.XYZ(scene.CornellHalfSize, 0, 0), types.XYZ(-1, 0, 0)},
	{"ceiling corner", types.XYZ(40, scene.CornellHalfSize, 40), types.XYZ(0, -1, 0)},
}

// Build the photon maps for the cornell box and sample irradiance at a set of
// probe points.
func Trace(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts := tracer.DefaultOptions()
	opts.Seed = ctx.Int64("seed")
	opts.BatchSize = ctx.Int("batch")
	opts.StoreDirectHits = !ctx.Bool("skip-direct")
	if workers := ctx.Int("workers"); workers > 0 {
		opts.Workers = workers
	}
	opts.Progress = func(pass tracer.Pass, percent int) {
		logger.Infof("emitting %s photons: %d%%", pass, percent)
	}

	if fraction := ctx.Float64("mem-fraction"); fraction > 0 {
		ceiling, _, err := photonCeiling(fraction)
		if err != nil {
			logger.Warningf("could not query available memory; photon maps are unbounded: %s", err.Error())
		} else {
			opts.MaxStoredPhotons = ceiling
			logger.Infof("limiting photon maps to %d photons", ceiling)
		}
	}

	sc := scene.NewCornellBox()
	pl, err := tracer.NewPhotonLight(sc, tracer.NewCornellLight(), opts)
	if err != nil {
		return err
	}

	if archive := ctx.String("load"); archive != "" {
		maps, err := photon.ReadArchive(archive)
		if err != nil {
			return err
		}
		pl.LoadMaps(maps[globalMapName], maps[causticMapName])
		logger.Noticef("loaded photon maps from %s", archive)
	} else {
		start := time.Now()
		if err = pl.TraceFromLight(ctx.Int("photons"), ctx.Int("caustics")); err != nil {
			return err
		}
		logger.Noticef("built photon maps in %d ms", time.Since(start).Nanoseconds()/1e6)
	}
	displayPassStats(pl.Stats())

	if archive := ctx.String("save"); archive != "" {
		err = photon.WriteArchive(archive, map[string]*photon.BalancedMap{
			globalMapName:  pl.GlobalMap(),
			causticMapName: pl.CausticMap(),
		})
		if err != nil {
			return err
		}
		logger.Noticef("saved photon maps to %s", archive)
	}

	displayProbes(sc, pl)
	return nil
}

func displayPassStats(stats tracer.Stats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Requested", "Emitted", "Attempts", "Stored", "Dropped", "Absorbed", "Escaped", "Bounces", "Time"})
	for _, stat := range []tracer.PassStats{stats.Global, stats.Caustic} {
		table.Append([]string{
			stat.Pass.String(),
			fmt.Sprintf("%d", stat.Requested),
			fmt.Sprintf("%d", stat.Emitted),
			fmt.Sprintf("%d", stat.Attempts),
			fmt.Sprintf("%d", stat.Stored),
			fmt.Sprintf("%d", stat.Dropped),
			fmt.Sprintf("%d", stat.Absorbed),
			fmt.Sprintf("%d", stat.Escaped),
			fmt.Sprintf("%d", stat.Bounces),
			stat.Duration.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "TOTAL", (stats.Global.Duration + stats.Caustic.Duration).String()})

	table.Render()
	logger.Noticef("photon map statistics\n%s", buf.String())
}

func displayProbes(sc scene.Intersector, pl *tracer.PhotonLight) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Probe", "Indirect", "Caustic", "Final gather", "Cached"})
	for _, p := range cornellProbes {
		// Shoot a ray at the probe point to pick up its material.
		hit := sc.Intersect(scene.Ray{Origin: p.point.Add(p.normal), Dir: p.normal.Neg()})
		if !hit.Hit {
			logger.Warningf("probe %q does not lie on a surface", p.name)
			continue
		}
		hit.Normal = p.normal

		gi, cached := pl.GlobalIllumination(hit, nil)
		table.Append([]string{
			p.name,
			formatColor(pl.IndirectIrradiance(hit)),
			formatColor(pl.CausticIrradiance(hit)),
			formatColor(gi),
			fmt.Sprintf("%t", cached),
		})
	}
	table.SetFooter([]string{"", "", "", "CACHE SAMPLES", fmt.Sprintf("%d", pl.Cache().Len())})

	table.Render()
	logger.Noticef("irradiance probes\n%s", buf.String())
}

func formatColor(c types.Color) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", c[0], c[1], c[2])
}
