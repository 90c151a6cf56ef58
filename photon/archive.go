package photon

import (
	"archive/zip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/photon-gi/log"
	"github.com/achilleasa/photon-gi/types"
)

var (
	ErrCorruptArchive = errors.New("photon: corrupt photon map archive")
)

// The gob-encoded form of a balanced map.
type archivedMap struct {
	Photons    []Photon
	HalfStored int
	BBox       [2]types.Vec3
}

// Write a set of named balanced maps to a zip archive. Each map is stored as
// a separate gob-encoded entry.
func WriteArchive(filename string, maps map[string]*BalancedMap) error {
	logger := log.New("photon archive")
	logger.Infof("writing %d photon maps to %s", len(maps), filename)
	start := time.Now()

	zipFile, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	for name, m := range maps {
		if m == nil {
			continue
		}

		cw, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return err
		}

		err = gob.NewEncoder(cw).Encode(archivedMap{
			Photons:    m.photons[:m.count+1],
			HalfStored: m.halfStored,
			BBox:       m.bbox,
		})
		if err != nil {
			zw.Close()
			return err
		}
	}

	if err = zw.Close(); err != nil {
		return err
	}

	logger.Infof("wrote photon maps in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Read all balanced maps from a zip archive created by WriteArchive.
func ReadArchive(filename string) (map[string]*BalancedMap, error) {
	logger := log.New("photon archive")
	logger.Infof("reading photon maps from %s", filename)
	start := time.Now()

	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	maps := make(map[string]*BalancedMap, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}

		var am archivedMap
		err = gob.NewDecoder(rc).Decode(&am)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("photon: could not decode map %q: %s", f.Name, err.Error())
		}

		// Index 0 is always present
		count := len(am.Photons) - 1
		if count < 0 || am.HalfStored != count/2-1 {
			return nil, ErrCorruptArchive
		}
		for _, p := range am.Photons {
			if p.Plane > types.ZAxis {
				return nil, ErrCorruptArchive
			}
		}

		maps[f.Name] = &BalancedMap{
			photons:    am.Photons,
			count:      count,
			halfStored: am.HalfStored,
			bbox:       am.BBox,
		}
	}

	logger.Infof("read %d photon maps in %d ms", len(maps), time.Since(start).Nanoseconds()/1e6)
	return maps, nil
}
