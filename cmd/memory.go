package cmd

import (
	"unsafe"

	"github.com/achilleasa/photon-gi/photon"
	"github.com/shirou/gopsutil/mem"
)

// Stores double their capacity when full and the merge step holds the worker
// stores and the merged store at the same time.
const photonStorageOverhead = 3

// Derive a photon store ceiling so that the photon maps use at most fraction
// of the currently available memory.
func photonCeiling(fraction float64) (int, *mem.VirtualMemoryStat, error) {
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return 0, nil, err
	}

	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}

	perPhoton := uint64(unsafe.Sizeof(photon.Photon{})) * photonStorageOverhead
	ceiling := uint64(float64(memInfo.Available)*fraction) / perPhoton
	if maxInt := uint64(^uint(0) >> 1); ceiling > maxInt {
		ceiling = maxInt
	}
	return int(ceiling), memInfo, nil
}
