package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/urfave/cli"
)

// Display the host resources that bound photon map sizes.
func SysInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	ceiling, memInfo, err := photonCeiling(ctx.Float64("mem-fraction"))
	if err != nil {
		return err
	}

	cpuModel := "unknown"
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) != 0 {
		cpuModel = fmt.Sprintf("%s (%.1f GHz)", cpuInfo[0].ModelName, cpuInfo[0].Mhz/1000)
	} else if err != nil {
		logger.Warningf("could not query cpu info: %s", err.Error())
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resource", "Value"})
	table.Append([]string{"CPU", cpuModel})
	table.Append([]string{"Logical cores", fmt.Sprintf("%d", runtime.NumCPU())})
	table.Append([]string{"Total memory", fmt.Sprintf("%d MiB", memInfo.Total>>20)})
	table.Append([]string{"Available memory", fmt.Sprintf("%d MiB", memInfo.Available>>20)})
	table.Append([]string{"Photon ceiling", fmt.Sprintf("%d", ceiling)})
	table.Render()

	logger.Noticef("system info\n%s", buf.String())
	return nil
}
