package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/interlook/bigconverge/core"
	"github.com/pkg/errors"
)

//go:generate go run gen.go

const (
	flagDescConfig     = "TOML configuration file"
	flagDescVips       = "load balancing endpoints file, overrides the zone lookup"
	flagDescDebug      = "Enable verbose/debug output"
	flagDescKeepGoing  = "run the remaining steps when one fails"
	flagDescDeleteCert = "delete the key and certificate with this name then exit"
	flagDescReport     = "write the run summary as JSON to this file"
	flagDescVersion    = "Display version"
	cmdDescZone        = "converge the appliance with the endpoints of a zone"
	argDescZone        = "zone name, <vipsDir>/<zone>_vips.yml is loaded"
)

func parseCommands(args []string) (core.Options, error) {
	var opts core.Options

	app := kingpin.New("bigconverge", "Converge a BIG-IP LTM with a load balancing endpoints file")
	app.Flag("config", flagDescConfig).Short('c').StringVar(&opts.ConfigFile)
	app.Flag("vips", flagDescVips).StringVar(&opts.VipsFile)
	app.Flag("debug", flagDescDebug).Short('d').BoolVar(&opts.Debug)
	app.Flag("keep-going", flagDescKeepGoing).Short('k').BoolVar(&opts.KeepGoing)
	app.Flag("delete-cert", flagDescDeleteCert).StringVar(&opts.DeleteCert)
	app.Flag("report", flagDescReport).StringVar(&opts.ReportFile)
	app.Version(core.Version).VersionFlag.Short('v')

	zone := app.Command("zone", cmdDescZone)
	zone.Arg("name", argDescZone).Required().StringVar(&opts.Zone)
	// lets --vips and --delete-cert run without a zone
	app.Command("run", "converge the appliance with the --vips file").Default()

	if _, err := app.Parse(args); err != nil {
		return opts, err
	}

	if opts.Zone == "" && opts.VipsFile == "" && opts.DeleteCert == "" {
		return opts, errors.New("a zone, --vips or --delete-cert is required")
	}
	return opts, nil
}

func main() {
	opts, err := parseCommands(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bigconverge: %v, try --help\n", err)
		os.Exit(2)
	}
	os.Exit(core.Start(opts))
}
