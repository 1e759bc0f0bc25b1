// Command flightmap renders a flight log from the command line.
//
//	flightmap -log data/my_flight_log.csv -format summary
//	flightmap -url https://example.com/log.csv -format geojson -n 50 > routes.geojson
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/config"
	"github.com/xyaoaf/flight-route-map/pkg/buildinfo"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
	"github.com/xyaoaf/flight-route-map/render"
	"github.com/xyaoaf/flight-route-map/routes"
	"github.com/xyaoaf/flight-route-map/stats"
)

type options struct {
	logPath string
	url     string
	format  string
	n       int
	scale   bool
	top     int
	timeout time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.logPath, "log", "data/my_flight_log.csv", "flight log CSV with origin and destination columns")
	flag.StringVar(&opts.url, "url", "", "fetch the flight log from this URL instead of -log")
	flag.StringVar(&opts.format, "format", "summary", "output format: json, geojson or summary")
	flag.IntVar(&opts.n, "n", 100, "intermediate points per arc (0 draws straight segments)")
	flag.BoolVar(&opts.scale, "scale", true, "scale line width and opacity by traversal count")
	flag.IntVar(&opts.top, "top", 10, "airports listed in the summary")
	flag.DurationVar(&opts.timeout, "timeout", 15*time.Second, "timeout for -url downloads")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	logger.Init(logger.Config{Level: "warn", Format: "text", Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "flightmap: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.n < 0 || opts.n > config.MaxArcPoints {
		return fmt.Errorf("-n must be between 0 and %d", config.MaxArcPoints)
	}

	rs, err := load(ctx, opts)
	if err != nil {
		return err
	}
	table := airports.Default()

	switch strings.ToLower(opts.format) {
	case "summary":
		return writeSummary(out, rs, table, opts.top)
	case "json", "geojson":
		m, err := render.Build(ctx, rs, table, render.Options{ArcPoints: render.ExplicitArcPoints(opts.n), ScaleWidth: opts.scale})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		if strings.EqualFold(opts.format, "geojson") {
			return enc.Encode(m.FeatureCollection())
		}
		return enc.Encode(m)
	default:
		return fmt.Errorf("unknown format %q (want json, geojson or summary)", opts.format)
	}
}

func load(ctx context.Context, opts options) ([]routes.Route, error) {
	if opts.url != "" {
		return routes.NewFetcher(opts.timeout).Load(ctx, opts.url)
	}
	f, err := os.Open(opts.logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Flight log not found, rendering an empty map", "path", opts.logPath)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return routes.ParseCSV(f)
}

func writeSummary(out io.Writer, rs []routes.Route, table *airports.Table, top int) error {
	s := stats.Compute(rs, table)
	f := stats.Format(s)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Flights\t%s\n", stats.FormatNumber(float64(s.Flights)))
	fmt.Fprintf(tw, "Airports\t%s\n", stats.FormatNumber(float64(s.Airports)))
	fmt.Fprintf(tw, "Regions\t%d\t%s\n", s.RegionCount, strings.Join(s.Regions, ", "))
	fmt.Fprintf(tw, "Total distance\t%s\n", f.TotalDistance)
	fmt.Fprintf(tw, "Around the Earth\t%s\n", f.EarthCircumferences)
	fmt.Fprintf(tw, "Way to the Moon\t%s\n", f.WayToMoon)
	fmt.Fprintf(tw, "Hours in the air\t%s\n", f.HoursInAir)
	fmt.Fprintf(tw, "CO₂\t%s\n", f.CO2)
	if len(s.Missing) > 0 {
		fmt.Fprintf(tw, "Not on the map\t%s\n", strings.Join(s.Missing, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ranked := s.TopAirports(table, top)
	if len(ranked) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nMost visited")
	for i, a := range ranked {
		fmt.Fprintf(tw, "%2d.\t%s\t%d\n", i+1, a.Label, a.Visits)
	}
	return tw.Flush()
}
