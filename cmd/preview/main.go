package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajsalasa/AirNavKML/internal/altitude"
	"github.com/ajsalasa/AirNavKML/internal/data"
	"github.com/ajsalasa/AirNavKML/internal/render"
	"github.com/ajsalasa/AirNavKML/internal/route"
	"github.com/flopp/go-coordsparser"
	sm "github.com/flopp/go-staticmaps"
	"github.com/labstack/gommon/log"
)

const (
	usage = `USAGE: %s [OPTIONS...]
Render airway routes from a CSV file to map images.

OPTIONS:
`
)

type Options struct {
	RoutesCsv string
	Route     string
	OutDir    string
	Tiles     string
	Center    string
	Zoom      int
	GroupCol  string
	OrderCol  string
}

func parseCommandLine() Options {
	routes := flag.String("routes", "", "CSV file with airway vertices")
	route_name := flag.String("route", "", "name of the route to render (empty: render all)")
	out := flag.String("out", "render", "output directory")
	tiles := flag.String("tiles", "osm", "tile provider: osm | aerial")
	center := flag.String("center", "", "force map center, e.g. '9.93, -84.08'")
	zoom := flag.Int("zoom", 7, "zoom level used with -center")
	group_col := flag.String("group-col", "Aerovia", "route grouping column")
	order_col := flag.String("order-col", "Sec", "vertex order column")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(flag.Args()) != 0 || *routes == "" {
		fmt.Println("ERROR: invalid command line")
		flag.Usage()
		os.Exit(1)
	}

	return Options{*routes, *route_name, *out, *tiles, *center, *zoom, *group_col, *order_col}
}

func drawRoute(r *route.Route, tiles *sm.TileProvider, options Options) error {
	var img []byte
	var err error
	if options.Center != "" {
		lat, lon, perr := coordsparser.Parse(options.Center)
		if perr != nil {
			return fmt.Errorf("cannot parse center '%s': %w", options.Center, perr)
		}
		img, err = render.DrawCentered(r, tiles, lat, lon, options.Zoom)
	} else {
		img, err = render.DrawRoute(r, tiles)
	}
	if err != nil {
		return err
	}

	name := data.SanitizeName(r.Name)
	if name == "" {
		name = "route"
	}
	path := filepath.Join(options.OutDir, fmt.Sprintf("%s.jpg", name))
	return os.WriteFile(path, img, 0o644)
}

func main() {
	options := parseCommandLine()

	routes, err := route.LoadRoutes(options.RoutesCsv, options.GroupCol, options.OrderCol, altitude.Feet)
	if err != nil {
		log.Fatalf("failed to load routes: %v", err)
	}
	log.Printf("loaded %d routes from %s", len(routes), options.RoutesCsv)

	tiles := sm.NewTileProviderOpenStreetMaps()
	if options.Tiles == "aerial" {
		tiles = sm.NewTileProviderArcgisWorldImagery()
	}

	if err := os.MkdirAll(options.OutDir, 0o755); err != nil {
		log.Fatalf("cannot create output dir: %v", err)
	}

	rendered := 0
	for _, r := range routes {
		if options.Route != "" && r.Name != options.Route {
			continue
		}
		if !route.IsFlyable(r) {
			log.Warnf("skipping route '%s': not enough positioned points or broken legs", r.Name)
			continue
		}
		if err := drawRoute(r, tiles, options); err != nil {
			log.Fatalf("cannot draw route '%s': %v", r.Name, err)
		}
		rendered++
	}

	if options.Route != "" && rendered == 0 {
		log.Fatalf("cannot find route '%s' in %s", options.Route, options.RoutesCsv)
	}
	log.Printf("rendered %d routes to %s", rendered, options.OutDir)
}
