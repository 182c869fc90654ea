package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ajsalasa/AirNavKML/internal/altitude"
	"github.com/ajsalasa/AirNavKML/internal/geojson"
	"github.com/ajsalasa/AirNavKML/internal/kml"
	"github.com/ajsalasa/AirNavKML/internal/route"
	"github.com/labstack/gommon/log"
)

const (
	usage = `USAGE: %s [OPTIONS...]
Convert waypoint/airway CSV files to KML (and optionally GeoJSON).

OPTIONS:
`
)

type Options struct {
	PointsCsv   string
	RoutesCsv   string
	OutPath     string
	GeojsonPath string
	ConfigPath  string
}

// ExportConfig is the explicit configuration handed to the export layer.
// Fixed altitudes are strings so "750", "7500 ft" and "FL85" all work.
type ExportConfig struct {
	Title  string `json:"title"`
	Points struct {
		AltMode  string `json:"alt_mode"`
		AltUnits string `json:"alt_units"`
		FixedAlt string `json:"fixed_alt"`
		Extrude  bool   `json:"extrude"`
	} `json:"points"`
	Routes struct {
		AltMode     string  `json:"alt_mode"`
		AltUnits    string  `json:"alt_units"`
		FixedAlt    string  `json:"fixed_alt"`
		GroupColumn string  `json:"group_column"`
		OrderColumn string  `json:"order_column"`
		Color       string  `json:"color"`
		Width       float64 `json:"width"`
		Extrude     bool    `json:"extrude"`
	} `json:"routes"`
}

func defaultConfig() ExportConfig {
	var cfg ExportConfig
	cfg.Title = "Puntos + Aerovías"
	cfg.Points.AltMode = kml.RelativeToGround
	cfg.Points.AltUnits = "m"
	cfg.Points.FixedAlt = "750"
	cfg.Points.Extrude = true
	cfg.Routes.AltMode = kml.Absolute
	cfg.Routes.AltUnits = "ft"
	cfg.Routes.GroupColumn = "Aerovia"
	cfg.Routes.OrderColumn = "Sec"
	cfg.Routes.Color = "#00A0FF"
	cfg.Routes.Width = 3.0
	return cfg
}

func parseCommandLine() Options {
	points := flag.String("points", "", "CSV file with waypoints (empty: no point placemarks)")
	routes := flag.String("routes", "", "CSV file with airway vertices (empty: no routes)")
	out := flag.String("out", "salida.kml", "output KML file")
	geojson_out := flag.String("geojson", "", "also write a GeoJSON file to this path")
	config := flag.String("config", "", "json file with export configuration")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(flag.Args()) != 0 {
		fmt.Println("ERROR: invalid command line")
		flag.Usage()
		os.Exit(1)
	}

	return Options{*points, *routes, *out, *geojson_out, *config}
}

func readExportConfig(fileName string) (ExportConfig, error) {
	cfg := defaultConfig()
	if fileName == "" {
		return cfg, nil
	}

	confBytes, err := os.ReadFile(fileName)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", fileName, err)
	}
	if err = json.Unmarshal(confBytes, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling %s: %w", fileName, err)
	}
	return cfg, nil
}

func fixedAlt(raw string, units altitude.Unit) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	return altitude.ToMeters(raw, units)
}

func main() {
	options := parseCommandLine()

	if options.PointsCsv == "" && options.RoutesCsv == "" {
		log.Fatalf("nothing to do: need -points and/or -routes")
	}

	cfg, err := readExportConfig(options.ConfigPath)
	if err != nil {
		log.Fatalf("failed to read export config: %v", err)
	}

	var waypoints []route.Waypoint
	if options.PointsCsv != "" {
		wpts, mapping, err := route.LoadWaypoints(options.PointsCsv, altitude.Unit(cfg.Points.AltUnits))
		if err != nil {
			log.Fatalf("failed to load waypoints: %v", err)
		}
		if mapping.Lat == "" && mapping.Lon == "" && mapping.Combined == "" {
			log.Fatalf("%s: no coordinate columns detected, a manual mapping is needed", options.PointsCsv)
		}
		skipped := 0
		for i := range wpts {
			if !wpts[i].Pos.IsValid() {
				skipped++
			}
		}
		if skipped > 0 {
			log.Warnf("%s: %d of %d rows have unparseable coordinates", options.PointsCsv, skipped, len(wpts))
		}
		waypoints = wpts
	}

	var airways []*route.Route
	if options.RoutesCsv != "" {
		airways, err = route.LoadRoutes(options.RoutesCsv, cfg.Routes.GroupColumn, cfg.Routes.OrderColumn,
			altitude.Unit(cfg.Routes.AltUnits))
		if err != nil {
			log.Fatalf("failed to load routes: %v", err)
		}
		for _, r := range airways {
			for _, issue := range route.Audit(r) {
				log.Warnf("route '%s' leg %d: %s", r.Name, issue.Leg, issue.Reason)
			}
		}
	}

	popt := kml.PointOptions{AltMode: cfg.Points.AltMode, Extrude: cfg.Points.Extrude}
	popt.FixedAltM, popt.HasFixedAlt = fixedAlt(cfg.Points.FixedAlt, altitude.Unit(cfg.Points.AltUnits))

	ropt := kml.RouteOptions{
		AltMode: cfg.Routes.AltMode,
		Color:   cfg.Routes.Color,
		Width:   cfg.Routes.Width,
		Extrude: cfg.Routes.Extrude,
	}
	ropt.FixedAltM, ropt.HasFixedAlt = fixedAlt(cfg.Routes.FixedAlt, altitude.Unit(cfg.Routes.AltUnits))

	doc := kml.Build(cfg.Title, waypoints, airways, popt, ropt)
	if err := os.WriteFile(options.OutPath, []byte(doc), 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", options.OutPath, err)
	}
	log.Printf("KML written to %s", options.OutPath)

	if options.GeojsonPath != "" {
		data, err := geojson.Export(waypoints, airways)
		if err != nil {
			log.Fatalf("failed to build geojson: %v", err)
		}
		if err := os.WriteFile(options.GeojsonPath, data, 0o644); err != nil {
			log.Fatalf("failed to write %s: %v", options.GeojsonPath, err)
		}
		log.Printf("GeoJSON written to %s", options.GeojsonPath)
	}
}
