package route

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ajsalasa/AirNavKML/internal/altitude"
	"github.com/ajsalasa/AirNavKML/internal/columns"
	"github.com/ajsalasa/AirNavKML/internal/data"
)

// LoadWaypoints reads a waypoint table. Columns are auto-detected from the
// header row; rows whose coordinates cannot be parsed are kept with the
// absent position so callers can report them.
func LoadWaypoints(waypoints_file string, altUnit altitude.Unit) ([]Waypoint, columns.Mapping, error) {
	records, err := data.ReadCsvFile(waypoints_file)
	if err != nil {
		return nil, columns.Mapping{}, err
	}
	if len(records) == 0 {
		return nil, columns.Mapping{}, fmt.Errorf("%s: empty file", waypoints_file)
	}

	headers := records[0]
	mapping := columns.Detect(headers)

	waypoints := make([]Waypoint, 0, len(records)-1)
	for line, row := range records {
		if line == 0 {
			continue
		}
		waypoints = append(waypoints, CreateWaypointFromCsvData(headers, row, mapping, altUnit))
	}

	return waypoints, mapping, nil
}

// LoadRoutes reads a route-vertex table grouped by group_col and ordered by
// the numeric order_col within each group. An empty or missing group column
// yields a single route named "Ruta", matching the batch converter's
// behavior for ungrouped files.
func LoadRoutes(routes_file, group_col, order_col string, altUnit altitude.Unit) ([]*Route, error) {
	records, err := data.ReadCsvFile(routes_file)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", routes_file)
	}

	headers := records[0]
	mapping := columns.Detect(headers)

	group_idx := indexOf(headers, group_col)
	order_idx := indexOf(headers, order_col)

	type vertex struct {
		order string
		line  int
		wpt   Waypoint
	}

	groups := make(map[string][]vertex)
	order_of_group := make([]string, 0)

	for line, row := range records {
		if line == 0 {
			continue
		}
		name := "Ruta"
		if group_idx >= 0 && group_idx < len(row) {
			name = row[group_idx]
		}
		ord := ""
		if order_idx >= 0 && order_idx < len(row) {
			ord = row[order_idx]
		}
		if _, seen := groups[name]; !seen {
			order_of_group = append(order_of_group, name)
		}
		groups[name] = append(groups[name], vertex{
			order: ord,
			line:  line,
			wpt:   CreateWaypointFromCsvData(headers, row, mapping, altUnit),
		})
	}

	routes := make([]*Route, 0, len(groups))
	for _, name := range order_of_group {
		vertices := groups[name]
		sort.SliceStable(vertices, func(i, j int) bool {
			ni, erri := strconv.ParseFloat(vertices[i].order, 64)
			nj, errj := strconv.ParseFloat(vertices[j].order, 64)
			if erri == nil && errj == nil {
				return ni < nj
			}
			if erri == nil || errj == nil {
				// numeric vertices sort ahead of unnumbered ones
				return erri == nil
			}
			return vertices[i].line < vertices[j].line
		})

		r := &Route{Name: name}
		for _, v := range vertices {
			r.Points = append(r.Points, v.wpt)
		}
		routes = append(routes, r)
	}

	return routes, nil
}

func indexOf(headers []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
