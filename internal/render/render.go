package render

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"image/jpeg"

	"github.com/ajsalasa/AirNavKML/internal/route"
	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"
)

// waypointLabel draws a fix name next to its position.
type waypointLabel struct {
	pos  s2.LatLng
	text string
}

func (l *waypointLabel) Bounds() s2.Rect {
	return s2.RectFromLatLng(l.pos)
}

func (l *waypointLabel) ExtraMarginPixels() (float64, float64, float64, float64) {
	return 4.0, 16.0, 4.0 + 7.0*float64(len(l.text)), 4.0
}

func (l *waypointLabel) Draw(gc *gg.Context, trans *sm.Transformer) {
	x, y := trans.LatLngToXY(l.pos)
	gc.SetRGBA(1, 1, 1, 0.8)
	gc.DrawCircle(x, y, 3.0)
	gc.Fill()
	gc.SetRGB(0, 0, 0)
	gc.DrawStringAnchored(l.text, x, y-10, 0.5, 0)
}

func routeBbox(r *route.Route, margin float64) (*s2.Rect, error) {
	first := true
	var minLat, maxLat, minLon, maxLon float64
	for _, p := range r.Points {
		if !p.Pos.IsValid() {
			continue
		}
		if first {
			minLat, maxLat = p.Pos.Lat, p.Pos.Lat
			minLon, maxLon = p.Pos.Lon, p.Pos.Lon
			first = false
			continue
		}
		if p.Pos.Lat < minLat {
			minLat = p.Pos.Lat
		}
		if p.Pos.Lat > maxLat {
			maxLat = p.Pos.Lat
		}
		if p.Pos.Lon < minLon {
			minLon = p.Pos.Lon
		}
		if p.Pos.Lon > maxLon {
			maxLon = p.Pos.Lon
		}
	}
	if first {
		return nil, fmt.Errorf("route '%s' has no positioned points", r.Name)
	}
	return sm.CreateBBox(maxLat+margin, minLon-margin, minLat-margin, maxLon+margin)
}

// DrawRoute renders the route as a path with labeled waypoints over the
// given tile background and returns the encoded JPEG.
func DrawRoute(r *route.Route, tiles *sm.TileProvider) ([]byte, error) {
	ctx := sm.NewContext()
	ctx.SetSize(1024, 1024)
	ctx.SetTileProvider(tiles)

	bbox, err := routeBbox(r, 0.1)
	if err != nil {
		return nil, err
	}
	ctx.SetBoundingBox(*bbox)

	positions := make([]s2.LatLng, 0, len(r.Points))
	for _, p := range r.Points {
		if !p.Pos.IsValid() {
			continue
		}
		positions = append(positions, s2.LatLngFromDegrees(p.Pos.Lat, p.Pos.Lon))
	}
	if len(positions) >= 2 {
		ctx.AddObject(sm.NewPath(positions, color.RGBA{0x00, 0xa0, 0xff, 0xff}, 3.0))
	}

	for _, p := range r.Points {
		if !p.Pos.IsValid() {
			continue
		}
		ctx.AddObject(&waypointLabel{
			pos:  s2.LatLngFromDegrees(p.Pos.Lat, p.Pos.Lon),
			text: p.Name,
		})
	}

	img, err := ctx.Render()
	if err != nil {
		return nil, err
	}

	buff := new(bytes.Buffer)
	var byteWriter = bufio.NewWriter(buff)
	if err := jpeg.Encode(byteWriter, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode jpg: %w", err)
	}
	if err := byteWriter.Flush(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// DrawCentered renders the route with the view forced to a given center
// point instead of the route's own bounding box.
func DrawCentered(r *route.Route, tiles *sm.TileProvider, lat, lon float64, zoom int) ([]byte, error) {
	ctx := sm.NewContext()
	ctx.SetSize(1024, 1024)
	ctx.SetTileProvider(tiles)
	ctx.SetCenter(s2.LatLngFromDegrees(lat, lon))
	ctx.SetZoom(zoom)

	positions := make([]s2.LatLng, 0, len(r.Points))
	for _, p := range r.Points {
		if !p.Pos.IsValid() {
			continue
		}
		positions = append(positions, s2.LatLngFromDegrees(p.Pos.Lat, p.Pos.Lon))
	}
	if len(positions) >= 2 {
		ctx.AddObject(sm.NewPath(positions, color.RGBA{0x00, 0xa0, 0xff, 0xff}, 3.0))
	}

	img, err := ctx.Render()
	if err != nil {
		return nil, err
	}

	buff := new(bytes.Buffer)
	var byteWriter = bufio.NewWriter(buff)
	if err := jpeg.Encode(byteWriter, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode jpg: %w", err)
	}
	if err := byteWriter.Flush(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}
