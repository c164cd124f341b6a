package geom

import (
	"math"
	"strconv"
)

// Coordinates render at fixed micro-degree precision through an integer
// path, so output never depends on a platform's float formatting.
const coordScale = 1_000_000

// AppendWKT appends the well-known-text form of g to dst.
// Boxes render as their five-point polygon ring.
func AppendWKT(dst []byte, g Geometry) []byte {
	switch g.Kind {
	case KindPoint:
		dst = append(dst, "POINT ("...)
		dst = appendCoord(dst, g.Point.Lon)
		dst = append(dst, ' ')
		dst = appendCoord(dst, g.Point.Lat)
		return append(dst, ')')
	case KindBox:
		b := g.Box
		dst = append(dst, "POLYGON (("...)
		dst = appendPair(dst, b.Min.Lon, b.Min.Lat)
		dst = append(dst, ", "...)
		dst = appendPair(dst, b.Max.Lon, b.Min.Lat)
		dst = append(dst, ", "...)
		dst = appendPair(dst, b.Max.Lon, b.Max.Lat)
		dst = append(dst, ", "...)
		dst = appendPair(dst, b.Min.Lon, b.Max.Lat)
		dst = append(dst, ", "...)
		dst = appendPair(dst, b.Min.Lon, b.Min.Lat)
		return append(dst, "))"...)
	case KindPolygon:
		dst = append(dst, "POLYGON (("...)
		for i, p := range g.Ring {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = appendPair(dst, p.Lon, p.Lat)
		}
		if len(g.Ring) > 0 {
			dst = append(dst, ", "...)
			dst = appendPair(dst, g.Ring[0].Lon, g.Ring[0].Lat)
		}
		return append(dst, "))"...)
	}
	return dst
}

func appendPair(dst []byte, lon, lat float64) []byte {
	dst = appendCoord(dst, lon)
	dst = append(dst, ' ')
	return appendCoord(dst, lat)
}

func appendCoord(dst []byte, v float64) []byte {
	return AppendFixed(dst, int64(math.Round(v*coordScale)), 6)
}

// AppendFixed appends a scaled integer as fixed-point decimal text with the
// given number of fractional digits. AppendFixed(dst, 12345, 2) yields
// "123.45".
func AppendFixed(dst []byte, scaled int64, digits int) []byte {
	if scaled < 0 {
		dst = append(dst, '-')
		scaled = -scaled
	}
	pow := int64(1)
	for i := 0; i < digits; i++ {
		pow *= 10
	}
	dst = strconv.AppendInt(dst, scaled/pow, 10)
	dst = append(dst, '.')
	frac := scaled % pow
	for p := pow / 10; p > 1; p /= 10 {
		if frac < p {
			dst = append(dst, '0')
		}
	}
	return strconv.AppendInt(dst, frac, 10)
}
