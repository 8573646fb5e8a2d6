// Package detect locates faces in an image and reports them as feathered
// geometry.Area circles, so a region-pipeline caller can scope an operation
// (a beautify filter, a privacy blur) to faces without hand-drawing
// selections.
//
// It wraps the same pigo cascade classifier caire's own face-detection
// branch (carver.go's ComputeSeams) drives during seam protection, but
// repurposes the classifier's output from "paint a sobel-energy mask so
// seam carving avoids this region" into "return an Area the region
// pipeline can scope an operation to" — the classifier call itself
// (RunCascade + ClusterDetections) is unchanged.
package detect

import (
	"math"

	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"

	"github.com/sable-img/sable/geometry"
	"github.com/sable-img/sable/pixel"
	"github.com/sable-img/sable/xerrors"
)

// Options controls the cascade classifier's search, mirroring the
// parameters caire's ComputeSeams hardcodes (MinSize 100, ShiftFactor 0.1,
// ScaleFactor 1.1) but exposed so callers can tune them.
type Options struct {
	// CascadeData is the raw contents of a pigo binary cascade file (e.g.
	// facefinder).
	CascadeData []byte
	MinSize     int
	ShiftFactor float64
	ScaleFactor float64
	Angle       float64
	// MinScore filters out low-confidence detections; caire's own
	// threshold for accepting a face is Q > 5.0.
	MinScore float32
	// Feather is the feather radius applied to each returned Area.
	Feather float64
}

// DefaultOptions matches caire's own cascade parameters.
func DefaultOptions(cascadeData []byte) Options {
	return Options{
		CascadeData: cascadeData,
		MinSize:     100,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		Angle:       0,
		MinScore:    5.0,
		Feather:     8,
	}
}

// Faces runs the cascade classifier over img and returns one circular,
// feathered geometry.Area per detected face. It returns a non-nil empty
// slice and no error when zero faces are found.
func Faces(img *pixel.Image, opts Options) ([]*geometry.Area, error) {
	if img == nil {
		return nil, xerrors.New(xerrors.InvalidDimensions, "detect: nil image")
	}
	if len(opts.CascadeData) == 0 {
		return nil, xerrors.New(xerrors.UnsupportedOperation, "detect: no cascade data supplied")
	}

	pixels := make([]uint8, img.Width*img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c, _ := img.GetPixel(x, y)
			pixels[y*img.Width+x] = uint8(math.Round(c.Luma()))
		}
	}

	maxSize := opts.MinSize
	if s := int(math.Max(float64(img.Width), float64(img.Height))); s > maxSize {
		maxSize = s
	}

	cParams := pigo.CascadeParams{
		MinSize:     opts.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: opts.ShiftFactor,
		ScaleFactor: opts.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   img.Height,
			Cols:   img.Width,
			Dim:    img.Width,
		},
	}

	classifier := pigo.NewPigo()
	unpacked, err := classifier.Unpack(opts.CascadeData)
	if err != nil {
		return nil, errors.Wrap(xerrors.New(xerrors.CodecError, "detect: unpack cascade"), err.Error())
	}

	detections := unpacked.RunCascade(cParams, opts.Angle)
	detections = unpacked.ClusterDetections(detections, 0.2)

	areas := make([]*geometry.Area, 0, len(detections))
	minScore := opts.MinScore
	if minScore == 0 {
		minScore = 5.0
	}
	feather := opts.Feather

	for _, d := range detections {
		if d.Q <= minScore {
			continue
		}
		radius := float64(d.Scale) / 2
		center := geometry.PointF{X: float64(d.Col), Y: float64(d.Row)}
		areas = append(areas, circleArea(center, radius, feather))
	}
	return areas, nil
}

// circleArea approximates a circle as a many-sided polygon path, since
// geometry.Path has no dedicated arc primitive — the same flattened-curve
// boundary every other Area uses.
func circleArea(center geometry.PointF, radius, feather float64) *geometry.Area {
	const sides = 32
	path := geometry.NewPath()
	for i := 0; i <= sides; i++ {
		angle := 2 * math.Pi * float64(i) / sides
		p := geometry.PointF{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		if i == 0 {
			path.MoveTo(p)
		} else {
			path.LineTo(p)
		}
	}
	path.ClosePath()
	return geometry.NewArea(path, feather)
}
