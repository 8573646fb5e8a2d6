package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/term"

	"github.com/sable-img/sable"
	"github.com/sable-img/sable/detect"
	"github.com/sable-img/sable/pixel"
	"github.com/sable-img/sable/region"
	"github.com/sable-img/sable/settings"
	"github.com/sable-img/sable/utils"
)

const helpBanner = `
┌─┐┌─┐┌┐ ┬  ┌─┐
└─┐├─┤├┴┐│  ├┤
└─┘┴ ┴└─┘┴─┘└─┘

Layered image compositing engine.
    Version: %s

`

// pipeName indicates that stdin/stdout is being used as a file name.
const pipeName = "-"

var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Version is set at build time via -ldflags.
var Version string

var (
	source         = flag.String("in", pipeName, "Source image, a local path or an http(s) URL")
	dest           = flag.String("out", pipeName, "Destination image")
	op             = flag.String("op", "", "Adjustment operation to run: grayscale, edge, blur, contrast")
	blurRadius     = flag.Float64("blur", 4, "Blur radius, used with -op=blur")
	edgeThresh     = flag.Float64("sobel", 50, "Sobel edge threshold, used with -op=edge")
	contrast       = flag.Float64("contrast", 0, "Contrast adjustment in (-255,255), used with -op=contrast")
	faceDetect     = flag.Bool("face", false, "Scope -op to detected faces instead of the whole image")
	cascade        = flag.String("cascade", "", "Path to a pigo cascade file, required with -face")
	debugFrame     = flag.Bool("debug", false, "Paint the operation's coverage mask instead of running it")
	noGPU          = flag.Bool("no-gpu", false, "Mark GPU acceleration disabled in settings (sablecli registers no GPU provider, so operations run on the CPU either way)")
	workers        = flag.Int("conc", runtime.NumCPU(), "Files to process concurrently in directory mode")
	strokeColor    = flag.String("stroke-color", "", "Hex color (#rgb, #rrggbb or #rrggbbaa) for an outline stroke on the source layer")
	strokeSize     = flag.Int("stroke-size", 4, "Stroke width in pixels, used with -stroke-color")
	strokePosition = flag.String("stroke-position", "outside", "Stroke placement relative to the silhouette: inside, outside, center")
	shadowColor    = flag.String("shadow-color", "", "Hex color (#rgb, #rrggbb or #rrggbbaa) for a drop shadow on the source layer")
	shadowAngle    = flag.Float64("shadow-angle", 135, "Drop shadow angle in degrees, used with -shadow-color")
	shadowDistance = flag.Float64("shadow-distance", 10, "Drop shadow distance in pixels, used with -shadow-color")
	shadowSpread   = flag.Float64("shadow-spread", 0, "Drop shadow spread as a fraction in [0,1] of -shadow-size, used with -shadow-color")
	shadowSize     = flag.Int("shadow-size", 8, "Drop shadow blur size in pixels, used with -shadow-color")
	debugFrames    = flag.String("debug-frames", "", "Write an animated GIF of the flatten stages to this path (single-file mode only)")
)

type result struct {
	path string
	err  error
}

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, fmt.Sprintf(helpBanner, Version))
		flag.PrintDefaults()
	}
	flag.Parse()
	defer cancelRootCtx()

	cfg := settings.New()
	cfg.SetGPUEnabled(!*noGPU)

	src := *source
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(src)
		if err != nil {
			log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to download %s: %v", src, err), utils.ErrorMessage))
		}
		defer os.Remove(tmp.Name())
		src = tmp.Name()
	}

	fi, err := statSource(src)
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to stat source: %v", err), utils.ErrorMessage))
	}

	now := time.Now()
	switch {
	case fi.IsDir():
		err = runDir(src, *dest, cfg)
	default:
		spinner := utils.NewSpinner(utils.DecorateText(fmt.Sprintf("processing %s ", src), utils.StatusMessage), 100*time.Millisecond, true)
		spinner.Start()
		err = runFile(src, *dest, cfg, *debugFrames)
		spinner.Stop()
	}
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("%v", err), utils.ErrorMessage))
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n",
		utils.DecorateText("done in", utils.SuccessMessage),
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)
}

func statSource(src string) (os.FileInfo, error) {
	if src == pipeName {
		return os.Stdin.Stat()
	}
	return os.Stat(src)
}

// runDir walks src concurrently across *workers goroutines, running
// runFile against every supported image underneath it, mirroring the
// directory-mode worker pool caire's Processor.Execute drives.
// Frame recording is a single-file-mode feature, so each file here runs
// with it disabled.
func runDir(src, dst string, cfg *settings.Settings) error {
	if _, err := os.Stat(dst); err != nil {
		if err := os.Mkdir(dst, 0755); err != nil {
			return fmt.Errorf("unable to create destination dir: %w", err)
		}
	}

	done := make(chan any)
	defer close(done)
	paths, errc := walkDir(done, src)

	n := *workers
	if n <= 0 || n > runtime.NumCPU() {
		n = runtime.NumCPU()
	}

	ch := make(chan result)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for p := range paths {
				out := filepath.Join(dst, filepath.Base(p))
				err := runFile(p, out, cfg, "")
				select {
				case <-done:
					return
				case ch <- result{path: p, err: err}:
				}
			}
		}()
	}
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var firstErr error
	for res := range ch {
		if res.err != nil {
			firstErr = res.err
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", utils.DecorateText("failed", utils.ErrorMessage), res.path, res.err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", utils.DecorateText("done", utils.SuccessMessage), res.path)
	}
	if err := <-errc; err != nil {
		return err
	}
	return firstErr
}

func walkDir(done <-chan any, src string) (<-chan string, <-chan error) {
	paths := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(paths)
		errc <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if f.IsDir() || !slices.Contains(validExtensions, filepath.Ext(path)) {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case paths <- path:
			}
			return nil
		})
	}()
	return paths, errc
}

// runFile decodes src, builds a one-layer Canvas, optionally scopes an
// adjustment operation to detected faces and/or outlines the layer with a
// stroke/drop-shadow, flattens, and encodes to dst. When recordFramesTo is
// non-empty, the flatten stages are captured and written as an animated GIF
// to that path.
func runFile(src, dst string, cfg *settings.Settings, recordFramesTo string) error {
	// sablecli registers no region.GpuCallback of its own. cfg is not read
	// here, and region.Process does not consult Settings, so -no-gpu does
	// not change which path an operation takes.
	_ = cfg

	decoded, err := decodeImage(src)
	if err != nil {
		return fmt.Errorf("cannot decode %s: %w", src, err)
	}
	img := pixel.FromStdImage(decoded)

	canvas := sable.NewCanvas(filepath.Base(src), img.Width, img.Height)
	layer, err := canvas.AddLayerFromImage("source", img, sable.DefaultLayerOptions())
	if err != nil {
		return err
	}

	if *strokeColor != "" || *shadowColor != "" {
		effects, err := buildEffects()
		if err != nil {
			return err
		}
		layer.SetEffects(effects)
	}

	if *op != "" {
		if err := applyOp(layer); err != nil {
			return err
		}
	}

	var recorder *utils.FrameRecorder
	if recordFramesTo != "" {
		recorder = utils.NewFrameRecorder(20)
		canvas.SetFrameRecorder(recorder)
	}

	flat, err := canvas.Flatten()
	if err != nil {
		return err
	}

	if recorder != nil {
		if err := writeDebugFrames(recordFramesTo, recorder); err != nil {
			return err
		}
	}

	return encodeImage(dst, flat)
}

// buildEffects parses the -stroke-* and -shadow-* flags into the EffectList
// applied to the source layer.
func buildEffects() (sable.EffectList, error) {
	var e sable.EffectList
	if *strokeColor != "" {
		pos, err := parseStrokePosition(*strokePosition)
		if err != nil {
			return e, err
		}
		rgba := utils.HexToRGBA(*strokeColor)
		e.Stroke = &sable.Stroke{
			Fill:     pixel.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A},
			Opacity:  1,
			Size:     *strokeSize,
			Position: pos,
		}
	}
	if *shadowColor != "" {
		rgba := utils.HexToRGBA(*shadowColor)
		e.DropShadow = &sable.DropShadow{
			Fill:      pixel.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A},
			BlendMode: sable.BlendNormal,
			Opacity:   1,
			AngleDeg:  *shadowAngle,
			Distance:  *shadowDistance,
			Spread:    *shadowSpread,
			Size:      *shadowSize,
		}
	}
	return e, nil
}

func parseStrokePosition(s string) (sable.StrokePosition, error) {
	switch s {
	case "inside":
		return sable.StrokeInside, nil
	case "outside":
		return sable.StrokeOutside, nil
	case "center":
		return sable.StrokeCenter, nil
	default:
		return 0, fmt.Errorf("unrecognized -stroke-position %q", s)
	}
}

func writeDebugFrames(path string, recorder *utils.FrameRecorder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()
	return recorder.WriteGIF(f)
}

// applyOp runs the -op adjustment over layer's image through MutateImage,
// so copy-on-write forking and dirty propagation happen the way the rest
// of the Canvas API expects.
func applyOp(layer *sable.Layer) error {
	var (
		fn   func(*pixel.Image) error
		kind region.OpKind
	)
	switch *op {
	case "grayscale":
		fn, kind = sable.Grayscale, region.OpGrayscale
	case "edge":
		fn, kind = sable.EdgeDetect(*edgeThresh), region.OpEdgeDetect
	case "blur":
		fn, kind = sable.Blur(*blurRadius), region.OpBlur
	case "contrast":
		fn, kind = sable.Contrast(*contrast), region.OpContrast
	default:
		return fmt.Errorf("unrecognized -op %q", *op)
	}

	opts := region.Options{Op: fn, Kind: kind, Debug: *debugFrame}
	if *op == "blur" {
		opts.KernelPadding = int(*blurRadius) + 1
	}

	var opErr error
	layer.MutateImage(func(img *pixel.Image) {
		if !*faceDetect {
			opErr = region.Process(contextBackground(), img, opts)
			return
		}
		if *cascade == "" {
			opErr = errors.New("-face requires -cascade <path>")
			return
		}
		cascadeData, err := os.ReadFile(*cascade)
		if err != nil {
			opErr = fmt.Errorf("cannot read cascade file: %w", err)
			return
		}
		areas, err := detect.Faces(img, detect.DefaultOptions(cascadeData))
		if err != nil {
			opErr = err
			return
		}
		for _, area := range areas {
			o := opts
			o.Area = area
			if perr := region.Process(contextBackground(), img, o); perr != nil {
				opErr = perr
				return
			}
		}
	})
	return opErr
}

func decodeImage(src string) (image.Image, error) {
	r, err := openSrc(src)
	if err != nil {
		return nil, err
	}
	if f, ok := r.(io.Closer); ok {
		defer f.Close()
	}
	img, _, err := image.Decode(r)
	return img, err
}

// openSrc opens src for reading. For a real file (not the stdin pipe name),
// it first sniffs the content type so an unsupported or non-image file
// fails with a clear message instead of a generic decode error.
func openSrc(src string) (io.Reader, error) {
	if src == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, nil
	}
	ct, err := utils.DetectFileContentType(src)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%s does not look like an image (detected %s)", src, ct)
	}
	return os.Open(src)
}

func encodeImage(dst string, img *pixel.Image) error {
	w, err := openDst(dst)
	if err != nil {
		return err
	}
	if f, ok := w.(io.Closer); ok {
		defer f.Close()
	}

	std := img.ToStdImage()
	ext := filepath.Ext(dst)
	switch ext {
	case ".png":
		return png.Encode(w, std)
	case ".bmp":
		return bmp.Encode(w, std)
	default:
		return jpeg.Encode(w, std, &jpeg.Options{Quality: 100})
	}
}

func openDst(dst string) (io.Writer, error) {
	if dst == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	return os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
}

// rootCtx is cancelled on SIGINT/SIGTERM. region.Process checks it before
// starting work, so after a signal any region.Process call not yet started
// returns the context's error instead of running; an operation already
// running is not interrupted.
var rootCtx, cancelRootCtx = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

func contextBackground() context.Context { return rootCtx }
