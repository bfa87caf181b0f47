package programs

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// GetImage returns the program's output for params as an image.Image,
// computing each pixel on demand with the CPU implementation.
func (p *Program) GetImage(params Params) (image.Image, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}

	return &programImage{
		params:    params,
		bounds:    image.Rect(0, 0, int(params.Width), int(params.Height)),
		pixelFunc: p.GetPixel,
	}, nil
}

type programImage struct {
	params    Params
	bounds    image.Rectangle
	pixelFunc PixelFunc
}

func (i *programImage) At(x, y int) color.Color {
	return toNRGBA(i.pixelFunc(i.params, pixelCentre(x, y)))
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}

func (i *programImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (i *programImage) Opaque() bool {
	return true
}

// Render evaluates every pixel of the program's CPU implementation,
// splitting rows into chunks that are rendered in parallel.
func (p *Program) Render(ctx context.Context, params Params) (*image.NRGBA, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}

	width, height := int(params.Width), int(params.Height)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	const chunkSize = 16
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for chunkMin := 0; chunkMin < height; chunkMin += chunkSize {
		chunkMax := min(chunkMin+chunkSize, height)

		g.Go(func() error {
			for y := chunkMin; y < chunkMax; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				for x := 0; x < width; x++ {
					img.SetNRGBA(x, y, toNRGBA(p.GetPixel(params, pixelCentre(x, y))))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// pixelCentre matches gl_FragCoord, which samples at the middle of the pixel.
func pixelCentre(x, y int) mgl32.Vec2 {
	return mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
}

func toNRGBA(c mgl32.Vec4) color.NRGBA {
	return color.NRGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: uint8(mgl32.Clamp(c[3], 0, 1) * 255),
	}
}
