package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

// DecodeTGA decodes uncompressed or RLE-compressed true-color TGA data.
// image.Decode has no TGA support, so Decode dispatches here by extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: tga header truncated", ErrDecode)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("%w: color-mapped tga", ErrDecode)
	case imageType != tgaTrueColor && imageType != tgaTrueColorRLE:
		return nil, fmt.Errorf("%w: tga type %d", ErrDecode, imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: tga depth %d", ErrDecode, bpp)
	case 18+idLength > len(data):
		return nil, fmt.Errorf("%w: tga id truncated", ErrDecode)
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[18+idLength:],
		stride:      bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}

	if imageType == tgaTrueColor {
		if len(r.data) < width*height*r.stride {
			return nil, fmt.Errorf("%w: tga pixels truncated", ErrDecode)
		}
		for r.n < width*height {
			c, _ := r.next()
			r.put(c)
		}
		return r.img, nil
	}

	r.decodeRLE()
	return r.img, nil
}

type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	n           int // pixels written
	stride      int
	width       int
	height      int
	topToBottom bool
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, bool) {
	if r.pos+r.stride > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.stride == 4 {
		c.A = p[3]
	}
	r.pos += r.stride
	return c, true
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.n%r.width, r.n/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

// decodeRLE stops quietly at the end of the data, leaving the rest of the
// image transparent.
func (r *tgaReader) decodeRLE() {
	total := r.width * r.height
	for r.n < total && r.pos < len(r.data) {
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := r.next()
			if !ok {
				return
			}
			for i := 0; i < count && r.n < total; i++ {
				r.put(c)
			}
			continue
		}

		for i := 0; i < count && r.n < total; i++ {
			c, ok := r.next()
			if !ok {
				return
			}
			r.put(c)
		}
	}
}
