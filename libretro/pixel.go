package libretro

import (
	"fmt"
	"image"
)

// FrameToRGBA converts one frame of core video output to an RGBA image.
// src holds at least height*pitch bytes in the given pixel format; pitch is
// bytes per row and may exceed the packed row width.
func FrameToRGBA(src []byte, format PixelFormat, width, height, pitch int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || pitch <= 0 {
		return nil, fmt.Errorf("invalid frame geometry %dx%d pitch %d", width, height, pitch)
	}
	if len(src) < height*pitch {
		return nil, fmt.Errorf("frame buffer too short: %d bytes for %dx%d pitch %d", len(src), width, height, pitch)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	switch format {
	case PixelFormatXRGB8888:
		convertXRGB8888(img.Pix, src, width, height, pitch)
	case PixelFormatRGB565:
		convertRGB565(img.Pix, src, width, height, pitch)
	case PixelFormat0RGB1555:
		convert0RGB1555(img.Pix, src, width, height, pitch)
	default:
		return nil, fmt.Errorf("unknown pixel format %d", format)
	}
	return img, nil
}

// convertXRGB8888 converts little-endian XRGB8888 rows to RGBA.
func convertXRGB8888(dst, src []byte, width, height, pitch int) {
	for y := 0; y < height; y++ {
		row := src[y*pitch:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			si := x * 4
			di := x * 4
			out[di+0] = row[si+2] // R
			out[di+1] = row[si+1] // G
			out[di+2] = row[si+0] // B
			out[di+3] = 0xFF
		}
	}
}

// convertRGB565 converts little-endian RGB565 rows to RGBA, expanding the
// 5/6-bit channels into their full 8-bit range.
func convertRGB565(dst, src []byte, width, height, pitch int) {
	for y := 0; y < height; y++ {
		row := src[y*pitch:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			px := uint16(row[x*2]) | uint16(row[x*2+1])<<8
			r := byte(px >> 11)
			g := byte(px >> 5 & 0x3F)
			b := byte(px & 0x1F)
			di := x * 4
			out[di+0] = r<<3 | r>>2
			out[di+1] = g<<2 | g>>4
			out[di+2] = b<<3 | b>>2
			out[di+3] = 0xFF
		}
	}
}

// convert0RGB1555 converts little-endian 0RGB1555 rows to RGBA.
func convert0RGB1555(dst, src []byte, width, height, pitch int) {
	for y := 0; y < height; y++ {
		row := src[y*pitch:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			px := uint16(row[x*2]) | uint16(row[x*2+1])<<8
			r := byte(px >> 10 & 0x1F)
			g := byte(px >> 5 & 0x1F)
			b := byte(px & 0x1F)
			di := x * 4
			out[di+0] = r<<3 | r>>2
			out[di+1] = g<<3 | g>>2
			out[di+2] = b<<3 | b>>2
			out[di+3] = 0xFF
		}
	}
}
