package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %v", err)
	}
	return nil
}

// WriteNetPBM writes dense row-major 8-bit RGB data as a plain-text PPM (P3)
func WriteNetPBM(w io.Writer, width, height int, rgb []byte) error {
	if len(rgb) != width*height*3 {
		return fmt.Errorf("expected %d bytes of RGB data for %dx%d, got %d", width*height*3, width, height, len(rgb))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height)

	for y := 0; y < height; y++ {
		row := rgb[y*width*3 : (y+1)*width*3]
		for i, v := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", v)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %v", err)
	}
	return nil
}

// SaveImage writes img to filename. Files ending in .ppm are written as
// plain-text PPM, everything else as PNG. The file is replaced atomically so
// concurrent readers never see a partial image.
func SaveImage(filename string, img *image.RGBA) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	tmp, err := os.CreateTemp(dir, ".render-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if strings.EqualFold(filepath.Ext(filename), ".ppm") {
		err = WriteNetPBM(tmp, img.Rect.Dx(), img.Rect.Dy(), rgbBytes(img))
	} else {
		err = WritePNG(tmp, img)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace %s: %v", filename, err)
	}
	return nil
}

// rgbBytes drops the alpha channel of img
func rgbBytes(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out
}
