package receipt

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
)

const (
	// 80mm paper prints about 72mm; 288px keeps the logo sharp at 96 DPI.
	logoMaxWidth  = 288
	logoMaxHeight = 120
	logoQuality   = 80
)

// PrepareLogo shrinks and grays an image for the thermal printer and returns
// it as a data URI ready for an <img> tag.
func PrepareLogo(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode logo: %w", err)
	}

	var out image.Image = img
	b := img.Bounds()
	if b.Dx() > logoMaxWidth || b.Dy() > logoMaxHeight {
		out = imaging.Fit(img, logoMaxWidth, logoMaxHeight, imaging.Lanczos)
	}
	out = imaging.Grayscale(out)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: logoQuality}); err != nil {
		return "", fmt.Errorf("failed to encode logo: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// LoadLogo reads and prepares the logo at path. An empty path means no logo.
func LoadLogo(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	return PrepareLogo(data)
}
