// Package imaging é o pipeline de fotos: decodifica, reduz para a
// largura máxima e reencoda como JPEG. Roda no processo, então
// imagens muito grandes custam CPU proporcional.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

var ErrNotAnImage = errors.New("payload is not a decodable image")

const dataURLPrefix = "data:image/jpeg;base64,"

// Compress decodifica JPEG, PNG ou WebP, reduz para no máximo
// maxWidth preservando a proporção (nunca amplia) e reencoda JPEG.
func Compress(data []byte, maxWidth, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// o registro padrão não cobre webp
		img, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, ErrNotAnImage
		}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	if quality <= 0 || quality > 100 {
		quality = 75
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressToDataURL produz a forma inline gravada nos documentos.
func CompressToDataURL(data []byte, maxWidth, quality int) (string, error) {
	out, err := Compress(data, maxWidth, quality)
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(out), nil
}

// DecodeDataURL desfaz uma imagem inline "data:image/...;base64,...".
func DecodeDataURL(dataURL string) ([]byte, error) {
	i := strings.Index(dataURL, ";base64,")
	if !strings.HasPrefix(dataURL, "data:image/") || i < 0 {
		return nil, fmt.Errorf("malformed image data URL")
	}
	return base64.StdEncoding.DecodeString(dataURL[i+len(";base64,"):])
}

// FitsBudget informa se o payload cabe no teto por documento.
func FitsBudget(payload string, limit int) bool {
	return limit <= 0 || len(payload) <= limit
}
