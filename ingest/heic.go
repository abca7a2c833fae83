package ingest

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/jdeng/goheif"
	"github.com/strukturag/libheif/go/heif"
)

// JPEGQuality is the encode quality used for transcoded images,
// matching the 90% the upload flow has always produced.
const JPEGQuality = 90

// Transcoder converts HEIC bytes to JPEG bytes
type Transcoder interface {
	Name() string
	Transcode(src []byte) ([]byte, error)
}

// DefaultCodecs returns the transcoders tried in order: goheif first,
// then the libheif binding as an independent fallback.
func DefaultCodecs() []Transcoder {
	return []Transcoder{goheifCodec{}, libheifCodec{}}
}

type goheifCodec struct{}

func (goheifCodec) Name() string { return "goheif" }

func (goheifCodec) Transcode(src []byte) ([]byte, error) {
	img, err := goheif.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("goheif decode failed: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

type libheifCodec struct{}

func (libheifCodec) Name() string { return "libheif" }

func (libheifCodec) Transcode(src []byte) ([]byte, error) {
	ctx, err := heif.NewContext()
	if err != nil {
		return nil, fmt.Errorf("libheif context failed: %w", err)
	}
	if err := ctx.ReadFromMemory(src); err != nil {
		return nil, fmt.Errorf("libheif read failed: %w", err)
	}
	handle, err := ctx.GetPrimaryImageHandle()
	if err != nil {
		return nil, fmt.Errorf("libheif primary image failed: %w", err)
	}
	heifImg, err := handle.DecodeImage(heif.ColorspaceUndefined, heif.ChromaUndefined, nil)
	if err != nil {
		return nil, fmt.Errorf("libheif decode failed: %w", err)
	}
	img, err := heifImg.GetImage()
	if err != nil {
		return nil, fmt.Errorf("libheif image conversion failed: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}
