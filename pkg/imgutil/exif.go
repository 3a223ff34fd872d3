package imgutil

import (
	"errors"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

var errNoExifDimensions = errors.New("no dimension tags in EXIF")

// exifDimensions reads the pixel dimensions recorded by the camera. The
// EXIF-IFD PixelX/YDimension pair wins over IFD0 ImageWidth/ImageLength,
// which often describe an embedded thumbnail.
func exifDimensions(rs io.ReadSeeker) (int, int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if errorsIsNoExif(err) {
			return 0, 0, errNoExifDimensions
		}
		return 0, 0, err
	}

	var pixelX, pixelY, imageW, imageH int
	for _, tag := range tags {
		v, ok := firstUint(tag.Value)
		if !ok {
			continue
		}
		switch tag.TagName {
		case "PixelXDimension":
			pixelX = v
		case "PixelYDimension":
			pixelY = v
		case "ImageWidth":
			imageW = v
		case "ImageLength":
			imageH = v
		}
	}

	if pixelX > 0 && pixelY > 0 {
		return pixelX, pixelY, nil
	}
	if imageW > 0 && imageH > 0 {
		return imageW, imageH, nil
	}
	return 0, 0, errNoExifDimensions
}

func firstUint(value interface{}) (int, bool) {
	switch v := value.(type) {
	case []uint16:
		if len(v) > 0 {
			return int(v[0]), true
		}
	case []uint32:
		if len(v) > 0 {
			return int(v[0]), true
		}
	}
	return 0, false
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
