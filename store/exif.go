package store

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"github.com/tknie/log"
)

const (
	gpsLatitudeKey  = "GPSLatitude"
	gpsLongitudeKey = "GPSLongitude"
)

// ExifReader reads EXIF metadata of TIFF based raw and still image files
type ExifReader struct {
	FS billy.Filesystem
}

// NewExifReader new EXIF reader working on the given filesystem
func NewExifReader(fs billy.Filesystem) *ExifReader {
	return &ExifReader{FS: fs}
}

// Walker collects all EXIF tags into a metadata record
type Walker struct {
	md Metadata
}

// ReadMetadata decodes the EXIF data of the given file
func (r *ExifReader) ReadMetadata(_ context.Context, path string) (Metadata, error) {
	log.Log.Debugf("Exif reader %s", path)
	f, err := r.FS.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		log.Log.Debugf("Exif decode error: %v", err)
		return nil, errors.Wrapf(err, "exif decode %s", path)
	}
	w := &Walker{md: Metadata{}}
	err = x.Walk(w)
	if err != nil {
		log.Log.Errorf("Exif reader error (%s): %v", path, err)
		return nil, errors.Wrapf(err, "exif walk %s", path)
	}
	lat, long, err := x.LatLong()
	if err != nil {
		log.Log.Debugf("Exif GPS error (%s): %v", path, err)
	} else {
		w.md[gpsLatitudeKey] = lat
		w.md[gpsLongitudeKey] = long
	}
	return w.md, nil
}

func trimValue(in string) string {
	v := strings.TrimRight(in, "\x00")
	v = strings.Trim(v, "\"")
	return strings.TrimSpace(v)
}

// Walk exif.Walker callback for every tag found
func (w *Walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.md[string(name)] = tagValue(tag)
	return nil
}

func tagValue(tag *tiff.Tag) any {
	if tag.Count != 1 {
		if tag.Format() == tiff.StringVal {
			if s, err := tag.StringVal(); err == nil {
				return trimValue(s)
			}
		}
		return trimValue(tag.String())
	}
	switch tag.Format() {
	case tiff.IntVal:
		if v, err := tag.Int64(0); err == nil {
			return v
		}
	case tiff.FloatVal:
		if v, err := tag.Float(0); err == nil {
			return v
		}
	case tiff.RatVal:
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			return float64(num) / float64(den)
		}
	case tiff.StringVal:
		if s, err := tag.StringVal(); err == nil {
			return trimValue(s)
		}
	}
	return trimValue(tag.String())
}
