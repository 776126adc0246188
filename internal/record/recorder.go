// Package record writes lattice frames into MJPEG AVI files.
package record

import (
	"bytes"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"github.com/juju/errors"

	"forestfire/internal/render"
)

// Recorder encodes one JPEG frame per call to AddFrame.
type Recorder struct {
	w, h   int
	scale  int
	aw     mjpeg.AviWriter
	buf    bytes.Buffer
	opts   jpeg.Options
	frames int
}

// New creates path and prepares a w×h lattice video where each cell is
// scale pixels wide.
func New(path string, w, h, scale, fps int) (*Recorder, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.NotValidf("frame size %dx%d", w, h)
	}
	if scale <= 0 {
		return nil, errors.NotValidf("scale %d", scale)
	}
	if fps <= 0 {
		return nil, errors.NotValidf("fps %d", fps)
	}
	aw, err := mjpeg.New(path, int32(w*scale), int32(h*scale), int32(fps))
	if err != nil {
		return nil, errors.Annotatef(err, "create %s", path)
	}
	return &Recorder{w: w, h: h, scale: scale, aw: aw, opts: jpeg.Options{Quality: 90}}, nil
}

// AddFrame renders cells with the forest palette and appends the frame.
func (r *Recorder) AddFrame(cells []uint8) error {
	if len(cells) != r.w*r.h {
		return errors.NotValidf("frame with %d cells for %dx%d lattice", len(cells), r.w, r.h)
	}
	img := render.Frame(cells, r.w, r.h, r.scale, render.ForestPalette())
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &r.opts); err != nil {
		return errors.Annotate(err, "encode frame")
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return errors.Annotatef(err, "add frame %d", r.frames)
	}
	r.frames++
	return nil
}

// Frames reports how many frames were written.
func (r *Recorder) Frames() int { return r.frames }

// Close finalises the AVI index.
func (r *Recorder) Close() error {
	return errors.Trace(r.aw.Close())
}
