// Package detection provides the collaborators that feed the counting
// engine: a sequential video frame source and a DNN vehicle detector.
// Everything downstream of this package works on plain detection
// batches, so other detectors (or pre-computed detection streams over
// the API) plug in without touching the engine.
package detection

import (
	"fmt"

	"gocv.io/x/gocv"
)

// VideoSource reads frames sequentially from a video file or stream.
type VideoSource struct {
	cap        *gocv.VideoCapture
	source     string
	fps        float64
	width      int
	height     int
	frameCount int64
	index      int64
}

// OpenVideoSource opens a video file or RTSP URL and probes its
// properties.
func OpenVideoSource(source string) (*VideoSource, error) {
	cap, err := gocv.OpenVideoCaptureWithAPI(source, gocv.VideoCaptureFFmpeg)
	if err != nil {
		return nil, fmt.Errorf("open video source %s: %w", source, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("video source %s did not open", source)
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 25 // streams without an FPS header get a sane default
	}

	return &VideoSource{
		cap:        cap,
		source:     source,
		fps:        fps,
		width:      int(cap.Get(gocv.VideoCaptureFrameWidth)),
		height:     int(cap.Get(gocv.VideoCaptureFrameHeight)),
		frameCount: int64(cap.Get(gocv.VideoCaptureFrameCount)),
	}, nil
}

// FPS returns the probed frame rate.
func (s *VideoSource) FPS() float64 { return s.fps }

// Width returns the frame width in pixels.
func (s *VideoSource) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *VideoSource) Height() int { return s.height }

// FrameCount returns the total frame count, 0 for live streams.
func (s *VideoSource) FrameCount() int64 { return s.frameCount }

// Next reads the next frame into img and returns its index. ok is false
// at end of stream.
func (s *VideoSource) Next(img *gocv.Mat) (index int64, ok bool) {
	if !s.cap.Read(img) || img.Empty() {
		return s.index, false
	}
	index = s.index
	s.index++
	return index, true
}

// Close releases the capture.
func (s *VideoSource) Close() error {
	return s.cap.Close()
}
