// Package overlay draws the counting line, detections, and live counts
// onto video frames, and optionally writes the annotated video.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/pointbreak45/Street-Eye/internal/counter"
	"github.com/pointbreak45/Street-Eye/internal/models"
)

// categoryColors matches the chart palette.
var categoryColors = map[models.Category]color.RGBA{
	models.CategoryCar:   {R: 0, G: 200, B: 83, A: 255},
	models.CategoryBike:  {R: 0, G: 184, B: 212, A: 255},
	models.CategoryBus:   {R: 255, G: 214, B: 0, A: 255},
	models.CategoryTruck: {R: 213, G: 0, B: 249, A: 255},
	models.CategoryOther: {R: 158, G: 158, B: 158, A: 255},
}

// CategoryColor returns the overlay color for a category.
func CategoryColor(cat models.Category) color.RGBA {
	if c, ok := categoryColors[cat]; ok {
		return c
	}
	return categoryColors[models.CategoryOther]
}

// DrawText draws text with a dark background rectangle for readability.
func DrawText(mat *gocv.Mat, text string, x, y int, textColor color.RGBA, fontScale float64, thickness int) {
	fontFace := gocv.FontHersheySimplex
	textSize := gocv.GetTextSize(text, fontFace, fontScale, thickness)

	padding := 6
	bgColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}
	bgRect := image.Rect(x-padding, y-textSize.Y-padding, x+textSize.X+padding, y+padding)
	gocv.Rectangle(mat, bgRect, bgColor, -1)

	gocv.PutText(mat, text, image.Pt(x, y), fontFace, fontScale, textColor, thickness)
}

// DrawLine draws the counting line across the frame.
func DrawLine(mat *gocv.Mat, line counter.Line) {
	red := color.RGBA{R: 255, G: 23, B: 68, A: 255}
	pos := int(line.Position)
	if line.Orientation == counter.Vertical {
		gocv.Line(mat, image.Pt(pos, 0), image.Pt(pos, mat.Rows()), red, 2)
	} else {
		gocv.Line(mat, image.Pt(0, pos), image.Pt(mat.Cols(), pos), red, 2)
	}
}

// DrawDetections draws each detection's box, centroid, and identity/
// category label.
func DrawDetections(mat *gocv.Mat, detections []models.TrackedDetection, classifier *counter.Classifier) {
	for _, det := range detections {
		cat := classifier.Classify(det.Label)
		c := CategoryColor(cat)

		box := det.Box
		rect := image.Rect(int(box.X1), int(box.Y1), int(box.X2), int(box.Y2))
		gocv.Rectangle(mat, rect, c, 2)

		center := box.Center()
		gocv.Circle(mat, image.Pt(int(center.X), int(center.Y)), 4, c, -1)

		label := fmt.Sprintf("DET %s", cat)
		if det.HasID {
			label = fmt.Sprintf("ID %d %s", det.TrackID, cat)
		}
		DrawText(mat, label, int(box.X1), int(box.Y1)-8, c, 0.5, 1)
	}
}

// DrawCountPanel draws the running per-category totals in the top left
// corner.
func DrawCountPanel(mat *gocv.Mat, totals map[models.Category]int, mode models.CountingMode) {
	y := 30
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DrawText(mat, fmt.Sprintf("VEHICLE COUNTS [%s]", mode), 15, y, white, 0.7, 2)
	y += 30

	total := 0
	for _, cat := range models.CategoryPriority {
		count := totals[cat]
		total += count
		DrawText(mat, fmt.Sprintf("%s: %d", cat, count), 15, y, CategoryColor(cat), 0.6, 2)
		y += 26
	}

	cyan := color.RGBA{R: 0, G: 255, B: 255, A: 255}
	DrawText(mat, fmt.Sprintf("TOTAL: %d", total), 15, y, cyan, 0.7, 2)
}

// Writer writes annotated frames to an output video file.
type Writer struct {
	vw *gocv.VideoWriter
}

// NewWriter opens the annotated video output.
func NewWriter(path string, fps float64, width, height int) (*Writer, error) {
	vw, err := gocv.VideoWriterFile(path, "avc1", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open annotated video writer %s: %w", path, err)
	}
	return &Writer{vw: vw}, nil
}

// Write appends one annotated frame.
func (w *Writer) Write(mat gocv.Mat) error {
	return w.vw.Write(mat)
}

// Close finishes the output video.
func (w *Writer) Close() error {
	return w.vw.Close()
}
