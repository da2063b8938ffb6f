package detection

import (
	"fmt"
	"image"
	"os"
	"strings"

	"gocv.io/x/gocv"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

// Detector produces per-frame detections. Confidence filtering happens
// here: the counting engine never re-filters.
type Detector interface {
	Detect(img gocv.Mat, frameIndex int64) ([]models.Detection, error)
	Close() error
}

// cocoNames is the standard 80-class COCO vocabulary most YOLO exports
// are trained on, used when no names file is configured.
var cocoNames = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck",
	"boat", "traffic light", "fire hydrant", "stop sign", "parking meter", "bench",
	"bird", "cat", "dog", "horse", "sheep", "cow", "elephant", "bear", "zebra",
	"giraffe", "backpack", "umbrella", "handbag", "tie", "suitcase", "frisbee",
	"skis", "snowboard", "sports ball", "kite", "baseball bat", "baseball glove",
	"skateboard", "surfboard", "tennis racket", "bottle", "wine glass", "cup",
	"fork", "knife", "spoon", "bowl", "banana", "apple", "sandwich", "orange",
	"broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair", "couch",
	"potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
	"refrigerator", "book", "clock", "vase", "scissors", "teddy bear",
	"hair drier", "toothbrush",
}

// vehicleClasses is the label subset the detector reports; everything
// else in the model vocabulary is dropped before it reaches the engine.
var vehicleClasses = map[string]bool{
	"bicycle":    true,
	"car":        true,
	"motorcycle": true,
	"bus":        true,
	"train":      true,
	"truck":      true,
}

// DNNDetector runs a YOLO-style network through gocv's DNN module.
type DNNDetector struct {
	net        gocv.Net
	inputSize  int
	threshold  float32
	classNames []string
}

// NewDNNDetector loads the network. configPath and namesPath may be
// empty (ONNX exports embed their graph; the COCO vocabulary is the
// default).
func NewDNNDetector(modelPath, configPath, namesPath string, inputSize int, threshold float32) (*DNNDetector, error) {
	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("load detection network from %s", modelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	classNames := cocoNames
	if namesPath != "" {
		raw, err := os.ReadFile(namesPath)
		if err != nil {
			net.Close()
			return nil, fmt.Errorf("read class names %s: %w", namesPath, err)
		}
		classNames = strings.Split(strings.TrimSpace(string(raw)), "\n")
	}

	if inputSize <= 0 {
		inputSize = 640
	}

	return &DNNDetector{
		net:        net,
		inputSize:  inputSize,
		threshold:  threshold,
		classNames: classNames,
	}, nil
}

// Detect runs one frame through the network and returns vehicle
// detections above the confidence threshold, NMS-deduplicated.
func (d *DNNDetector) Detect(img gocv.Mat, frameIndex int64) ([]models.Detection, error) {
	blob := gocv.BlobFromImage(img, 1.0/255.0, image.Pt(d.inputSize, d.inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	raw := d.net.Forward("")
	defer raw.Close()

	// ONNX exports commonly emit a batched [1,N,C] tensor; the row loop
	// wants [N,C].
	output := flattenPredictions(raw)
	defer output.Close()

	scaleX := float32(img.Cols()) / float32(d.inputSize)
	scaleY := float32(img.Rows()) / float32(d.inputSize)

	var boxes []image.Rectangle
	var scores []float32
	var labels []string

	for i := 0; i < output.Rows(); i++ {
		row := output.RowRange(i, i+1)
		classScores := row.ColRange(5, row.Cols())
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(classScores)
		classScores.Close()

		confidence := float32(maxVal) * row.GetFloatAt(0, 4)
		classID := maxLoc.X
		if confidence < d.threshold || classID >= len(d.classNames) {
			row.Close()
			continue
		}

		label := d.classNames[classID]
		if !vehicleClasses[label] {
			row.Close()
			continue
		}

		cx := row.GetFloatAt(0, 0) * float32(d.inputSize) * scaleX
		cy := row.GetFloatAt(0, 1) * float32(d.inputSize) * scaleY
		w := row.GetFloatAt(0, 2) * float32(d.inputSize) * scaleX
		h := row.GetFloatAt(0, 3) * float32(d.inputSize) * scaleY
		row.Close()

		boxes = append(boxes, image.Rect(
			int(cx-w/2), int(cy-h/2), int(cx+w/2), int(cy+h/2)))
		scores = append(scores, confidence)
		labels = append(labels, label)
	}

	indices := gocv.NMSBoxes(boxes, scores, d.threshold, 0.45)

	detections := make([]models.Detection, 0, len(indices))
	for _, idx := range indices {
		r := boxes[idx]
		detections = append(detections, models.Detection{
			Box: models.BBox{
				X1: float64(r.Min.X), Y1: float64(r.Min.Y),
				X2: float64(r.Max.X), Y2: float64(r.Max.Y),
			},
			Label:      labels[idx],
			Score:      scores[idx],
			FrameIndex: frameIndex,
		})
	}
	return detections, nil
}

// flattenPredictions returns a [N,C] view of the network output,
// collapsing a leading batch dimension of 1 when present. The returned
// header shares the output's data and must be closed.
func flattenPredictions(output gocv.Mat) gocv.Mat {
	sizes := output.Size()
	if len(sizes) == 3 && sizes[0] == 1 {
		return output.Reshape(1, sizes[1])
	}
	return output.Reshape(1, sizes[0])
}

// Close releases the network.
func (d *DNNDetector) Close() error {
	return d.net.Close()
}
