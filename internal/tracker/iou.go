package tracker

import (
	"sort"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

// iouTrack is the tracker-internal state for one identity.
type iouTrack struct {
	id       int64
	box      models.BBox
	lastSeen int64
}

// IoUTracker is the built-in assignment algorithm: greedy
// intersection-over-union matching between the previous frame's boxes
// and the current detections. Good enough for road scenes where frame-
// to-frame displacement is small relative to box size.
type IoUTracker struct {
	iouThreshold float64
	maxMisses    int64

	nextID int64
	tracks []*iouTrack
}

// NewIoUTracker creates a tracker. Detections overlapping a known track
// by at least iouThreshold inherit its identity; tracks unmatched for
// more than maxMisses frames are dropped.
func NewIoUTracker(iouThreshold float64, maxMisses int64) *IoUTracker {
	return &IoUTracker{
		iouThreshold: iouThreshold,
		maxMisses:    maxMisses,
		nextID:       1,
	}
}

type candidate struct {
	trackIdx int
	detIdx   int
	iou      float64
}

// NextFrame associates detections with existing tracks, spawns new
// tracks for the rest, and drops stale ones.
func (t *IoUTracker) NextFrame(frameIndex int64, detections []models.Detection) []models.TrackedDetection {
	// Score every track/detection pair above the threshold, best first.
	var candidates []candidate
	for ti, tr := range t.tracks {
		for di, det := range detections {
			if iou := tr.box.IoU(det.Box); iou >= t.iouThreshold {
				candidates = append(candidates, candidate{trackIdx: ti, detIdx: di, iou: iou})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].iou > candidates[j].iou })

	assignedTrack := make(map[int]bool, len(t.tracks))
	assignedDet := make(map[int]int64, len(detections))
	for _, c := range candidates {
		if assignedTrack[c.trackIdx] {
			continue
		}
		if _, taken := assignedDet[c.detIdx]; taken {
			continue
		}
		tr := t.tracks[c.trackIdx]
		tr.box = detections[c.detIdx].Box
		tr.lastSeen = frameIndex
		assignedTrack[c.trackIdx] = true
		assignedDet[c.detIdx] = tr.id
	}

	out := make([]models.TrackedDetection, len(detections))
	for di, det := range detections {
		id, matched := assignedDet[di]
		if !matched {
			id = t.nextID
			t.nextID++
			t.tracks = append(t.tracks, &iouTrack{id: id, box: det.Box, lastSeen: frameIndex})
		}
		out[di] = models.TrackedDetection{Detection: det, TrackID: id, HasID: true}
	}

	t.dropStale(frameIndex)
	return out
}

// dropStale removes tracks unmatched for longer than maxMisses frames.
func (t *IoUTracker) dropStale(frameIndex int64) {
	kept := t.tracks[:0]
	for _, tr := range t.tracks {
		if frameIndex-tr.lastSeen <= t.maxMisses {
			kept = append(kept, tr)
		}
	}
	t.tracks = kept
}

// ActiveTracks returns the number of identities currently maintained.
func (t *IoUTracker) ActiveTracks() int {
	return len(t.tracks)
}
