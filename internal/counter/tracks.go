package counter

import (
	"github.com/rs/zerolog"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

// TrackState is the lifecycle state of a track.
type TrackState string

const (
	TrackStateNew     TrackState = "new"
	TrackStateActive  TrackState = "active"
	TrackStateCounted TrackState = "counted"
	TrackStateExpired TrackState = "expired"
)

// Track is the engine-owned record for one tracker identity: a bounded
// centroid history, label votes for category assignment, and the
// at-most-once counted flag.
type Track struct {
	ID       int64
	State    TrackState
	History  []models.Point
	Counted  bool
	LastSeen int64

	labelVotes map[string]int
	labelOrder []string
}

// vote registers one observed raw label.
func (t *Track) vote(label string) {
	if _, seen := t.labelVotes[label]; !seen {
		t.labelOrder = append(t.labelOrder, label)
	}
	t.labelVotes[label]++
}

// majorityLabel returns the most frequently observed raw label, ties
// broken by earliest observation, so one misclassified frame cannot
// mis-tag the whole track.
func (t *Track) majorityLabel() string {
	best := ""
	bestVotes := 0
	for _, label := range t.labelOrder {
		if t.labelVotes[label] > bestVotes {
			best = label
			bestVotes = t.labelVotes[label]
		}
	}
	return best
}

// TrackManager owns all per-identity state across frames: creation,
// history updates, crossing evaluation, and expiry. It guarantees at most
// one crossing event per identity.
type TrackManager struct {
	line         Line
	classifier   *Classifier
	historyLen   int
	expiryFrames int64

	tracks map[int64]*Track
	log    zerolog.Logger
}

// NewTrackManager creates a manager for one analysis stream.
func NewTrackManager(line Line, classifier *Classifier, historyLen int, expiryFrames int64, log zerolog.Logger) *TrackManager {
	if historyLen < 2 {
		historyLen = 2
	}
	return &TrackManager{
		line:         line,
		classifier:   classifier,
		historyLen:   historyLen,
		expiryFrames: expiryFrames,
		tracks:       make(map[int64]*Track),
		log:          log,
	}
}

// Observe folds one identified detection into its track and returns a
// crossing event if this observation completed a counted crossing.
// Second is filled in by the caller, which knows the frame rate.
func (m *TrackManager) Observe(frameIndex int64, det models.TrackedDetection) *models.CrossingEvent {
	track, ok := m.tracks[det.TrackID]
	if !ok {
		track = &Track{
			ID:         det.TrackID,
			State:      TrackStateNew,
			labelVotes: make(map[string]int),
		}
		m.tracks[det.TrackID] = track
	} else if track.State != TrackStateCounted {
		// Counted is terminal until expiry.
		track.State = TrackStateActive
	}

	track.History = append(track.History, det.Box.Center())
	if len(track.History) > m.historyLen {
		track.History = track.History[len(track.History)-m.historyLen:]
	}
	track.vote(det.Label)
	track.LastSeen = frameIndex

	if track.Counted || !m.line.Evaluate(track.History) {
		return nil
	}

	track.Counted = true
	track.State = TrackStateCounted
	category := m.classifier.Classify(track.majorityLabel())

	m.log.Debug().
		Int64("track_id", track.ID).
		Str("category", string(category)).
		Int64("frame", frameIndex).
		Msg("Track crossed counting line")

	return &models.CrossingEvent{
		Category:   category,
		FrameIndex: frameIndex,
		TrackID:    track.ID,
	}
}

// Expire evicts tracks unseen for more than the configured frame limit
// and returns how many were removed. Counted tracks are retained until
// they expire naturally, so a tracker re-assigning the same identity
// after a short flicker cannot produce a second count.
func (m *TrackManager) Expire(frameIndex int64) int {
	expired := 0
	for id, track := range m.tracks {
		if frameIndex-track.LastSeen > m.expiryFrames {
			track.State = TrackStateExpired
			delete(m.tracks, id)
			expired++
		}
	}
	return expired
}

// ActiveCount returns the number of live tracks.
func (m *TrackManager) ActiveCount() int {
	return len(m.tracks)
}
