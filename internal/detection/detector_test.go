package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func TestFlattenPredictionsBatchedOutput(t *testing.T) {
	m := gocv.NewMatWithSizes([]int{1, 6, 85}, gocv.MatTypeCV32F)
	defer m.Close()

	flat := flattenPredictions(m)
	defer flat.Close()

	assert.Equal(t, 6, flat.Rows())
	assert.Equal(t, 85, flat.Cols())
}

func TestFlattenPredictionsPlainOutput(t *testing.T) {
	m := gocv.NewMatWithSize(6, 85, gocv.MatTypeCV32F)
	defer m.Close()

	flat := flattenPredictions(m)
	defer flat.Close()

	assert.Equal(t, 6, flat.Rows())
	assert.Equal(t, 85, flat.Cols())
}
