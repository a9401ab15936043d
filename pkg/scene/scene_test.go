package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireroute/pkg/geom"
)

const sampleDocument = `{
	"boxes": [{"center_x": 5, "center_y": 5, "half_w": 1, "half_h": 1}],
	"anchors": [
		{"x": 3, "y": 5, "box": 0, "directions": ["-x"]},
		{"x": 7, "y": 5, "box": 0, "directions": ["+x"]}
	],
	"nets": [
		{"endpoints": [{"x": 3, "y": 5}, {"x": 7, "y": 5}]}
	],
	"minimal": true
}`

func TestLoadParsesBoxesAnchorsNets(t *testing.T) {
	sc, err := Load(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	require.Len(t, sc.Boxes, 1)
	assert.Equal(t, geom.Box{CenterX: 5, CenterY: 5, HalfW: 1, HalfH: 1}, sc.Boxes[0])

	require.Len(t, sc.Anchors, 2)
	assert.Equal(t, geom.Index(0), sc.Anchors[0].Box)
	assert.Equal(t, geom.DirSet(geom.DirNegX), sc.Anchors[0].ConnectDirections)

	require.Len(t, sc.Nets, 1)
	require.Len(t, sc.Nets[0].Endpoints, 2)
	assert.Equal(t, geom.Point{X: 3, Y: 5}, sc.Nets[0].Endpoints[0].Position)
	assert.True(t, sc.Minimal)
}

func TestLoadDefaultsToAllDirections(t *testing.T) {
	doc := `{"boxes": [], "anchors": [{"x": 0, "y": 0}], "nets": []}`
	sc, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sc.Anchors, 1)
	assert.Equal(t, geom.AllDirections, sc.Anchors[0].ConnectDirections)
}

func TestLoadRejectsOutOfRangeBoxReference(t *testing.T) {
	doc := `{"boxes": [], "anchors": [{"x": 0, "y": 0, "box": 3}], "nets": []}`
	_, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDirection(t *testing.T) {
	doc := `{"boxes": [], "anchors": [{"x": 0, "y": 0, "directions": ["north"]}], "nets": []}`
	_, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}
