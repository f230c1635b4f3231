package qrsvg

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEyePlacement(t *testing.T) {
	zones := eyePlacement(21, 0, 10)
	require.Len(t, zones.origins, 3)
	assert.Equal(t, [2]int{0, 0}, zones.origins[0])
	assert.Equal(t, [2]int{14, 0}, zones.origins[1])
	assert.Equal(t, [2]int{0, 14}, zones.origins[2])

	assert.True(t, zones.region(0, 0))
	assert.True(t, zones.region(6, 6))
	assert.False(t, zones.region(7, 7))
	assert.True(t, zones.region(14, 0))
	assert.True(t, zones.region(20, 6))
	assert.True(t, zones.region(0, 20))
	assert.False(t, zones.region(10, 10))
}

func TestEyePlacementQuietZone(t *testing.T) {
	zones := eyePlacement(25, 2, 10)
	require.Len(t, zones.origins, 3)
	assert.Equal(t, [2]int{2, 2}, zones.origins[0])
	assert.Equal(t, [2]int{16, 2}, zones.origins[1])
	assert.Equal(t, [2]int{2, 16}, zones.origins[2])
	assert.False(t, zones.region(0, 0), "the quiet zone carries no eye")
}

func TestEyePlacementTooSmall(t *testing.T) {
	zones := eyePlacement(10, 0, 10)
	assert.Empty(t, zones.origins)
	assert.False(t, zones.region(0, 0))
}

func TestAddServer(t *testing.T) {
	doc := &Document{}
	named := &Gradient{ID: "brand"}
	assert.Equal(t, "brand", doc.addServer(named))
	assert.Equal(t, "brand", doc.addServer(named))
	assert.Len(t, doc.defs, 1)

	anon := &Gradient{}
	id := doc.addServer(anon)
	assert.Equal(t, "grad2", id)
	assert.Equal(t, id, doc.addServer(anon), "anonymous servers dedup by instance")
	assert.Len(t, doc.defs, 2)
	assert.Empty(t, anon.ID, "the caller's gradient is not mutated")
}

func TestAddServerGeneratedIDCollision(t *testing.T) {
	doc := &Document{}
	named := &Gradient{ID: "grad2"}
	assert.Equal(t, "grad2", doc.addServer(named))

	// the generated id skips over the taken one
	anon := &Gradient{}
	id := doc.addServer(anon)
	assert.Equal(t, "grad3", id)
	require.Len(t, doc.defs, 2)
	assert.NotEqual(t, doc.defs[0].id, doc.defs[1].id)
}

func TestResolveOpacity(t *testing.T) {
	doc := &Document{}
	attrs := doc.resolve(LayerStyle{Fill: NewPlainColor(10, 20, 30, 255)})
	assert.Equal(t, "#0a141e", attrs.Fill)
	assert.Equal(t, 1.0, attrs.Opacity)

	attrs = doc.resolve(LayerStyle{Fill: NewPlainColor(0, 0, 0, 255), Opacity: 0.5})
	assert.InDelta(t, 0.5, attrs.Opacity, 1e-9)

	// the color alpha folds into the opacity
	attrs = doc.resolve(LayerStyle{Fill: NewPlainColor(0, 0, 0, 51), Opacity: 0.5})
	assert.InDelta(t, 0.1, attrs.Opacity, 1e-9)
}

func validPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestPrepareLogoGeometry(t *testing.T) {
	logo := &LogoTemplate{Image: validPNG(t)}
	layer, region := prepareLogo(logo, 200, 200.0/20)
	require.NotNil(t, layer)
	// the default mask covers the centered 30% of the document
	assert.InDelta(t, 70, layer.x, 1e-6)
	assert.InDelta(t, 70, layer.y, 1e-6)
	assert.InDelta(t, 60, layer.w, 1e-6)
	assert.InDelta(t, 60, layer.h, 1e-6)
	assert.Equal(t, "image/png", layer.mime)

	// module centers inside and outside the footprint (cell = 10)
	assert.True(t, region(9, 9))
	assert.False(t, region(0, 0))
	assert.False(t, region(19, 19))
}

func TestPrepareLogoInset(t *testing.T) {
	logo := &LogoTemplate{Image: validPNG(t), Inset: 0.5}
	layer, _ := prepareLogo(logo, 200, 10)
	require.NotNil(t, layer)
	assert.InDelta(t, 85, layer.x, 1e-6)
	assert.InDelta(t, 30, layer.w, 1e-6)
}

func TestPrepareLogoRegionIsBoundingBox(t *testing.T) {
	// a diamond mask: the knockout region is its bounding box, so the
	// bbox corners count as covered even though the outline misses them
	diamond := "M0.5,0.3 L0.7,0.5 L0.5,0.7 L0.3,0.5 Z"
	layer, region := prepareLogoWithMask(t, diamond)
	require.NotNil(t, layer)
	assert.InDelta(t, 60, layer.x, 1e-6)
	assert.InDelta(t, 80, layer.w, 1e-6)

	assert.True(t, region(6, 6), "bbox corner cell is covered")
	assert.True(t, region(10, 10), "center cell is covered")
	assert.False(t, region(5, 5), "cell outside the bbox is not")
}

func TestPrepareLogoDegraded(t *testing.T) {
	layer, region := prepareLogo(nil, 200, 10)
	assert.Nil(t, layer)
	assert.Nil(t, region)

	layer, _ = prepareLogo(&LogoTemplate{Image: []byte("junk")}, 200, 10)
	assert.Nil(t, layer, "undecodable bytes drop the logo")

	layer, _ = prepareLogoWithMask(t, "M0,0 A1 1 0 0 1 1 1")
	assert.Nil(t, layer, "invalid mask geometry drops the logo")
}

func prepareLogoWithMask(t *testing.T, mask string) (*imageLayer, func(int, int) bool) {
	t.Helper()
	return prepareLogo(&LogoTemplate{Image: validPNG(t), MaskPath: mask}, 200, 10)
}
