package main

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/lightscale"
)

func TestRenderPlot(t *testing.T) {
	img, err := renderPlot(lightscale.New(255, 255, false, 2.2), 400, 300)
	require.NoError(t, err)

	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
	assert.Equal(t, plotBackground, img.RGBAAt(399, 299))

	// Something other than the background is drawn inside the plot area.
	drawn := 0
	for y := plotMarginTop; y < 300-plotMarginBottom; y++ {
		for x := plotMarginLeft; x < 400-plotMarginRight; x++ {
			if img.RGBAAt(x, y) != plotBackground {
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, 500)
}

func TestPlotArea_point(t *testing.T) {
	area := plotArea{rect: image.Rect(10, 20, 110, 220), maxX: 255, minY: -10, maxY: 90}

	x, y := area.point(0, -10)
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(220), y)

	x, y = area.point(255, 90)
	assert.Equal(t, float32(110), x)
	assert.Equal(t, float32(20), y)
}

func TestRenderPlot_errors(t *testing.T) {
	_, err := renderPlot(lightscale.New(255, 255, false, 2.2), 100, 300)
	assert.ErrorIs(t, err, errUsage)

	_, err = renderPlot(lightscale.Identity(), 300, 300)
	assert.EqualError(t, err, "plot: scale has no input range")
}
