package app

import (
	"image/color"

	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/types"
)

// 界面配色
var (
	colorBackground = color.RGBA{R: 18, G: 20, B: 28, A: 255}
	colorSidebar    = color.RGBA{R: 28, G: 31, B: 42, A: 255}
	colorEmptyCell  = color.RGBA{R: 40, G: 44, B: 58, A: 255}
	colorText       = color.RGBA{R: 230, G: 232, B: 240, A: 255}
	colorDimText    = color.RGBA{R: 140, G: 146, B: 165, A: 255}
	colorHighlight  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorShadow     = color.RGBA{R: 90, G: 170, B: 255, A: 110}
)

// kindColors 每种物体的填充色
var kindColors = map[types.ThingKind]color.RGBA{
	types.Iron:            {R: 150, G: 155, B: 165, A: 255},
	types.Oil:             {R: 60, G: 50, B: 45, A: 255},
	types.Crystal:         {R: 120, G: 210, B: 230, A: 255},
	types.Aerofoam:        {R: 235, G: 220, B: 170, A: 255},
	types.Base:            {R: 200, G: 80, B: 70, A: 255},
	types.WardenOutpost:   {R: 90, G: 160, B: 90, A: 255},
	types.CommsTower:      {R: 170, G: 110, B: 200, A: 255},
	types.ArsenicScrubber: {R: 110, G: 180, B: 150, A: 255},
	types.Lorem:           {R: 200, G: 150, B: 90, A: 255},
	types.Ipsum:           {R: 180, G: 130, B: 80, A: 255},
	types.Dolor:           {R: 90, G: 120, B: 190, A: 255},
	types.Sit:             {R: 210, G: 170, B: 60, A: 255},
	types.Amet:            {R: 160, G: 90, B: 120, A: 255},
}

// kindColor 物体的填充色，Nothing 为空格子颜色
func kindColor(kind types.ThingKind) color.RGBA {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return colorEmptyCell
}

// previewColor 悬停提示的半透明颜色
// 返回 false 表示不需要绘制提示
func previewColor(status game.PreviewStatus) (color.RGBA, bool) {
	switch status {
	case game.PreviewFits, game.PreviewMatches:
		return color.RGBA{R: 80, G: 220, B: 120, A: 120}, true
	case game.PreviewMismatch:
		return color.RGBA{R: 240, G: 160, B: 60, A: 120}, true
	case game.PreviewNoFit:
		return color.RGBA{R: 230, G: 70, B: 70, A: 120}, true
	default:
		return color.RGBA{}, false
	}
}
