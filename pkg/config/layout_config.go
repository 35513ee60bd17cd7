package config

// 布局配置常量
// 本文件定义了窗口、地图区域和侧边栏的布局参数
// 所有坐标均为逻辑屏幕坐标（ebiten Layout 返回的尺寸）

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 1280

	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 720

	// WorldViewRatio 地图区域占屏幕宽度的比例，其余为侧边栏
	WorldViewRatio = 0.7

	// WorldFillRatio 地图在地图区域中最多占用的比例（留出边距）
	WorldFillRatio = 0.9

	// CellPadding 格子之间的间隙（像素）
	CellPadding = 2.0

	// ScoreboardHeight 侧边栏顶部计分板高度
	ScoreboardHeight = 50.0

	// QueueSpacing 资源预览中相邻格子的间距
	QueueSpacing = 40.0

	// QueueSlotSize 资源预览格子大小
	QueueSlotSize = 32.0

	// QueueAnimationTicks 取走资源后预览滑动动画的帧数
	QueueAnimationTicks = 15

	// SchematicCellSize 图纸册中每个图纸格子的大小
	SchematicCellSize = 25.0

	// SchematicEntryGap 图纸册相邻条目之间的垂直间距
	SchematicEntryGap = 12.0

	// SidebarMargin 侧边栏内容的左右边距
	SidebarMargin = 16.0
)

// WorldViewWidth 地图区域宽度
func WorldViewWidth() float64 {
	return ScreenWidth * WorldViewRatio
}

// SidebarX 侧边栏左边界
func SidebarX() float64 {
	return WorldViewWidth()
}

// CalculateCellSize 计算地图格子大小，使整个地图在地图区域内等比缩放
//
// 参数：
//   - gridWidth, gridHeight: 地图的列数和行数
//
// 返回：
//   - cellSize: 正方形格子的边长
//   - originX, originY: 地图左上角的屏幕坐标（在地图区域中居中）
func CalculateCellSize(gridWidth, gridHeight int) (cellSize, originX, originY float64) {
	if gridWidth <= 0 || gridHeight <= 0 {
		return 0, 0, 0
	}

	areaW := WorldViewWidth() * WorldFillRatio
	areaH := ScreenHeight * WorldFillRatio
	cellSize = min(areaW/float64(gridWidth), areaH/float64(gridHeight))

	originX = (WorldViewWidth() - cellSize*float64(gridWidth)) / 2
	originY = (ScreenHeight - cellSize*float64(gridHeight)) / 2
	return cellSize, originX, originY
}
