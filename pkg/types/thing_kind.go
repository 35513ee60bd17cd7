// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// ThingKind 定义格子里可以放置的物体类型
// 零值 Nothing 表示空格子；在建筑图纸中表示"不关心"的格子
type ThingKind int

const (
	// Nothing 空格子 / 图纸中的任意格
	Nothing ThingKind = iota

	// 资源
	Iron
	Oil
	Crystal
	Aerofoam

	// 建筑
	Base
	WardenOutpost
	CommsTower
	ArsenicScrubber
	Lorem
	Ipsum
	Dolor
	Sit
	Amet

	thingKindCount // sentinel
)

var thingKindNames = [thingKindCount]string{
	Nothing:         "Nothing",
	Iron:            "Iron",
	Oil:             "Oil",
	Crystal:         "Crystal",
	Aerofoam:        "Aerofoam",
	Base:            "Base",
	WardenOutpost:   "WardenOutpost",
	CommsTower:      "CommsTower",
	ArsenicScrubber: "ArsenicScrubber",
	Lorem:           "Lorem",
	Ipsum:           "Ipsum",
	Dolor:           "Dolor",
	Sit:             "Sit",
	Amet:            "Amet",
}

// String 返回物体类型的稳定标识符
func (k ThingKind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return thingKindNames[k]
}

// Valid 检查是否为已定义的类型（包括 Nothing）
func (k ThingKind) Valid() bool {
	return k >= Nothing && k < thingKindCount
}

// IsNothing 是否为空
func (k ThingKind) IsNothing() bool {
	return k == Nothing
}

// IsResource 是否为资源类型
func (k ThingKind) IsResource() bool {
	return k >= Iron && k <= Aerofoam
}

// IsBuilding 是否为建筑类型
func (k ThingKind) IsBuilding() bool {
	return k >= Base && k < thingKindCount
}

// ParseThingKind 根据标识符查找类型
// 返回：类型以及是否找到
func ParseThingKind(name string) (ThingKind, bool) {
	for k, n := range thingKindNames {
		if n == name {
			return ThingKind(k), true
		}
	}
	return Nothing, false
}

// AllThingKinds 按定义顺序返回除 Nothing 以外的全部类型
func AllThingKinds() []ThingKind {
	kinds := make([]ThingKind, 0, thingKindCount-1)
	for k := Nothing + 1; k < thingKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

var thingKindCodes = [thingKindCount]string{
	Nothing:         "..",
	Iron:            "Fe",
	Oil:             "Oi",
	Crystal:         "Cr",
	Aerofoam:        "Af",
	Base:            "BS",
	WardenOutpost:   "WO",
	CommsTower:      "CT",
	ArsenicScrubber: "AS",
	Lorem:           "LO",
	Ipsum:           "IP",
	Dolor:           "DO",
	Sit:             "SI",
	Amet:            "AM",
}

// Code 两个字符的短代码，用于文本渲染（终端界面、棋盘转储）
// 资源首字母大写、其余小写；建筑全大写；空格子为 ".."
func (k ThingKind) Code() string {
	if !k.Valid() {
		return "??"
	}
	return thingKindCodes[k]
}
