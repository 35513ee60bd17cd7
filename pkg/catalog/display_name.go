package catalog

import "regexp"

var (
	// "IBMCorp" -> "IBM Corp"
	upperRunBoundary = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
	// "CommsTower" -> "Comms Tower"
	lowerUpperBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// DisplayName 把驼峰标识符拆成带空格的可读名称
// 仅用于界面显示
func DisplayName(identifier string) string {
	s := upperRunBoundary.ReplaceAllString(identifier, "${1} ${2}")
	return lowerUpperBoundary.ReplaceAllString(s, "${1} ${2}")
}
