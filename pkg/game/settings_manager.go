package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// UISettings 界面偏好设置
// 只影响显示，不属于游戏状态
type UISettings struct {
	ShowLabels  bool `yaml:"showLabels"`  // 在格子上显示物体短代码
	ShowPreview bool `yaml:"showPreview"` // 鼠标悬停时高亮预测结果
	Fullscreen  bool `yaml:"fullscreen"`  // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *UISettings {
	return &UISettings{
		ShowLabels:  true,
		ShowPreview: true,
		Fullscreen:  false,
	}
}

// SettingsManager 设置管理器
// 负责界面设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *UISettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "ui"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，此时使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或没有保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时什么也不做（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() UISettings {
	return *sm.settings
}

// ToggleLabels 切换格子标签显示
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) ToggleLabels() bool {
	sm.settings.ShowLabels = !sm.settings.ShowLabels
	return sm.settings.ShowLabels
}

// TogglePreview 切换悬停提示
func (sm *SettingsManager) TogglePreview() bool {
	sm.settings.ShowPreview = !sm.settings.ShowPreview
	return sm.settings.ShowPreview
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
