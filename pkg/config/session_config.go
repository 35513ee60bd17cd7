package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/embedded"
	"github.com/decker502/tinyspace/pkg/queue"
	"github.com/decker502/tinyspace/pkg/types"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

// DefaultSessionConfigPath 内置的会话配置（位于嵌入的 data/ 目录）
const DefaultSessionConfigPath = "data/session.yaml"

// 默认值
const (
	DefaultGridWidth    = 5
	DefaultGridHeight   = 7
	DefaultQueuePreview = 5
)

// SessionConfig 一局游戏的配置
type SessionConfig struct {
	Grid  GridConfig   `yaml:"grid"`           // 地图尺寸
	Base  *PointConfig `yaml:"base,omitempty"` // 初始基地位置，缺省为地图中心 (size/2)
	Queue QueueConfig  `yaml:"queue"`          // 资源队列参数
	Book  []string     `yaml:"book,omitempty"` // 图纸册中展示的建筑（按顺序），缺省为全部可建造建筑
}

// GridConfig 地图尺寸
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PointConfig 网格坐标
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// QueueConfig 资源队列参数
type QueueConfig struct {
	Multiplicity int   `yaml:"multiplicity"` // 每批中每种资源的数量，默认 5
	Seed         int64 `yaml:"seed"`         // 随机种子，0 表示使用当前时间
	Preview      int   `yaml:"preview"`      // 侧边栏预览的资源个数，默认 5
}

// DefaultSessionConfig 5x7 地图，基地在 (2,3)
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Grid: GridConfig{Width: DefaultGridWidth, Height: DefaultGridHeight},
		Queue: QueueConfig{
			Multiplicity: queue.DefaultMultiplicity,
			Preview:      DefaultQueuePreview,
		},
	}
}

// BasePosition 初始基地位置
func (c *SessionConfig) BasePosition() (x, y int) {
	if c.Base != nil {
		return c.Base.X, c.Base.Y
	}
	return c.Grid.Width / 2, c.Grid.Height / 2
}

// BookKinds 图纸册中的建筑类型
// 名称在 Validate 中已检查过，这里忽略未知名称
func (c *SessionConfig) BookKinds(cat *catalog.Catalog) []types.ThingKind {
	if len(c.Book) == 0 {
		return cat.Buildable()
	}
	kinds := make([]types.ThingKind, 0, len(c.Book))
	for _, name := range c.Book {
		if thing, ok := cat.ByName(name); ok {
			kinds = append(kinds, thing.Kind)
		}
	}
	return kinds
}

//go:embed session.schema.json
var sessionSchemaJSON string

var sessionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("session.schema.json", sessionSchemaJSON)
})

// LoadSessionConfig 加载会话配置
//
// 以 "data/" 开头的路径从嵌入资源读取，其他路径从磁盘读取。
// 文档先按 JSON Schema 校验结构，再做语义校验。
//
// 返回：
//   - *SessionConfig: 填充了默认值的配置
//   - error: 读取、解析或校验失败
func LoadSessionConfig(path string) (*SessionConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session config %s: %w", path, err)
	}
	cfg, err := ParseSessionConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid session config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSessionConfig 解析并校验 YAML 格式的会话配置
func ParseSessionConfig(data []byte) (*SessionConfig, error) {
	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}

	cfg := DefaultSessionConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse session YAML: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(catalog.Default()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	normalized := strings.TrimPrefix(path, "./")
	if strings.HasPrefix(normalized, "data/") && embedded.IsInitialized() {
		if data, err := embedded.ReadFile(normalized); err == nil {
			return data, nil
		}
	}
	return os.ReadFile(path)
}

// validateAgainstSchema YAML -> 通用 JSON 值 -> JSON Schema 校验
func validateAgainstSchema(data []byte) error {
	schema, err := sessionSchema()
	if err != nil {
		return fmt.Errorf("failed to compile session schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse session YAML: %w", err)
	}
	if doc == nil {
		// 空文档等同于全部使用默认值
		doc = map[string]any{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("session YAML is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("failed to re-decode session document: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func (c *SessionConfig) applyDefaults() {
	if c.Queue.Multiplicity == 0 {
		c.Queue.Multiplicity = queue.DefaultMultiplicity
	}
	if c.Queue.Preview == 0 {
		c.Queue.Preview = DefaultQueuePreview
	}
}

// Validate 语义校验：尺寸、基地位置、队列参数、图纸册名称
func (c *SessionConfig) Validate(cat *catalog.Catalog) error {
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height)
	}

	x, y := c.BasePosition()
	if x < 0 || x >= c.Grid.Width || y < 0 || y >= c.Grid.Height {
		return fmt.Errorf("base (%d, %d) is outside the %dx%d grid", x, y, c.Grid.Width, c.Grid.Height)
	}

	if c.Queue.Multiplicity < 1 {
		return fmt.Errorf("queue multiplicity must be at least 1, got %d", c.Queue.Multiplicity)
	}
	if c.Queue.Preview < 0 {
		return fmt.Errorf("queue preview cannot be negative, got %d", c.Queue.Preview)
	}

	seen := mapset.New[string]()
	for _, name := range c.Book {
		thing, ok := cat.ByName(name)
		if !ok {
			return fmt.Errorf("book: unknown building %q", name)
		}
		if !thing.Buildable() {
			return fmt.Errorf("book: %q has no schematic", name)
		}
		if seen.Has(name) {
			return fmt.Errorf("book: %q listed twice", name)
		}
		seen.Put(name)
	}
	return nil
}
