package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/embedded"
	"github.com/decker502/tinyspace/pkg/types"
)

func TestDefaultSessionConfig(t *testing.T) {
	cfg := DefaultSessionConfig()
	if cfg.Grid.Width != 5 || cfg.Grid.Height != 7 {
		t.Errorf("grid = %dx%d, want 5x7", cfg.Grid.Width, cfg.Grid.Height)
	}
	if x, y := cfg.BasePosition(); x != 2 || y != 3 {
		t.Errorf("base = (%d, %d), want (2, 3)", x, y)
	}
	if cfg.Queue.Multiplicity != 5 || cfg.Queue.Preview != 5 {
		t.Errorf("queue = %+v", cfg.Queue)
	}
	if err := cfg.Validate(catalog.Default()); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestParseSessionConfig(t *testing.T) {
	t.Run("完整配置", func(t *testing.T) {
		cfg, err := ParseSessionConfig([]byte(`
grid:
  width: 8
  height: 6
base:
  x: 1
  y: 1
queue:
  multiplicity: 3
  seed: 42
  preview: 4
book: [CommsTower, Dolor]
`))
		if err != nil {
			t.Fatalf("ParseSessionConfig failed: %v", err)
		}
		if cfg.Grid.Width != 8 || cfg.Grid.Height != 6 {
			t.Errorf("grid = %+v", cfg.Grid)
		}
		if x, y := cfg.BasePosition(); x != 1 || y != 1 {
			t.Errorf("base = (%d, %d)", x, y)
		}
		if cfg.Queue.Seed != 42 || cfg.Queue.Multiplicity != 3 || cfg.Queue.Preview != 4 {
			t.Errorf("queue = %+v", cfg.Queue)
		}
		kinds := cfg.BookKinds(catalog.Default())
		if len(kinds) != 2 || kinds[0] != types.CommsTower || kinds[1] != types.Dolor {
			t.Errorf("BookKinds() = %v", kinds)
		}
	})

	t.Run("缺省字段使用默认值", func(t *testing.T) {
		cfg, err := ParseSessionConfig([]byte("grid:\n  width: 9\n  height: 9\n"))
		if err != nil {
			t.Fatalf("ParseSessionConfig failed: %v", err)
		}
		if x, y := cfg.BasePosition(); x != 4 || y != 4 {
			t.Errorf("base = (%d, %d), want (4, 4)", x, y)
		}
		if cfg.Queue.Multiplicity != 5 || cfg.Queue.Preview != 5 {
			t.Errorf("queue defaults not applied: %+v", cfg.Queue)
		}
		if got := cfg.BookKinds(catalog.Default()); len(got) != len(catalog.Default().Buildable()) {
			t.Errorf("empty book should list every buildable building, got %v", got)
		}
	})

	t.Run("空文档", func(t *testing.T) {
		cfg, err := ParseSessionConfig([]byte(""))
		if err != nil {
			t.Fatalf("ParseSessionConfig failed: %v", err)
		}
		if cfg.Grid.Width != DefaultGridWidth || cfg.Grid.Height != DefaultGridHeight {
			t.Errorf("grid = %+v", cfg.Grid)
		}
	})
}

func TestParseSessionConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"宽度为 0", "grid: {width: 0, height: 7}", "schema"},
		{"宽度不是整数", "grid: {width: five, height: 7}", "schema"},
		{"未知字段", "grid: {width: 5, height: 7}\ncolor: red", "schema"},
		{"负的预览数", "queue: {preview: -1}", "schema"},
		{"基地在地图外", "grid: {width: 3, height: 3}\nbase: {x: 3, y: 0}", "outside"},
		{"未知建筑", "book: [Castle]", "unknown building"},
		{"基地不可建造", "book: [Base]", "no schematic"},
		{"资源不是建筑", "book: [Iron]", "no schematic"},
		{"重复的建筑", "book: [Sit, Sit]", "twice"},
		{"YAML 语法错误", "grid: [", "YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionConfig([]byte(tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadSessionConfigFromDisk(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "session.yaml")
	if err := os.WriteFile(configPath, []byte("grid: {width: 4, height: 4}\nqueue: {seed: 7}\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadSessionConfig(configPath)
	if err != nil {
		t.Fatalf("LoadSessionConfig failed: %v", err)
	}
	if cfg.Grid.Width != 4 || cfg.Queue.Seed != 7 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	_, err = LoadSessionConfig(filepath.Join(tempDir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read session config") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadSessionConfigFromEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/session.yaml": {Data: []byte("grid: {width: 6, height: 6}\n")},
	})
	defer embedded.Reset()

	cfg, err := LoadSessionConfig(DefaultSessionConfigPath)
	if err != nil {
		t.Fatalf("LoadSessionConfig failed: %v", err)
	}
	if cfg.Grid.Width != 6 {
		t.Errorf("grid width = %d, want 6", cfg.Grid.Width)
	}
}
