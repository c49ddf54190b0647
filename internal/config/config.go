package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Site root; every other path is relative to it.
	Root            string `yaml:"root"`
	AssetsDir       string `yaml:"assets_dir"`
	PublicationsDir string `yaml:"publications_dir"`
	Output          string `yaml:"output"`

	// Profile
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Title      string `yaml:"title"`
	Photo      string `yaml:"photo"`
	Stylesheet string `yaml:"stylesheet"`

	// Sidebar link labels in display order; empty means the built-in order.
	SocialOrder []string `yaml:"social_order"`

	// Entry rendering
	RenderWorkers int `yaml:"render_workers"`

	// Preview server
	PreviewPort     string        `yaml:"preview_port"`
	PreviewDebounce time.Duration `yaml:"preview_debounce"`
	PreviewToken    string        `yaml:"-"` // guards POST /api/rebuild when set

	LogLevel string `yaml:"log_level"`
}

// Load reads the optional YAML file named by HOMEPAGE_CONFIG (default
// homepage.yaml under the root), then applies environment overrides and defaults.
func Load() (Config, error) {
	var cfg Config

	root := envOr("HOMEPAGE_ROOT", ".")
	path := envOr("HOMEPAGE_CONFIG", filepath.Join(root, "homepage.yaml"))
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Root == "" || os.Getenv("HOMEPAGE_ROOT") != "" {
		cfg.Root = root
	}

	cfg.AssetsDir = envOr("HOMEPAGE_ASSETS_DIR", orDefault(cfg.AssetsDir, "assets"))
	cfg.PublicationsDir = envOr("HOMEPAGE_PUBLICATIONS_DIR", orDefault(cfg.PublicationsDir, cfg.AssetsDir+"/publications"))
	cfg.Output = envOr("HOMEPAGE_OUTPUT", orDefault(cfg.Output, "index.html"))

	cfg.Name = envOr("HOMEPAGE_NAME", cfg.Name)
	cfg.Email = envOr("HOMEPAGE_EMAIL", cfg.Email)
	cfg.Title = envOr("HOMEPAGE_TITLE", orDefault(cfg.Title, cfg.Name))
	cfg.Photo = envOr("HOMEPAGE_PHOTO", orDefault(cfg.Photo, cfg.AssetsDir+"/profile.jpg"))
	cfg.Stylesheet = envOr("HOMEPAGE_STYLESHEET", orDefault(cfg.Stylesheet, "styles.css"))

	cfg.RenderWorkers = envInt("RENDER_WORKERS", cfg.RenderWorkers)
	cfg.PreviewPort = envOr("PREVIEW_PORT", orDefault(cfg.PreviewPort, "8000"))
	cfg.PreviewDebounce = envDuration("PREVIEW_DEBOUNCE", cfg.PreviewDebounce)
	cfg.PreviewToken = os.Getenv("PREVIEW_TOKEN")
	cfg.LogLevel = envOr("LOG_LEVEL", orDefault(cfg.LogLevel, "info"))

	if cfg.RenderWorkers <= 0 {
		cfg.RenderWorkers = 4
	}
	if cfg.PreviewDebounce <= 0 {
		cfg.PreviewDebounce = 300 * time.Millisecond
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("HOMEPAGE_NAME is required")
	}
	if c.Email == "" {
		return fmt.Errorf("HOMEPAGE_EMAIL is required")
	}
	// Asset links in the page are root-relative, so the output must sit in the root.
	if c.Output == "" || filepath.Dir(filepath.Clean(c.Output)) != "." {
		return fmt.Errorf("HOMEPAGE_OUTPUT must be a file name in the site root: %q", c.Output)
	}
	return nil
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// OutputPath is the absolute-or-root-relative location the document is written to.
func (c Config) OutputPath() string {
	return filepath.Join(c.Root, filepath.FromSlash(c.Output))
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
