package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"salesdesk/internal/parser"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Import ImportConfig `toml:"import"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig 데이터 저장 위치
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
	DBPath  string `toml:"-"` // SALESDESK_DB_PATH 로만 지정
}

// ImportConfig 업로드/파싱 설정
type ImportConfig struct {
	MaxRows           int    `toml:"max_rows"`
	MaxFileMB         int    `toml:"max_file_mb"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`
	CSVEncoding       string `toml:"csv_encoding"` // auto | utf-8 | euc-kr
	HeaderScanRows    int    `toml:"header_scan_rows"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo 설정 로드 메타 정보
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "salesdesk.db",
		},
		Import: ImportConfig{
			MaxRows:           50000,
			MaxFileMB:         20,
			SessionTTLMinutes: 30,
			CSVEncoding:       "auto",
			HeaderScanRows:    10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	server, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = server["port"]
	return ok
}

// GetExeDir 실행 파일이 있는 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrCwd() string {
	dir, err := GetExeDir()
	if err != nil {
		return "."
	}
	return dir
}

// LoadConfigWithInfo 실행 파일 옆의 .env, config.toml 을 읽고 환경 변수를 덮어쓴다
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFromDir(exeDirOrCwd())
}

// LoadConfig LoadConfigWithInfo 의 간단 버전
func LoadConfig() (*AppConfig, error) {
	cfg, _, err := LoadConfigWithInfo()
	return cfg, err
}

// LoadFromDir dir 의 .env 와 config.toml 로 설정을 만든다. 파일이 없으면 기본값.
func LoadFromDir(dir string) (*AppConfig, LoadConfigInfo, error) {
	cfg := DefaultConfig()
	info := LoadConfigInfo{Path: filepath.Join(dir, "config.toml")}

	// 이미 설정된 환경 변수는 .env 가 덮어쓰지 않는다
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, info, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(info.Path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", info.Path, err)
		}
	case !os.IsNotExist(err):
		return nil, info, err
	}

	if err := applyEnv(cfg, &info); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

func applyEnv(cfg *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv("SALESDESK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SALESDESK_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv("SALESDESK_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv("SALESDESK_DB_PATH"); v != "" {
		cfg.Data.DBPath = v
	}
	if v := os.Getenv("SALESDESK_IMPORT_MAX_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SALESDESK_IMPORT_MAX_ROWS %q: %w", v, err)
		}
		cfg.Import.MaxRows = n
	}
	if v := os.Getenv("SALESDESK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// SaveConfig 설정을 dir/config.toml 로 저장
func SaveConfig(cfg *AppConfig, dir string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.toml"), data, 0644)
}

// EnsureDataDir 데이터 디렉터리 생성. 상대 경로는 실행 파일 기준이다.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDirOrCwd(), dataDir)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DBPath SALESDESK_DB_PATH 가 있으면 그대로, 없으면 dataDir/db_file
func (c *AppConfig) DBPath(dataDir string) string {
	if c.Data.DBPath != "" {
		return c.Data.DBPath
	}
	return filepath.Join(dataDir, c.Data.DBFile)
}

// ReadOptions 파서 옵션
func (c *AppConfig) ReadOptions() parser.ReadOptions {
	return parser.ReadOptions{
		Encoding:       c.Import.CSVEncoding,
		HeaderScanRows: c.Import.HeaderScanRows,
		MaxRows:        c.Import.MaxRows,
	}
}

// SessionTTL 업로드 세션 유지 시간
func (c *AppConfig) SessionTTL() time.Duration {
	if c.Import.SessionTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Import.SessionTTLMinutes) * time.Minute
}

// MaxUploadBytes 업로드 파일 최대 크기
func (c *AppConfig) MaxUploadBytes() int64 {
	if c.Import.MaxFileMB <= 0 {
		return 20 << 20
	}
	return int64(c.Import.MaxFileMB) << 20
}

// LogLevel 알 수 없는 값이면 info
func (c *AppConfig) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}
