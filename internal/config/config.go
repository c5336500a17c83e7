package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Ahnaf19/JobSnap/internal/snapshot"
	"github.com/go-playground/validator/v10"
	"github.com/subosito/gotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobsnap"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	ProjectFileName = "jobsnap.config.json"
	DotEnvFileName  = ".env"

	DefaultOutputDir      = "jobs"
	DefaultTimeoutSeconds = 30
)

// ErrInvalid marks a config file that exists but cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by save and reparse.
type Config struct {
	OutputDir      string `json:"output_dir" validate:"required"`
	Template       string `json:"template" validate:"required"`
	Skip           bool   `json:"skip"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=1,lte=600"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir:      DefaultOutputDir,
		Template:       snapshot.DefaultTemplate,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate reports the first unusable field of c.
func (c Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %q", ErrInvalid, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// ConfigDir honors JOBSNAP_CONFIG_DIR before the platform config directory.
func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("JOBSNAP_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load resolves the effective config for a project directory. Sources apply
// in order: defaults, user config, .env OUTPUT_DIR, the project file, then
// JOBSNAP_* environment variables. Flags are layered on top by the caller.
func Load(projectDir string) (Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if err := loadUser(path, &cfg); err != nil {
		return cfg, err
	}

	dotEnv, err := LoadDotEnv(filepath.Join(projectDir, DotEnvFileName))
	if err != nil {
		return cfg, err
	}
	if dir := strings.TrimSpace(dotEnv["OUTPUT_DIR"]); dir != "" {
		cfg.OutputDir = dir
	}

	if err := loadProject(filepath.Join(projectDir, ProjectFileName), &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func loadUser(path string, cfg *Config) error {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return err
	}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return nil
}

// loadProject reads the per-project file. Keys may be camelCase or
// snake_case, and skip accepts true or "true".
func loadProject(path string, cfg *Config) error {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return err
	}
	var raw map[string]any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: %s: expected an object", ErrInvalid, path)
	}

	if dir := firstString(raw, "outputDir", "output_dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if template := firstString(raw, "template"); template != "" {
		cfg.Template = template
	}
	switch skip := raw["skip"].(type) {
	case bool:
		cfg.Skip = skip
	case string:
		cfg.Skip = skip == "true"
	}
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// readOptional returns nil data for a missing or blank file.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	return data, nil
}

func applyEnv(cfg *Config) {
	cfg.OutputDir = envString("JOBSNAP_OUTPUT_DIR", cfg.OutputDir)
	cfg.Template = envString("JOBSNAP_TEMPLATE", cfg.Template)
	cfg.TimeoutSeconds = envInt("JOBSNAP_TIMEOUT", cfg.TimeoutSeconds)
	if value := strings.TrimSpace(os.Getenv("JOBSNAP_SKIP")); value != "" {
		cfg.Skip = EnvBool(value)
	}
}

// LoadDotEnv reads a .env file. A missing file yields an empty map and a
// malformed one is ErrInvalid.
func LoadDotEnv(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return env, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeJSON(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

type projectFile struct {
	OutputDir string `json:"outputDir"`
	Template  string `json:"template"`
	Skip      bool   `json:"skip"`
}

// InitProject writes jobsnap.config.json into dir unless one exists. It
// returns the path and whether the file was created.
func InitProject(dir string) (string, bool, error) {
	path := filepath.Join(dir, ProjectFileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return path, false, err
	}
	defaults := DefaultConfig()
	err := writeJSON(path, projectFile{OutputDir: defaults.OutputDir, Template: defaults.Template})
	return path, err == nil, err
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBSNAP_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

// EnvBool reports whether value spells an enabled flag.
func EnvBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
