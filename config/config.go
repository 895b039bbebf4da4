package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	CookieSecret  string `yaml:"cookie_secret"`
	SessionMaxAge int    `yaml:"session_max_age"`
}

// AuthConfig points at the external identity provider. The JwtSecret is the
// provider-side signing secret used to verify access tokens locally.
type AuthConfig struct {
	ProviderURL string `yaml:"provider_url"`
	AnonKey     string `yaml:"anon_key"`
	JwtSecret   string `yaml:"jwt_secret"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type JobConfig struct {
	CheckpointCron string `yaml:"checkpoint_cron"`
	SummaryCron    string `yaml:"summary_cron"`
}

type AppConfig struct {
	System SysConfig `yaml:"system"`
	Web    WebConfig `yaml:"web"`
	Auth   AuthConfig `yaml:"auth"`
	Logger LogConfig `yaml:"logger"`
	Job    JobConfig `yaml:"job"`
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Appid:    "giftmall",
		Location: "Asia/Seoul",
		Workdir:  "/var/giftmall",
		Debug:    true,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          1889,
		CookieSecret:  "giftmall-dev-secret",
		SessionMaxAge: 86400 * 30,
	},
	Auth: AuthConfig{
		ProviderURL: "http://127.0.0.1:9999",
		AnonKey:     "anon-dev-key",
		JwtSecret:   "super-secret-jwt-token",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/giftmall/giftmall.log",
	},
	Job: JobConfig{
		CheckpointCron: "@every 1m",
		SummaryCron:    "@daily",
	},
}

func (c *AppConfig) InitDirs() error {
	return os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides on top of the defaults. A missing file is not an error.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrap(err, "parse config file")
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read config file")
		}
	}
	setEnvValue("GIFTMALL_WORKDIR", &cfg.System.Workdir)
	setEnvValue("GIFTMALL_LOCATION", &cfg.System.Location)
	setEnvBoolValue("GIFTMALL_DEBUG", &cfg.System.Debug)
	setEnvValue("GIFTMALL_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("GIFTMALL_WEB_PORT", &cfg.Web.Port)
	setEnvValue("GIFTMALL_COOKIE_SECRET", &cfg.Web.CookieSecret)
	setEnvValue("GIFTMALL_AUTH_PROVIDER_URL", &cfg.Auth.ProviderURL)
	setEnvValue("GIFTMALL_AUTH_ANON_KEY", &cfg.Auth.AnonKey)
	setEnvValue("GIFTMALL_AUTH_JWT_SECRET", &cfg.Auth.JwtSecret)
	setEnvValue("GIFTMALL_LOGGER_MODE", &cfg.Logger.Mode)
	return &cfg, nil
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v, ok := os.LookupEnv(name); ok {
		*val = cast.ToInt(v)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v, ok := os.LookupEnv(name); ok {
		*val = cast.ToBool(v)
	}
}
