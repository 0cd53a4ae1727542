package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"` // hours
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

// DefaultAppConfig development defaults; production overrides via yaml file
// and environment.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "FieldOps",
		Location: "Asia/Shanghai",
		Workdir:  "/var/fieldops",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		Secret:    "9b6de5cc-fieldops-1816-8a4b-b50881cf2571",
		JwtExpire: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "fieldops",
		User:     "postgres",
		Passwd:   "fieldops",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/fieldops/fieldops.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0755)
	_ = os.MkdirAll(c.GetLogDir(), 0755)
	_ = os.MkdirAll(c.GetDataDir(), 0755)
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v == "true" || v == "1" || v == "on"
	}
}

// LoadConfig reads the yaml config file when present, otherwise starts
// from the defaults, then applies FIELDOPS_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "fieldops.yml"
	}
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if data, err := os.ReadFile(cfile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "config parse error: %v\n", err)
		}
	}

	setEnvValue("FIELDOPS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("FIELDOPS_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("FIELDOPS_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("FIELDOPS_DB_HOST", &cfg.Database.Host)
	setEnvValue("FIELDOPS_DB_NAME", &cfg.Database.Name)
	setEnvValue("FIELDOPS_DB_USER", &cfg.Database.User)
	setEnvValue("FIELDOPS_DB_PWD", &cfg.Database.Passwd)

	cfg.initDirs()
	return cfg
}
