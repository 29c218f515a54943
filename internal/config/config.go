package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Technet    Technet `yaml:"technet"`
	DB         DB      `yaml:"db"`
	Import     Import  `yaml:"import"`
	CORS       CORS    `yaml:"cors"`

	AdminLogin  string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass   string `yaml:"admin_pass" env:"ADMIN_PASS"`
	FrontendDir string `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"./frontend-dist"`
	ErrorsLog   string `yaml:"errors_log" env:"ERRORS_LOG" env-default:"errors.log"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Technet удалённый REST API (система учёта).
type Technet struct {
	BaseURL  string        `yaml:"base_url" env:"TECHNET_BASE_URL" env-default:"http://localhost:8000"`
	Token    string        `yaml:"token" env:"TECHNET_TOKEN"`
	Username string        `yaml:"username" env:"TECHNET_USERNAME"`
	Password string        `yaml:"password" env:"TECHNET_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env-default:"60s"`
	PageSize int           `yaml:"page_size" env-default:"1000"`
}

// DB журнал импортов. Пустое имя базы отключает журнал.
type DB struct {
	User      string `yaml:"user" env:"DB_USER"`
	Password  string `yaml:"password" env:"DB_PASSWORD"`
	Host      string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port      int    `yaml:"port" env:"DB_PORT" env-default:"3306"`
	Name      string `yaml:"name" env:"DB_NAME"`
	ParseTime bool   `yaml:"parse_time" env-default:"true"`
}

type Import struct {
	MaxFileMB           int   `yaml:"max_file_mb" env-default:"25"`
	MaxRows             int   `yaml:"max_rows" env-default:"5000"`
	FailurePreview      int   `yaml:"failure_preview" env-default:"5"`
	DefaultTechnicianID int64 `yaml:"default_technician_id" env:"IMPORT_DEFAULT_TECHNICIAN_ID"`
	DefaultOperatorID   int64 `yaml:"default_operator_id" env:"IMPORT_DEFAULT_OPERATOR_ID"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://localhost:8081"`
}

func (d DB) Enabled() bool {
	return d.Name != ""
}

func MustConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// файла нет: только переменные окружения
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
