package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Render       Render       `mapstructure:",squash"`
	AssetStorage AssetStorage `mapstructure:",squash"`
	Vision       Vision       `mapstructure:",squash"`
	CampaignSync CampaignSync `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string    `mapstructure:"meta_base_url"`
	URL            string    `mapstructure:"meta_url"`
	Version        string    `mapstructure:"meta_version"`
	AccessToken    string    `mapstructure:"meta_access_token"`
	AppID          string    `mapstructure:"meta_app_id"`
	AppSecret      string    `mapstructure:"meta_app_secret"`
	LongLivedToken string    `mapstructure:"meta_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`

	// Parâmetros de resiliência do fetcher. Os códigos de rate limit são
	// configuráveis porque a Meta já mudou esse conjunto entre versões da
	// Graph API.
	MaxRetries              int   `mapstructure:"meta_max_retries"`
	RateLimitCodes          []int `mapstructure:"meta_rate_limit_codes"`
	RateLimitBackoffSeconds int   `mapstructure:"meta_rate_limit_backoff_seconds"`
	NetworkBackoffSeconds   int   `mapstructure:"meta_network_backoff_seconds"`

	// Throttling entre requisições. O delay entre páginas é menor que o
	// delay entre chunks de batch.
	PageDelayMillis  int `mapstructure:"meta_page_delay_millis"`
	BatchDelayMillis int `mapstructure:"meta_batch_delay_millis"`
	MaxBatchSize     int `mapstructure:"meta_max_batch_size"`
	PageLimit        int `mapstructure:"meta_page_limit"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

// AssetStorage configura o bucket S3 (ou compatível) onde os criativos
// baixados são persistidos.
type AssetStorage struct {
	Region          string `mapstructure:"asset_storage_region"`
	Bucket          string `mapstructure:"asset_storage_bucket"`
	AccessKeyID     string `mapstructure:"asset_storage_access_key_id"`
	SecretAccessKey string `mapstructure:"asset_storage_secret_access_key"`
	EndpointURL     string `mapstructure:"asset_storage_endpoint_url"`
	PublicBaseURL   string `mapstructure:"asset_storage_public_base_url"`
}

// Vision configura o serviço externo de análise de conformidade de marca.
type Vision struct {
	URL         string `mapstructure:"vision_url"`
	AccessToken string `mapstructure:"vision_access_token"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type CampaignSync struct {
	CronSchedule string `mapstructure:"campaign_sync_cron"`
	Enabled      bool   `mapstructure:"campaign_sync_enabled"`
	Incremental  bool   `mapstructure:"campaign_sync_incremental"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/compliance")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_URL", "https://graph.facebook.com/v22.0")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL

	viper.SetDefault("META_MAX_RETRIES", 3)
	viper.SetDefault("META_RATE_LIMIT_CODES", []int{4, 17, 32, 613}) // códigos de throttling da Graph API
	viper.SetDefault("META_RATE_LIMIT_BACKOFF_SECONDS", 5)
	viper.SetDefault("META_NETWORK_BACKOFF_SECONDS", 2)
	viper.SetDefault("META_PAGE_DELAY_MILLIS", 1000)  // delay entre páginas
	viper.SetDefault("META_BATCH_DELAY_MILLIS", 2000) // delay entre chunks de batch (maior que o de páginas)
	viper.SetDefault("META_MAX_BATCH_SIZE", 50)       // limite da própria Graph API
	viper.SetDefault("META_PAGE_LIMIT", 100)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("ASSET_STORAGE_REGION", "us-east-1")
	viper.SetDefault("ASSET_STORAGE_BUCKET", "compliance-creatives")
	viper.SetDefault("ASSET_STORAGE_ACCESS_KEY_ID", "")
	viper.SetDefault("ASSET_STORAGE_SECRET_ACCESS_KEY", "")
	viper.SetDefault("ASSET_STORAGE_ENDPOINT_URL", "")
	viper.SetDefault("ASSET_STORAGE_PUBLIC_BASE_URL", "")

	viper.SetDefault("VISION_URL", "http://localhost:8100/v1")
	viper.SetDefault("VISION_ACCESS_TOKEN", "your_access_token")

	// Defaults para sincronização de campanhas
	viper.SetDefault("CAMPAIGN_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("CAMPAIGN_SYNC_ENABLED", false)
	viper.SetDefault("CAMPAIGN_SYNC_INCREMENTAL", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
