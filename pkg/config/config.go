package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Billing BillingConfig
	PDF     PDFConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	BasePath string // prefijo de rutas, ej. /api/v1
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento soportados.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// StorageConfig dónde se guarda la colección de facturas.
type StorageConfig struct {
	Driver string // file | postgres
	File   string // ruta del JSON para el driver file
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// BillingConfig parámetros del modelo de precios.
type BillingConfig struct {
	DefaultTaxRate  string // decimal, ej. "0.10"
	PaymentTermDays int
}

// TaxRate interpreta DefaultTaxRate; debe ser un decimal positivo.
func (c BillingConfig) TaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.DefaultTaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: BILLING_DEFAULT_TAX_RATE inválido %q: %w", c.DefaultTaxRate, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("config: BILLING_DEFAULT_TAX_RATE debe ser mayor que cero: %q", c.DefaultTaxRate)
	}
	return rate, nil
}

// PDFConfig presentación del documento.
type PDFConfig struct {
	CurrencySymbol string
	Locale         string
	Compression    bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. PORT es la única obligatoria según despliegue; por defecto 3000.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoicer-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:     getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:     getInt(v, "PORT", 3000),
			BasePath: getString(v, "HTTP_BASE_PATH", "/api/v1"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", StorageFile)),
			File:   getString(v, "STORAGE_FILE", "invoices.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "invoicer"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Billing: BillingConfig{
			DefaultTaxRate:  getString(v, "BILLING_DEFAULT_TAX_RATE", "0.10"),
			PaymentTermDays: getInt(v, "BILLING_PAYMENT_TERM_DAYS", 30),
		},
		PDF: PDFConfig{
			CurrencySymbol: getString(v, "PDF_CURRENCY_SYMBOL", "$"),
			Locale:         getString(v, "PDF_LOCALE", "en-US"),
			Compression:    getBool(v, "PDF_COMPRESSION", true),
		},
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: PORT fuera de rango: %d", cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != StorageFile && cfg.Storage.Driver != StoragePostgres {
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
	if _, err := cfg.Billing.TaxRate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) && v.GetString(key) != "" {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
