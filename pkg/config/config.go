package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacén soportados en STORE_CREDENTIALS_JSON.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

var (
	// ErrMissingStoreCredentials sin credenciales del almacén el proceso no arranca.
	ErrMissingStoreCredentials = errors.New("config: STORE_CREDENTIALS_JSON no definido")
	// ErrMissingSessionSecret la firma de sesión es obligatoria.
	ErrMissingSessionSecret = errors.New("config: SESSION_SECRET no definido")
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Auth    AuthConfig
	Store   StoreCredentials
	Assets  AssetsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig firma de la cookie de sesión (JWT HS256).
type SessionConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig par estático usuario/contraseña.
type AuthConfig struct {
	Username string
	Password string
}

// AssetsConfig ubicación de archivos estáticos (logo para la vista y marca de agua del PDF).
type AssetsConfig struct {
	StaticDir string
	LogoFile  string
}

// LogoPath ruta en disco del logo.
func (c AssetsConfig) LogoPath() string {
	return path.Join(c.StaticDir, c.LogoFile)
}

// LogoURL ruta pública del logo.
func (c AssetsConfig) LogoURL() string {
	return "/static/" + c.LogoFile
}

// StoreCredentials contenido de STORE_CREDENTIALS_JSON.
// Para postgres se usa database_url o host/port/...; para mongo uri + database.
type StoreCredentials struct {
	Driver      string `json:"driver"`
	DatabaseURL string `json:"database_url,omitempty"`
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
	User        string `json:"user,omitempty"`
	Password    string `json:"password,omitempty"`
	DBName      string `json:"dbname,omitempty"`
	SSLMode     string `json:"sslmode,omitempty"`
	URI         string `json:"uri,omitempty"`
	Database    string `json:"database,omitempty"`
}

// DB configuración PostgreSQL derivada de las credenciales, con valores por defecto.
func (s StoreCredentials) DB() DBConfig {
	c := DBConfig{
		DatabaseURL: s.DatabaseURL,
		Host:        nonEmpty(s.Host, "localhost"),
		Port:        s.Port,
		User:        nonEmpty(s.User, "postgres"),
		Password:    s.Password,
		DBName:      nonEmpty(s.DBName, "kits_invoicing"),
		SSLMode:     nonEmpty(s.SSLMode, "disable"),
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	return c
}

// ParseStoreCredentials decodifica y valida el blob JSON.
func ParseStoreCredentials(raw string) (StoreCredentials, error) {
	var creds StoreCredentials
	if strings.TrimSpace(raw) == "" {
		return creds, ErrMissingStoreCredentials
	}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return creds, fmt.Errorf("config: STORE_CREDENTIALS_JSON inválido: %w", err)
	}
	creds.Driver = strings.ToLower(strings.TrimSpace(creds.Driver))
	switch creds.Driver {
	case DriverPostgres, DriverMemory:
	case DriverMongo:
		if creds.URI == "" {
			return creds, fmt.Errorf("config: driver mongo requiere uri")
		}
		if creds.Database == "" {
			creds.Database = "kits_invoicing"
		}
	default:
		return creds, fmt.Errorf("config: driver de almacén desconocido %q", creds.Driver)
	}
	return creds, nil
}

// DBConfig configuración de PostgreSQL.
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

// ConnectionString devuelve el DSN a usar: DatabaseURL si está definido, si no el construido con DSN().
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Falla si faltan STORE_CREDENTIALS_JSON o SESSION_SECRET.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	store, err := ParseStoreCredentials(v.GetString("STORE_CREDENTIALS_JSON"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: getInt(v, "HTTP_PORT"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("SESSION_SECRET"),
			Expiration: getInt(v, "SESSION_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("SESSION_ISSUER"),
		},
		Auth: AuthConfig{
			Username: v.GetString("AUTH_USERNAME"),
			Password: v.GetString("AUTH_PASSWORD"),
		},
		Store: store,
		Assets: AssetsConfig{
			StaticDir: v.GetString("ASSETS_STATIC_DIR"),
			LogoFile:  v.GetString("ASSETS_LOGO_FILE"),
		},
	}
	if cfg.Session.Secret == "" {
		return nil, ErrMissingSessionSecret
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "kits-invoicing")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("SESSION_EXPIRATION_MINUTES", 720)
	v.SetDefault("SESSION_ISSUER", "kits-invoicing")
	v.SetDefault("AUTH_USERNAME", "kitstechlearning.co.in")
	v.SetDefault("AUTH_PASSWORD", "kits@9876")
	v.SetDefault("ASSETS_STATIC_DIR", "static")
	v.SetDefault("ASSETS_LOGO_FILE", "company_logo.jpg")
}

// getInt tolera valores string desde env (ej. "8080").
func getInt(v *viper.Viper, key string) int {
	switch val := v.Get(key).(type) {
	case int:
		return val
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(val))
		return n
	default:
		return v.GetInt(key)
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
