package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port      int     `yaml:"port" validate:"gt=0,lte=65535"`
	RateRPS   float64 `yaml:"rateRPS" validate:"gte=0"`
	RateBurst int     `yaml:"rateBurst" validate:"gte=0"`
}

// DataConfig locates the input tables
type DataConfig struct {
	DepotsPath  string `yaml:"depots"`
	ClientsPath string `yaml:"clients"`
	RoutesPath  string `yaml:"routes"`
	NoRoute     string `yaml:"noRoute" validate:"required"`
	Delimiter   string `yaml:"delimiter" validate:"required"`
}

// DatabaseConfig selects Postgres as the table source when URL is set
type DatabaseConfig struct {
	URL           string `yaml:"url"`
	Migrate       bool   `yaml:"migrate"`
	MigrationsDir string `yaml:"migrationsDir"`
}

// CacheConfig selects the figure cache backend
type CacheConfig struct {
	RedisURL   string `yaml:"redisURL" validate:"omitempty,url"`
	TTLSeconds int    `yaml:"ttlSeconds" validate:"gte=0"`
}

type CenterConfig struct {
	Lat float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `yaml:"lon" validate:"gte=-180,lte=180"`
}

// MapConfig contains map presentation defaults
type MapConfig struct {
	Style           string       `yaml:"style" validate:"required"`
	Zoom            int          `yaml:"zoom" validate:"gte=0,lte=22"`
	FrameDurationMs int          `yaml:"frameDurationMs" validate:"gt=0"`
	DefaultCenter   CenterConfig `yaml:"defaultCenter"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Environment string `yaml:"environment"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Map      MapConfig      `yaml:"map"`
	Log      LogConfig      `yaml:"log"`
}
