package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, mysql, sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // hours
}

// BridgeConfig authenticates the chat bridge that mints user tokens.
type BridgeConfig struct {
	KeyHash string `mapstructure:"keyHash"` // bcrypt
}

type GameConfig struct {
	ChoiceTimeoutSeconds int     `mapstructure:"choiceTimeoutSeconds"`
	MinPlayers           int     `mapstructure:"minPlayers"`
	MaxPlayers           int     `mapstructure:"maxPlayers"`
	StartingChips        int64   `mapstructure:"startingChips"`
	CommandRooms         []int64 `mapstructure:"commandRooms"`
	ObserveChannel       string  `mapstructure:"observeChannel"`
}

func (g GameConfig) ChoiceTimeout() time.Duration {
	return time.Duration(g.ChoiceTimeoutSeconds) * time.Second
}

var GlobalConfig *Config

// A session seats between two and ten players.
const (
	minPlayersLimit = 2
	maxPlayersLimit = 10
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("jwt.expire", 24)
	v.SetDefault("game.choiceTimeoutSeconds", 300)
	v.SetDefault("game.minPlayers", 2)
	v.SetDefault("game.maxPlayers", 10)
	v.SetDefault("game.startingChips", 1000)
	v.SetDefault("game.observeChannel", "dice:observe")
}

// LoadConfig reads path (if non-empty) and applies DICE_* env overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	GlobalConfig = &cfg
	return &cfg, nil
}

func (c *Config) validate() error {
	g := c.Game
	if g.MinPlayers < minPlayersLimit || g.MaxPlayers > maxPlayersLimit || g.MaxPlayers < g.MinPlayers {
		return fmt.Errorf("invalid player range %d-%d, must be within %d-%d",
			g.MinPlayers, g.MaxPlayers, minPlayersLimit, maxPlayersLimit)
	}
	if g.ChoiceTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid choiceTimeoutSeconds %d", g.ChoiceTimeoutSeconds)
	}
	if g.StartingChips < 0 {
		return fmt.Errorf("invalid startingChips %d", g.StartingChips)
	}
	return nil
}
