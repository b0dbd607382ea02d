package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	InterfaceTerminal = "terminal"
	InterfaceWeb      = "web"

	ScoresDriverRedis  = "redis"
	ScoresDriverFile   = "file"
	ScoresDriverMemory = "memory"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile    string `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"tictactoe.log"`
	Interface  string `yaml:"interface" env:"TICTACTOE_INTERFACE" env-default:"terminal"`
	HTTPPort   string `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"TICTACTOE_SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Scores     Scores `yaml:"scores"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

type Scores struct {
	Driver   string `yaml:"driver" env:"TICTACTOE_SCORES_DRIVER" env-default:"file"`
	Key      string `yaml:"key" env:"TICTACTOE_SCORES_KEY" env-default:"ticTacToeScores"`
	FilePath string `yaml:"file-path" env:"TICTACTOE_SCORES_FILE" env-default:"scores.json"`
}

type Game struct {
	ComputerDelay time.Duration `yaml:"computer-delay" env:"TICTACTOE_COMPUTER_DELAY" env-default:"500ms"`
	PlayerX       string        `yaml:"player-x" env:"TICTACTOE_PLAYER_X"`
	PlayerO       string        `yaml:"player-o" env:"TICTACTOE_PLAYER_O"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path when it exists, otherwise only the environment and the defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if fileExists(path) {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
