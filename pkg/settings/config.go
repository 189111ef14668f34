package settings

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

type Config struct {
	Queue   Queue   `mapstructure:"queue"`
	Batcher Batcher `mapstructure:"batcher"`
	Logger  Logger  `mapstructure:"logger"`
}

// Default returns a Config populated with the package defaults.
func Default() Config {
	return Config{
		Queue: Queue{InitialCapacity: 0},
		Batcher: Batcher{
			Workers:       1,
			BatchSize:     512,
			FlushInterval: 100,
		},
		Logger: Logger{LogLevel: "info"},
	}
}

// Validate checks every section against its validate tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "settings: invalid config")
	}
	return nil
}

// Queue is the configuration for a blocking queue
type Queue struct {
	InitialCapacity int `mapstructure:"initial_capacity" validate:"min=0"` // Slots preallocated in the backing ring
}

// Batcher is the configuration for the queue batcher
type Batcher struct {
	Workers       int `mapstructure:"workers" validate:"min=1"`
	BatchSize     int `mapstructure:"batch_size" validate:"min=1"`     // Number of items
	FlushInterval int `mapstructure:"flush_interval" validate:"min=0"` // Milliseconds
}

// FlushDuration returns FlushInterval as a time.Duration.
func (b Batcher) FlushDuration() time.Duration {
	return time.Duration(b.FlushInterval) * time.Millisecond
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"min=0"`  // Days
	MaxSize     int    `mapstructure:"max_size" validate:"min=0"` // Megabytes
	Compress    bool   `mapstructure:"compress"`
}
