package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// SlotsConfig lists the fixed time windows per session kind, each encoded
// as "HH:MM-HH:MM".
type SlotsConfig struct {
	Lecture  []string `mapstructure:"lecture" validate:"min=1,dive,required"`
	Tutorial []string `mapstructure:"tutorial" validate:"min=1,dive,required"`
	Lab      []string `mapstructure:"lab" validate:"min=1,dive,required"`
	Minor    []string `mapstructure:"minor" validate:"min=1,dive,required"`
}

// DurationsConfig holds the expected session length per kind in minutes.
// Minor sessions take whatever window the minor pool offers.
type DurationsConfig struct {
	Lecture  int `mapstructure:"lecture" validate:"gt=0"`
	Tutorial int `mapstructure:"tutorial" validate:"gt=0"`
	Lab      int `mapstructure:"lab" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Env         string   `mapstructure:"env" validate:"oneof=development production"`
	WorkingDays []string `mapstructure:"working_days" validate:"min=1,dive,required"`

	Slots     SlotsConfig     `mapstructure:"slots"`
	Durations DurationsConfig `mapstructure:"durations"`

	// ToleranceMinutes is the allowed drift between a slot's window and a
	// session's expected duration.
	ToleranceMinutes int `mapstructure:"tolerance_minutes" validate:"gte=0"`

	// RandomSeed fixes the tie-break shuffles for reproducible runs.
	// Zero seeds from the clock.
	RandomSeed int64 `mapstructure:"random_seed"`

	CoursesFile string `mapstructure:"courses_file"`
	RoomsFile   string `mapstructure:"rooms_file"`
	ExportDir   string `mapstructure:"export_dir"`

	Port int       `mapstructure:"port" validate:"gt=0"`
	Log  LogConfig `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("working_days", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"})

	v.SetDefault("slots.lecture", []string{"09:00-10:30", "10:45-12:15", "14:00-15:30", "15:40-17:10"})
	v.SetDefault("slots.tutorial", []string{"12:15-13:15", "17:30-18:30"})
	v.SetDefault("slots.lab", []string{"09:00-11:00", "11:00-13:00", "14:00-16:00"})
	v.SetDefault("slots.minor", []string{"07:30-09:00", "18:30-20:00"})

	v.SetDefault("durations.lecture", 90)
	v.SetDefault("durations.tutorial", 60)
	v.SetDefault("durations.lab", 120)

	v.SetDefault("tolerance_minutes", 5)
	v.SetDefault("random_seed", 0)

	v.SetDefault("courses_file", "./res/courses.csv")
	v.SetDefault("rooms_file", "./res/rooms.csv")
	v.SetDefault("export_dir", "timetable_outputs")

	v.SetDefault("port", 3001)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads the optional YAML file at path, layering environment variables
// (TIMETABLE_*) over it and built-in defaults under it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}
