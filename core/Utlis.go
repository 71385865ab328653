package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const DefaultEnv = "local"

// Settings is what the properties file configures.
type Settings struct {
	Host  string
	Port  string
	Frame time.Duration
	Hold  time.Duration

	// Heartbeat is how often clients report in; zero disables the check.
	Heartbeat time.Duration
	MaxRooms  int

	Tuning Tuning
}

func (s Settings) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// ReadProperties loads properties/<env>.properties from the working directory.
// A missing file yields the defaults; PONG_* environment variables override both.
func ReadProperties(env string) (Settings, error) {
	if env == "" {
		env = DefaultEnv
	}

	v := viper.New()
	v.SetConfigName(fmt.Sprintf("%s/%s", "properties", env))
	v.SetConfigType("properties")
	v.AddConfigPath("./")
	v.SetEnvPrefix("PONG")
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return Settings{}, fmt.Errorf("read properties %s: %w", env, err)
	}

	return settingsFrom(v)
}

func setDefaults(v *viper.Viper) {
	t := DefaultTuning()

	v.SetDefault("HOST_IP", "127.0.0.1")
	v.SetDefault("HOST_PORT", "7788")
	v.SetDefault("FRAME_MILLIS", 16)
	v.SetDefault("HOLD_MILLIS", 120)
	v.SetDefault("HEARTBEAT_MILLIS", 3000)
	v.SetDefault("MAX_ROOMS", 100)

	v.SetDefault("ASPECT_RATIO", t.AspectRatio)
	v.SetDefault("WINDOW_HEIGHT", t.WindowHeight)
	v.SetDefault("RACKET_HEIGHT", t.RacketHeight)
	v.SetDefault("RACKET_WIDTH", t.RacketWidth)
	v.SetDefault("RACKET_EDGE_OFFSET", t.RacketEdgeOffset)
	v.SetDefault("RACKET_SPEED", t.RacketSpeed)
	v.SetDefault("BALL_SIZE", t.BallSize)
	v.SetDefault("BALL_SPEED", t.BallSpeed)
	v.SetDefault("SCATTER_FACTOR", t.ScatterFactor)
	v.SetDefault("WINNING_SCORE", t.WinningScore)
	v.SetDefault("LATCH_REFLECTIONS", t.LatchReflections)
}

func settingsFrom(v *viper.Viper) (Settings, error) {
	s := Settings{
		Host:  cast.ToString(v.Get("HOST_IP")),
		Port:  cast.ToString(v.Get("HOST_PORT")),
		Frame: time.Duration(cast.ToInt(v.Get("FRAME_MILLIS"))) * time.Millisecond,
		Hold:  time.Duration(cast.ToInt(v.Get("HOLD_MILLIS"))) * time.Millisecond,

		Heartbeat: time.Duration(cast.ToInt(v.Get("HEARTBEAT_MILLIS"))) * time.Millisecond,
		MaxRooms:  cast.ToInt(v.Get("MAX_ROOMS")),

		Tuning: Tuning{
			AspectRatio:      cast.ToFloat64(v.Get("ASPECT_RATIO")),
			WindowHeight:     cast.ToFloat64(v.Get("WINDOW_HEIGHT")),
			RacketHeight:     cast.ToFloat64(v.Get("RACKET_HEIGHT")),
			RacketWidth:      cast.ToFloat64(v.Get("RACKET_WIDTH")),
			RacketEdgeOffset: cast.ToFloat64(v.Get("RACKET_EDGE_OFFSET")),
			RacketSpeed:      cast.ToFloat64(v.Get("RACKET_SPEED")),
			BallSize:         cast.ToFloat64(v.Get("BALL_SIZE")),
			BallSpeed:        cast.ToFloat64(v.Get("BALL_SPEED")),
			ScatterFactor:    cast.ToFloat64(v.Get("SCATTER_FACTOR")),
			WinningScore:     cast.ToInt(v.Get("WINNING_SCORE")),
			LatchReflections: cast.ToBool(v.Get("LATCH_REFLECTIONS")),
		},
	}

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	t := s.Tuning
	switch {
	case s.Frame <= 0:
		return fmt.Errorf("FRAME_MILLIS must be positive, got %v", s.Frame)
	case s.Heartbeat < 0:
		return fmt.Errorf("HEARTBEAT_MILLIS must not be negative, got %v", s.Heartbeat)
	case s.MaxRooms <= 0:
		return fmt.Errorf("MAX_ROOMS must be positive, got %d", s.MaxRooms)
	case t.WindowHeight <= 0 || t.AspectRatio <= 0:
		return fmt.Errorf("playfield %vx%v is empty", t.WindowWidth(), t.WindowHeight)
	case t.RacketHeight <= 0 || t.RacketHeight > t.WindowHeight:
		return fmt.Errorf("RACKET_HEIGHT %v does not fit the playfield", t.RacketHeight)
	case t.RacketEdgeOffset >= t.HalfWidth():
		return fmt.Errorf("RACKET_EDGE_OFFSET %v is outside the playfield", t.RacketEdgeOffset)
	case t.WinningScore < 0:
		return fmt.Errorf("WINNING_SCORE must not be negative, got %d", t.WinningScore)
	}
	return nil
}
