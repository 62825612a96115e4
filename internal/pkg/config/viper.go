package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrConfigTypeRequired is returned by NewViperFromBytes without a type.
var ErrConfigTypeRequired = errors.New("config type is required")

// Viper implements Config on top of spf13/viper.
type Viper struct {
	v *viper.Viper

	mu        sync.RWMutex
	listeners []func()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			slog.Debug("dotenv file not loaded", "path", f, "error", err)
		}
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewViper loads the file at pathFile (type from its extension) and watches it
// for changes.
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()
	v.SetConfigFile(pathFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	vc := &Viper{v: v}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config reloaded", "path", filepath.Clean(e.Name), "op", e.Op.String())
		vc.notify()
	})
	v.WatchConfig()

	return vc, nil
}

// NewViperFromBytes loads configuration from memory; configType is any
// format viper understands ("yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func (vc *Viper) notify() {
	vc.mu.RLock()
	fns := append([]func(){}, vc.listeners...)
	vc.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

func (vc *Viper) OnChange(fn func()) {
	vc.mu.Lock()
	vc.listeners = append(vc.listeners, fn)
	vc.mu.Unlock()
}

func (vc *Viper) GetInt(key string) int         { return vc.v.GetInt(key) }
func (vc *Viper) GetInt64(key string) int64     { return vc.v.GetInt64(key) }
func (vc *Viper) GetUint32(key string) uint32   { return vc.v.GetUint32(key) }
func (vc *Viper) GetFloat64(key string) float64 { return vc.v.GetFloat64(key) }
func (vc *Viper) GetBool(key string) bool       { return vc.v.GetBool(key) }
func (vc *Viper) GetString(key string) string   { return vc.v.GetString(key) }

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

func (vc *Viper) GetHour(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Hour
}

func (vc *Viper) GetDay(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * 24 * time.Hour
}

func (vc *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(vc.v.GetString(key))
	if err != nil {
		return nil
	}
	return data
}

func (vc *Viper) GetArray(key string) []string {
	raw := vc.v.Get(key)
	var parts []string

	switch val := raw.(type) {
	case []any:
		parts = lo.Map(val, func(item any, _ int) string { return strings.TrimSpace(toString(item)) })
	case []string:
		parts = lo.Map(val, func(item string, _ int) string { return strings.TrimSpace(item) })
	default:
		parts = lo.Map(strings.Split(vc.v.GetString(key), ","), func(item string, _ int) string {
			return strings.TrimSpace(item)
		})
	}

	return lo.Compact(parts)
}

func (vc *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for _, pair := range vc.GetArray(key) {
		k, v, ok := strings.Cut(pair, ":")
		if ok {
			m[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return m
}

// Close is a no-op; viper holds no resources worth releasing.
func (vc *Viper) Close() error {
	return nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
