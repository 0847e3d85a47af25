package configs

import (
	"sync"
	"time"

	"kartvizit.link/configs/configslog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config uygulamanın tüm ortam ayarlarını tutar.
// Değerler .env dosyasından (varsa) ve ortam değişkenlerinden okunur.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"production"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3000"`

	DatabaseDSN     string        `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres dbname=kartvizit port=5432 sslmode=disable TimeZone=UTC"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnLifetime  time.Duration `env:"DB_CONN_LIFETIME" envDefault:"30m"`

	JWTSecret   string        `env:"JWT_SECRET" envDefault:"degistir-bunu"`
	JWTLifetime time.Duration `env:"JWT_LIFETIME" envDefault:"168h"` // 7 gün

	SystemUserEmail    string `env:"SYSTEM_USER_EMAIL" envDefault:"system@kartvizit.link"`
	SystemUserPassword string `env:"SYSTEM_USER_PASSWORD" envDefault:""`
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Load .env dosyasını ve ortam değişkenlerini okuyup Config'i doldurur.
// Birden fazla çağrı güvenlidir; ilk sonuç kullanılır.
func Load() *Config {
	cfgOnce.Do(func() {
		// .env opsiyonel; yoksa sadece ortam değişkenleri kullanılır.
		if err := godotenv.Load(); err != nil {
			configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
		}

		c := &Config{}
		if err := env.Parse(c); err != nil {
			configslog.Log.Fatal("Ortam değişkenleri parse edilemedi", zap.Error(err))
		}
		cfg = c
	})
	return cfg
}

// Get yüklenmiş konfigürasyonu döndürür, gerekiyorsa yükler.
func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

// IsProduction APP_ENV production mu kontrol eder.
// Geliştirme kolaylıkları (örn. reset token'ın yanıtta dönmesi) sadece
// production DIŞINDA açılır.
func IsProduction() bool {
	return Get().AppEnv == "production"
}
