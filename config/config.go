package config

import "time"

type Config struct {
	Web      Web
	DB       DB
	Cors     Cors
	Session  Session
	Rate     Rate
	Checkout Checkout
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:pasteleria"`
	DisableTLS bool   `conf:"default:true"`
}

type Cors struct {
	Origin string
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

// Rate bounds the per-client request rate on the public write
// endpoints (login and contact form).
type Rate struct {
	Burst    int     `conf:"default:5"`
	Expiry   int     `conf:"default:60"`
	LimitRPS float64 `conf:"default:1"`
}

type Checkout struct {
	Timeout time.Duration `conf:"default:10s"`
}
