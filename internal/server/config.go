package server

import (
	"time"
)

type Config struct {
	Port                 int           `yaml:"port"`
	Host                 string        `yaml:"host"`
	AntidosBuckets       int           `yaml:"antidosBuckets"`
	AntidosPeriod        time.Duration `yaml:"antidosPeriod"`
	AntidosMaxConcurrent int           `yaml:"antidosMaxConcurrent"`
	MaxBodyBytes         int64         `yaml:"maxBodyBytes"`
	AdminKey             string        `yaml:"adminKey"`
	TLSCertFile          string        `yaml:"tlsCertFile"`
	TLSKeyFile           string        `yaml:"tlsKeyFile"`
	TLSReloadInterval    time.Duration `yaml:"tlsReloadInterval"`
	ShutdownTimeout      time.Duration `yaml:"shutdownTimeout"`
}

const (
	defaultMaxBodyBytes      = 1 << 20
	defaultTLSReloadInterval = time.Hour
)
