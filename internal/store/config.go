package store

type Config struct {
	File string `yaml:"file"`
}
