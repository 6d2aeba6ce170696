package config

import (
	"log"
	"os"
	"sync"
)

type StorageConfig struct {
	Dir        string
	SigningKey string
	MaxUpload  int64
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		key := os.Getenv("STORAGE_SIGNING_KEY")
		if key == "" {
			key = "dev-signing-key"
			log.Println("Warning: STORAGE_SIGNING_KEY not set, using development key")
		}
		storageConfig = &StorageConfig{
			Dir:        getEnv("STORAGE_DIR", "./uploads"),
			SigningKey: key,
			MaxUpload:  5 * 1024 * 1024,
		}
	})
	return storageConfig
}
