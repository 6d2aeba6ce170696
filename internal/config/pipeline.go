package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// PipelineConfig holds the hiring-process presets offered to recruiters.
type PipelineConfig struct {
	DefaultStages []string `yaml:"default_stages"`
	OfferStage    string   `yaml:"offer_stage"`
	QuickAdd      []string `yaml:"quick_add"`
}

var defaultQuickAdd = []string{
	"Logic Test",
	"English Test",
	"Mandarin Test",
	"Attention Test",
	"DISC Assessment",
	"Culture Fit Test",
}

var (
	pipelineConfig *PipelineConfig
	pipelineOnce   sync.Once
)

// LoadPipelineConfig reads the YAML file named by PIPELINE_CONFIG. A missing
// or broken file falls back to the built-in presets.
func LoadPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		path := os.Getenv("PIPELINE_CONFIG")
		cfg, err := LoadPipelineConfigFrom(path)
		if err != nil {
			log.Printf("Warning: could not load pipeline config %s: %v", path, err)
			cfg = LoadPipelineConfigDefaults()
		}
		pipelineConfig = cfg
	})
	return pipelineConfig
}

// LoadPipelineConfigFrom reads presets from path. An empty path or a file
// that does not exist yields the defaults.
func LoadPipelineConfigFrom(path string) (*PipelineConfig, error) {
	cfg := LoadPipelineConfigDefaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}

	var fileCfg PipelineConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}
	if stages := pipeline.Stages(fileCfg.DefaultStages).Normalize(); len(stages) > 0 {
		cfg.DefaultStages = stages
	}
	if fileCfg.OfferStage != "" {
		cfg.OfferStage = fileCfg.OfferStage
	}
	if len(fileCfg.QuickAdd) > 0 {
		cfg.QuickAdd = fileCfg.QuickAdd
	}
	return cfg, nil
}

func LoadPipelineConfigDefaults() *PipelineConfig {
	return &PipelineConfig{
		DefaultStages: pipeline.DefaultStages.Clone(),
		OfferStage:    pipeline.DefaultOfferStage,
		QuickAdd:      append([]string(nil), defaultQuickAdd...),
	}
}

// Stages returns the default stage list for new jobs.
func (c *PipelineConfig) Stages() pipeline.Stages {
	return pipeline.Stages(c.DefaultStages).Clone()
}
