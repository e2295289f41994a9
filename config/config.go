// Package config loads and saves a ParameterSet — the one YAML document
// that configures an engine pair, its map field, and the shunting/
// transmitter/working-memory layers around it — the way
// DeltaCLI-Delta/agent_config.go round-trips an Agent through
// gopkg.in/yaml.v3, generalized from one struct to the whole parameter
// surface spec §6 describes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/resonantlabs/artengine/errs"
)

// KernelVariant names an engine.Params.Variant choice in YAML without
// importing the kernel package's int-based Variant (config stays a leaf
// package with no dependency on engine/kernel internals).
type KernelVariant string

const (
	KernelFuzzy              KernelVariant = "fuzzy"
	KernelHypersphere        KernelVariant = "hypersphere"
	KernelChoiceByDifference KernelVariant = "choice_by_difference"
)

// EngineParams mirrors engine.Params (spec §4.1, §4.4, §6).
type EngineParams struct {
	Rho                float64 `yaml:"rho"`
	Beta               float64 `yaml:"beta"`
	Alpha              float64 `yaml:"alpha"`
	RMax               float64 `yaml:"r_max"`
	Bias               float64 `yaml:"bias"`
	Eta                float64 `yaml:"eta"`
	Momentum           float64 `yaml:"momentum"`
	WeightDecay        float64 `yaml:"weight_decay"`
	LightInductionBias float64 `yaml:"light_induction_bias"`
	MaxCategories      int     `yaml:"max_categories"`
	EnableSIMD         bool    `yaml:"enable_simd"`
	ParallelismLevel   int     `yaml:"parallelism_level"`
	ParallelThreshold  int     `yaml:"parallel_threshold"`
	BatchSize          int     `yaml:"batch_size"`
}

// ARTMAPParams mirrors artmap.Config (spec §4.5, §6).
type ARTMAPParams struct {
	RhoBase      float64 `yaml:"rho_base"`
	Delta        float64 `yaml:"delta"`
	RhoMax       float64 `yaml:"rho_max"`
	MaxAttempts  int     `yaml:"max_attempts"`
	MapVigilance float64 `yaml:"map_vigilance"`
}

// ShuntingParams mirrors shunting.Config (spec §4.6, §6).
type ShuntingParams struct {
	Decay             []float64 `yaml:"decay"`
	Ceiling           float64   `yaml:"ceiling"`
	Floor             float64   `yaml:"floor"`
	SelfExcitation    float64   `yaml:"self_excitation"`
	ExcStrength       float64   `yaml:"exc_strength"`
	ExcRange          float64   `yaml:"exc_range"`
	InhStrength       float64   `yaml:"inh_strength"`
	InhRange          float64   `yaml:"inh_range"`
	ParallelThreshold int       `yaml:"parallel_threshold"`
	BatchSize         int       `yaml:"batch_size"`
}

// TransmitterParams mirrors transmitter.Config (spec §4.7, §6).
type TransmitterParams struct {
	Epsilon  float64 `yaml:"epsilon"`
	Lambda   float64 `yaml:"lambda"`
	Mu       float64 `yaml:"mu"`
	Baseline float64 `yaml:"baseline"`
}

// WorkingMemoryParams mirrors workingmemory.Memory's constructor args
// plus MaskingFieldConfig (spec §4.8, §6).
type WorkingMemoryParams struct {
	Capacity int     `yaml:"capacity"`
	Gamma    float64 `yaml:"gamma"`

	InhibitionRatio  float64 `yaml:"inhibition_ratio"`
	WinnerThreshold  float64 `yaml:"winner_threshold"`
	MinChunkInterval uint64  `yaml:"min_chunk_interval"`
	ResetAfterEmit   bool    `yaml:"reset_after_emit"`
	MinChunkSize     int     `yaml:"min_chunk_size"`
	MaxChunkSize     int     `yaml:"max_chunk_size"`
}

// ReplayParams mirrors replay.New's capacity argument (spec §4.9, §6).
type ReplayParams struct {
	Capacity int `yaml:"capacity"`
}

// ParameterSet is the full configuration surface for one ARTMAP system:
// two kernel engines (A-side, B-side), the map field between them, and
// the shunting/transmitter/working-memory layers that feed it.
type ParameterSet struct {
	VariantA KernelVariant `yaml:"variant_a"`
	VariantB KernelVariant `yaml:"variant_b"`
	EngineA  EngineParams  `yaml:"engine_a"`
	EngineB  EngineParams  `yaml:"engine_b"`
	ARTMAP   ARTMAPParams  `yaml:"artmap"`

	Shunting    ShuntingParams      `yaml:"shunting"`
	Transmitter TransmitterParams   `yaml:"transmitter"`
	Memory      WorkingMemoryParams `yaml:"working_memory"`
	Replay      ReplayParams        `yaml:"replay"`
}

// Load reads and parses a ParameterSet from a YAML file.
func Load(path string) (*ParameterSet, error) {
	const op = "config.Load"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidParameters, op, fmt.Errorf("read %s: %w", path, err))
	}
	var ps ParameterSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, errs.Wrap(errs.InvalidParameters, op, fmt.Errorf("parse %s: %w", path, err))
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return &ps, nil
}

// Save writes a ParameterSet to a YAML file.
func Save(path string, ps *ParameterSet) error {
	const op = "config.Save"
	data, err := yaml.Marshal(ps)
	if err != nil {
		return errs.Wrap(errs.Internal, op, fmt.Errorf("marshal: %w", err))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.Wrap(errs.InvalidParameters, op, fmt.Errorf("write %s: %w", path, err))
	}
	return nil
}

// Validate checks only that variant_a and variant_b name a known kernel
// variant, catching obviously malformed YAML early. It does not check
// numeric ranges; those are checked by each consuming package's own
// Validate/validate method when the caller constructs the actual
// engine/artmap/shunting objects.
func (ps *ParameterSet) Validate() error {
	const op = "config.ParameterSet.Validate"
	switch ps.VariantA {
	case KernelFuzzy, KernelHypersphere, KernelChoiceByDifference:
	default:
		return errs.New(errs.InvalidParameters, op, "variant_a must be one of fuzzy, hypersphere, choice_by_difference")
	}
	switch ps.VariantB {
	case KernelFuzzy, KernelHypersphere, KernelChoiceByDifference:
	default:
		return errs.New(errs.InvalidParameters, op, "variant_b must be one of fuzzy, hypersphere, choice_by_difference")
	}
	return nil
}
