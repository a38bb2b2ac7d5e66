package chess

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Optional search-tuning configuration, wiring github.com/BurntSushi/toml.
// A missing engine.toml is not an error -- DefaultTuningConfig applies and
// the engine runs exactly as if no file existed.

// TuningConfig holds the handful of search constants a user might
// reasonably want to tweak without recompiling.
type TuningConfig struct {
	AspirationDelta  int `toml:"aspiration_delta"`
	NullMoveBaseR    int `toml:"null_move_base_reduction"`
	LMRDivisor       float64 `toml:"lmr_divisor"`
	RFPMarginPerPly  int `toml:"rfp_margin_per_ply"`
	HashSizeMB       int `toml:"hash_size_mb"`
}

// DefaultTuningConfig returns the constants this engine uses out of the
// box, when no engine.toml overrides them.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		AspirationDelta: 15,
		NullMoveBaseR:   3,
		LMRDivisor:      2.25,
		RFPMarginPerPly: 80,
		HashSizeMB:      64,
	}
}

// LoadTuningConfig reads path (typically "engine.toml" next to the
// binary); a missing file returns the defaults with a nil error, since
// tuning configuration is always optional.
func LoadTuningConfig(path string) (TuningConfig, error) {
	cfg := DefaultTuningConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
