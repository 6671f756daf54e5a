package ir

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/c0/arena"
	"github.com/wippyai/c0/errors"
)

// Options configures a Generator.
type Options struct {
	// Logger receives builder warnings. Nil uses the package logger.
	Logger *zap.Logger `yaml:"-"`

	// Name identifies the generator in log output.
	Name string `yaml:"name"`

	// PointerSize is the target pointer width in bytes, 4 or 8.
	PointerSize int64 `yaml:"pointer_size"`

	// MinimumBlockSize is the smallest arena block reserved on growth.
	MinimumBlockSize uint64 `yaml:"minimum_block_size"`
}

// DefaultOptions returns options for a 64-bit target.
func DefaultOptions() Options {
	return Options{
		PointerSize:      8,
		MinimumBlockSize: arena.DefaultMinimumBlockSize,
	}
}

// ParseOptions decodes YAML over DefaultOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode options")
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptions reads YAML options from path.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path(path).
			Detail("read options").
			Cause(err).
			Build()
	}
	return ParseOptions(data)
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.PointerSize != 4 && o.PointerSize != 8 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("pointer_size").
			Detail("pointer size must be 4 or 8, got %d", o.PointerSize).
			Value(o.PointerSize).
			Build()
	}
	return nil
}
