package types

import "errors"

// Config holds the parameters for Store.Open.
type Config struct {
	// DataDir is the directory holding the SQLite database and snapshot
	// exports. Created on Open if it does not exist.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data_dir must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
