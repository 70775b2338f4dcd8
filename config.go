package mintprice

import (
	"fmt"
	"os"

	"github.com/vitwit/mintprice/types"
	"github.com/vitwit/mintprice/utils"
)

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.MintError{
			Code:    types.ErrConfig,
			Message: fmt.Sprintf("failed to read config %s", path),
			Err:     err,
		}
	}
	return utils.ParseConfig(data)
}

// NewFromFile loads path and creates a Service from it.
func NewFromFile(path string, opts ...Option) (*Service, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(config, opts...)
}
