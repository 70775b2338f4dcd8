package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vitwit/mintprice/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateMintParams checks params against their struct tags and the proof
// word length.
func ValidateMintParams(params *types.MintParams) error {
	if params == nil {
		return &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: "mint params are required",
		}
	}

	if err := validate.Struct(params); err != nil {
		return &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: "validation failed",
			Err:     err,
		}
	}

	if err := ValidateMerkleProof(params.MerkleProof); err != nil {
		return &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: "validation failed",
			Err:     err,
		}
	}

	if _, err := params.MintIndex(); err != nil {
		return &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: "validation failed",
			Err:     err,
		}
	}

	return nil
}

// ParseMintParams parses and validates MintParams from JSON
func ParseMintParams(data []byte) (*types.MintParams, error) {
	var params types.MintParams

	if err := json.Unmarshal(data, &params); err != nil {
		return nil, &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: fmt.Sprintf("failed to parse mint params: %v", err),
		}
	}

	if err := ValidateMintParams(&params); err != nil {
		return nil, err
	}

	return &params, nil
}

// ParseContractInfo parses and validates ContractInfo from JSON
func ParseContractInfo(data []byte) (*types.ContractInfo, error) {
	var info types.ContractInfo

	if err := json.Unmarshal(data, &info); err != nil {
		return nil, &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: fmt.Sprintf("failed to parse contract info: %v", err),
		}
	}

	if err := validate.Struct(&info); err != nil {
		return nil, &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: "validation failed",
			Err:     err,
		}
	}

	return &info, nil
}

// ParseConfig parses and validates a YAML library configuration
func ParseConfig(data []byte) (*types.Config, error) {
	var config types.Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &types.MintError{
			Code:    types.ErrConfig,
			Message: fmt.Sprintf("failed to parse config: %v", err),
		}
	}

	if err := validate.Struct(&config); err != nil {
		return nil, &types.MintError{
			Code:    types.ErrConfig,
			Message: "validation failed",
			Err:     err,
		}
	}

	return &config, nil
}
