package types

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/samber/lo"
)

// ModuleType tags the reward pool a collection or score belongs to.
type ModuleType int32

// Module types. All is the primary track every staked collection scores on.
const (
	ModuleTypeInvalid ModuleType = iota
	ModuleTypeAll
	ModuleTypeCodingDivisionSfts
	ModuleTypeXBunnies
	ModuleTypeBloodshed
	ModuleTypeNosferatu
	ModuleTypeVestaXDAO
	ModuleTypeSnakesSfts
	ModuleTypeSharesSfts
)

var moduleTypeNames = map[ModuleType]string{
	ModuleTypeInvalid:            "Invalid",
	ModuleTypeAll:                "All",
	ModuleTypeCodingDivisionSfts: "CodingDivisionSfts",
	ModuleTypeXBunnies:           "XBunnies",
	ModuleTypeBloodshed:          "Bloodshed",
	ModuleTypeNosferatu:          "Nosferatu",
	ModuleTypeVestaXDAO:          "VestaXDAO",
	ModuleTypeSnakesSfts:         "SnakesSfts",
	ModuleTypeSharesSfts:         "SharesSfts",
}

// AllModuleTypes returns every valid module type in ascending order.
func AllModuleTypes() []ModuleType {
	return []ModuleType{
		ModuleTypeAll,
		ModuleTypeCodingDivisionSfts,
		ModuleTypeXBunnies,
		ModuleTypeBloodshed,
		ModuleTypeNosferatu,
		ModuleTypeVestaXDAO,
		ModuleTypeSnakesSfts,
		ModuleTypeSharesSfts,
	}
}

// String returns the name of the module type.
func (m ModuleType) String() string {
	if name, ok := moduleTypeNames[m]; ok {
		return name
	}
	return "ModuleType(" + strconv.Itoa(int(m)) + ")"
}

// Validate returns an error for Invalid and unknown module types.
func (m ModuleType) Validate() error {
	if m == ModuleTypeInvalid || !lo.Contains(AllModuleTypes(), m) {
		return errorsmod.Wrapf(ErrInvalidModuleType, "module type %s", m)
	}
	return nil
}

// ParseModuleType resolves a module type from its name.
func ParseModuleType(name string) (ModuleType, error) {
	m, ok := lo.FindKey(moduleTypeNames, name)
	if !ok || m == ModuleTypeInvalid {
		return ModuleTypeInvalid, errorsmod.Wrapf(ErrInvalidModuleType, "unknown module type %q", name)
	}
	return m, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m ModuleType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ModuleType) UnmarshalText(text []byte) error {
	parsed, err := ParseModuleType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
