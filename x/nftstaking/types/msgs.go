package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgStake stakes assets of one collection.
type MsgStake struct {
	Sender string        `json:"sender"`
	Assets []AssetAmount `json:"assets"`
}

// MsgStartUnbonding moves staked assets of one collection into the unbonding queue.
type MsgStartUnbonding struct {
	Sender     string          `json:"sender"`
	Collection string          `json:"collection"`
	Items      []NonceQuantity `json:"items"`
}

// MsgClaimUnbonded withdraws every matured unbonding batch.
type MsgClaimUnbonded struct {
	Sender string `json:"sender"`
}

// MsgClaimRewards pays out every pending reward.
type MsgClaimRewards struct {
	Sender string `json:"sender"`
}

// MsgDistributeReward funds one epoch of a (module, token) reward track.
type MsgDistributeReward struct {
	Authority string     `json:"authority"`
	Module    ModuleType `json:"module"`
	Amount    sdk.Coin   `json:"amount"`
}

// MsgUpdateDeb sets the boost of a user.
type MsgUpdateDeb struct {
	Authority string      `json:"authority"`
	Address   string      `json:"address"`
	Deb       sdkmath.Int `json:"deb"`
}

// MsgRegisterPool maps a collection to a module type.
type MsgRegisterPool struct {
	Authority  string     `json:"authority"`
	Collection string     `json:"collection"`
	Module     ModuleType `json:"module"`
}

// MsgSetBaseScore sets the default per-unit score of a (collection, module) table.
type MsgSetBaseScore struct {
	Authority  string      `json:"authority"`
	Collection string      `json:"collection"`
	Module     ModuleType  `json:"module"`
	Score      sdkmath.Int `json:"score"`
}

// MsgSetNonceScore overrides the per-unit score of one nonce.
type MsgSetNonceScore struct {
	Authority  string      `json:"authority"`
	Collection string      `json:"collection"`
	Nonce      uint64      `json:"nonce"`
	Module     ModuleType  `json:"module"`
	Score      sdkmath.Int `json:"score"`
}

// MsgSetFullSetScore sets the bonus granted per owned full set.
type MsgSetFullSetScore struct {
	Authority  string      `json:"authority"`
	Collection string      `json:"collection"`
	Module     ModuleType  `json:"module"`
	Score      sdkmath.Int `json:"score"`
}

// MsgRegisterRewardToken allows a token to be distributed against a module.
type MsgRegisterRewardToken struct {
	Authority string     `json:"authority"`
	Token     string     `json:"token"`
	Module    ModuleType `json:"module"`
}

// MsgUpdateParams replaces the module params.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// EmptyResponse is returned by messages without a result.
type EmptyResponse struct{}

// MsgClaimRewardsResponse lists the paid rewards.
type MsgClaimRewardsResponse struct {
	Rewards sdk.Coins `json:"rewards"`
}

// MsgClaimUnbondedResponse lists the withdrawn assets.
type MsgClaimUnbondedResponse struct {
	Assets sdk.Coins `json:"assets"`
}

// ValidateBasic checks that message fields are valid.
func (m *MsgStake) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if len(m.Assets) == 0 {
		return cosmoserrors.ErrInvalidRequest.Wrap("no assets to stake")
	}
	for _, asset := range m.Assets {
		if err := asset.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBasic checks that message fields are valid.
func (m *MsgStartUnbonding) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if err := ValidateCollection(m.Collection); err != nil {
		return err
	}
	if len(m.Items) == 0 {
		return cosmoserrors.ErrInvalidRequest.Wrap("no items to unbond")
	}
	for _, item := range m.Items {
		if item.Quantity.IsNil() || !item.Quantity.IsPositive() {
			return cosmoserrors.ErrInvalidRequest.Wrapf("quantity of nonce %d must be positive", item.Nonce)
		}
	}
	return nil
}

// ValidateBasic checks that message fields are valid.
func (m *MsgClaimUnbonded) ValidateBasic() error {
	return validateAddress("sender", m.Sender)
}

// ValidateBasic checks that message fields are valid.
func (m *MsgClaimRewards) ValidateBasic() error {
	return validateAddress("sender", m.Sender)
}

// ValidateBasic checks that message fields are valid.
func (m *MsgDistributeReward) ValidateBasic() error {
	if err := validateAddress("authority", m.Authority); err != nil {
		return err
	}
	if err := m.Module.Validate(); err != nil {
		return err
	}
	if err := m.Amount.Validate(); err != nil {
		return cosmoserrors.ErrInvalidCoins.Wrap(err.Error())
	}
	if !m.Amount.IsPositive() {
		return cosmoserrors.ErrInvalidCoins.Wrap("reward amount must be positive")
	}
	return nil
}

// ValidateBasic checks that message fields are valid.
func (m *MsgUpdateDeb) ValidateBasic() error {
	if err := validateAddress("authority", m.Authority); err != nil {
		return err
	}
	if err := validateAddress("address", m.Address); err != nil {
		return err
	}
	return validateScore("deb", m.Deb)
}

// ValidateBasic checks that message fields are valid.
func (m *MsgRegisterPool) ValidateBasic() error {
	if err := validateAddress("authority", m.Authority); err != nil {
		return err
	}
	if err := ValidateCollection(m.Collection); err != nil {
		return err
	}
	return m.Module.Validate()
}

// ValidateBasic checks that message fields are valid.
func (m *MsgSetBaseScore) ValidateBasic() error {
	return validateScoreMsg(m.Authority, m.Collection, m.Module, m.Score)
}

// ValidateBasic checks that message fields are valid.
func (m *MsgSetNonceScore) ValidateBasic() error {
	return validateScoreMsg(m.Authority, m.Collection, m.Module, m.Score)
}

// ValidateBasic checks that message fields are valid.
func (m *MsgSetFullSetScore) ValidateBasic() error {
	return validateScoreMsg(m.Authority, m.Collection, m.Module, m.Score)
}

// ValidateBasic checks that message fields are valid.
func (m *MsgRegisterRewardToken) ValidateBasic() error {
	if err := validateAddress("authority", m.Authority); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(m.Token); err != nil {
		return cosmoserrors.ErrInvalidRequest.Wrapf("invalid reward token: %s", err)
	}
	return m.Module.Validate()
}

// ValidateBasic checks that message fields are valid.
func (m *MsgUpdateParams) ValidateBasic() error {
	if err := validateAddress("authority", m.Authority); err != nil {
		return err
	}
	return m.Params.ValidateBasic()
}

func validateScoreMsg(authority, collection string, module ModuleType, score sdkmath.Int) error {
	if err := validateAddress("authority", authority); err != nil {
		return err
	}
	if err := ValidateCollection(collection); err != nil {
		return err
	}
	if err := module.Validate(); err != nil {
		return err
	}
	return validateScore("score", score)
}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return cosmoserrors.ErrInvalidAddress.Wrapf("invalid %s address: %s", field, err)
	}
	return nil
}

func validateScore(field string, value sdkmath.Int) error {
	if value.IsNil() || value.IsNegative() {
		return cosmoserrors.ErrInvalidRequest.Wrapf("%s must be non-negative", field)
	}
	return nil
}
