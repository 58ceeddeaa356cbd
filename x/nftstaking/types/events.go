package types

// Event types and attribute keys emitted by the module.
const (
	EventTypeStake             = "nftstaking_stake"
	EventTypeStartUnbonding    = "nftstaking_start_unbonding"
	EventTypeClaimUnbonded     = "nftstaking_claim_unbonded"
	EventTypeClaimRewards      = "nftstaking_claim_rewards"
	EventTypeDistributeReward  = "nftstaking_distribute_reward"
	EventTypeUpdateDeb         = "nftstaking_update_deb"
	EventTypeRegisterPool      = "nftstaking_register_pool"
	EventTypeRegisterRewardTkn = "nftstaking_register_reward_token"

	AttributeKeyAddress    = "address"
	AttributeKeyCollection = "collection"
	AttributeKeyModule     = "module_type"
	AttributeKeyAmount     = "amount"
	AttributeKeyToken      = "token"
	AttributeKeyEpoch      = "epoch"
	AttributeKeyRate       = "rate"
	AttributeKeyDeb        = "deb"
	AttributeKeyTimestamp  = "timestamp"
)
