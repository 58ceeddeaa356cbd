// Package nftstaking stakes NFT and SFT collections against score tracks and pays reward
// tokens per epoch in proportion to the staked score.
//
// Messages are plain Go structs handled by keeper.MsgServer. The module has no protobuf
// Msg or Query service and does not implement RegisterServices, so it cannot be mounted
// in an application's Msg router until generated types are added. Genesis, invariants
// and the keeper API are wired through AppModule.
package nftstaking
