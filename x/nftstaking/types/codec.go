package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

// ParamsValue encodes Params in the module store.
var ParamsValue collcodec.ValueCodec[Params] = jsonValue[Params]{name: "nftstaking.Params"}

type jsonValue[T any] struct {
	name string
}

func (v jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (v jsonValue[T]) Decode(b []byte) (T, error) {
	var value T
	if err := json.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("decode %s: %w", v.name, err)
	}
	return value, nil
}

func (v jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return v.Encode(value)
}

func (v jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	return v.Decode(b)
}

func (v jsonValue[T]) Stringify(value T) string {
	bz, err := v.Encode(value)
	if err != nil {
		return fmt.Sprintf("%+v", value)
	}
	return string(bz)
}

func (v jsonValue[T]) ValueType() string {
	return v.name
}
