// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package codec serializes the values stored in the chain database.
//
// Records and scalars go through RLP: fields are written in declaration
// order with length prefixes and no version tag. A trailing byte after a
// record is corruption. Raw blocks have their own layout, see EncodeRawBlock.
//
// An empty list is stored the same way whether it was nil or empty and is
// always decoded as nil, so a record built with nil slices round-trips
// unchanged.
package codec

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// ErrDecode is returned when stored bytes cannot be decoded
var ErrDecode = errors.New("failed to decode value")

// EncodeValue serializes v
func EncodeValue(v interface{}) ([]byte, error) {
	if rb, ok := v.(*RawBlock); ok {
		return EncodeRawBlock(rb), nil
	}
	if rb, ok := v.(RawBlock); ok {
		return EncodeRawBlock(&rb), nil
	}
	b, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %T", v)
	}
	return b, nil
}

// DecodeValue deserializes b into the value pointed to by v
func DecodeValue(b []byte, v interface{}) error {
	if rb, ok := v.(*RawBlock); ok {
		decoded, err := DecodeRawBlock(b)
		if err != nil {
			return err
		}
		*rb = *decoded
		return nil
	}
	if err := rlp.DecodeBytes(b, v); err != nil {
		return errors.Wrapf(ErrDecode, "%T: %v", v, err)
	}
	nilEmptySlices(reflect.ValueOf(v))
	return nil
}

// nilEmptySlices replaces every empty slice reachable from v with nil
func nilEmptySlices(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			nilEmptySlices(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				nilEmptySlices(f)
			}
		}
	case reflect.Slice:
		if v.Len() == 0 {
			if !v.IsNil() && v.CanSet() {
				v.Set(reflect.Zero(v.Type()))
			}
			return
		}
		switch v.Type().Elem().Kind() {
		case reflect.Struct, reflect.Slice, reflect.Ptr:
			for i := 0; i < v.Len(); i++ {
				nilEmptySlices(v.Index(i))
			}
		}
	}
}

// MustEncode serializes v and panics on failure. Every stored type is a
// plain struct, so a failure means a programming error.
func MustEncode(v interface{}) []byte {
	b, err := EncodeValue(v)
	if err != nil {
		panic(err)
	}
	return b
}
