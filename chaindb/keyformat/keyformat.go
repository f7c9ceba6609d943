// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package keyformat encodes the logical keys of the chain database into
// ordered byte keys. Each record family is declared once as a KeyFormat made
// of a one-byte tag followed by fixed-width big-endian fields, so that the
// byte order of encoded keys equals the tuple order of their fields.
package keyformat

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
)

var (
	// ErrMalformedKey is returned when a raw key does not match its format
	ErrMalformedKey = errors.New("malformed key")
	// ErrUnknownTag is returned for a tag no format is registered for
	ErrUnknownTag = errors.New("unknown tag")
)

const _hashSize = len(hash.Hash256{})

type fieldKind uint8

const (
	kindUint32 fieldKind = iota
	kindUint64
	kindHash
)

func (k fieldKind) size() int {
	switch k {
	case kindUint32:
		return 4
	case kindUint64:
		return 8
	default:
		return _hashSize
	}
}

// KeyFormat describes the layout of one record family key
type KeyFormat struct {
	tag    Tag
	fields []fieldKind
	size   int
}

var (
	_registryMu sync.RWMutex
	_registry   = make(map[Tag]*KeyFormat)
)

// New declares a key format for tag. Each of fields is a sample value whose
// type gives the field layout: uint32, uint64 or hash.Hash256. Declaring the
// same tag twice panics.
func New(tag Tag, fields ...interface{}) *KeyFormat {
	kf := &KeyFormat{
		tag:  tag,
		size: 1,
	}
	for _, f := range fields {
		var kind fieldKind
		switch f.(type) {
		case uint32:
			kind = kindUint32
		case uint64:
			kind = kindUint64
		case hash.Hash256, *hash.Hash256:
			kind = kindHash
		default:
			panic(fmt.Sprintf("unsupported key field type %T", f))
		}
		kf.fields = append(kf.fields, kind)
		kf.size += kind.size()
	}
	_registryMu.Lock()
	defer _registryMu.Unlock()
	if _, exists := _registry[tag]; exists {
		panic(fmt.Sprintf("key format for tag %s already declared", tag))
	}
	_registry[tag] = kf
	return kf
}

// Tag returns the family tag
func (kf *KeyFormat) Tag() Tag { return kf.tag }

// Size returns the length of a full key
func (kf *KeyFormat) Size() int { return kf.size }

// NumFields returns the number of fields after the tag
func (kf *KeyFormat) NumFields() int { return len(kf.fields) }

// Encode builds the full key for values; wrong arity or types panic
func (kf *KeyFormat) Encode(values ...interface{}) []byte {
	if len(values) != len(kf.fields) {
		panic(fmt.Sprintf("key format %s expects %d fields, got %d", kf.tag, len(kf.fields), len(values)))
	}
	return kf.Prefix(values...)
}

// Prefix encodes the tag and a leading subset of the fields. The result is a
// prefix of every full key sharing those leading values.
func (kf *KeyFormat) Prefix(values ...interface{}) []byte {
	if len(values) > len(kf.fields) {
		panic(fmt.Sprintf("key format %s has %d fields, got %d", kf.tag, len(kf.fields), len(values)))
	}
	size := 1
	for i := range values {
		size += kf.fields[i].size()
	}
	buf := make([]byte, size)
	buf[0] = byte(kf.tag)
	offset := 1
	for i, v := range values {
		kind := kf.fields[i]
		switch kind {
		case kindUint32:
			binary.BigEndian.PutUint32(buf[offset:], mustUint32(kf.tag, v))
		case kindUint64:
			binary.BigEndian.PutUint64(buf[offset:], mustUint64(kf.tag, v))
		case kindHash:
			h := mustHash(kf.tag, v)
			copy(buf[offset:], h[:])
		}
		offset += kind.size()
	}
	return buf
}

// Decode parses raw into dst, which holds one pointer per field: *uint32,
// *uint64 or *hash.Hash256. A nil pointer skips its field and dst may be
// shorter than the field list.
func (kf *KeyFormat) Decode(raw []byte, dst ...interface{}) error {
	if len(raw) != kf.size {
		return errors.Wrapf(ErrMalformedKey, "key %x has length %d, %s keys have %d", raw, len(raw), kf.tag, kf.size)
	}
	if Tag(raw[0]) != kf.tag {
		return errors.Wrapf(ErrMalformedKey, "key %x has tag %s, expecting %s", raw, Tag(raw[0]), kf.tag)
	}
	if len(dst) > len(kf.fields) {
		return errors.Errorf("key format %s has %d fields, got %d destinations", kf.tag, len(kf.fields), len(dst))
	}
	offset := 1
	for i, kind := range kf.fields {
		if i < len(dst) && dst[i] != nil {
			if err := decodeField(kind, raw[offset:offset+kind.size()], dst[i]); err != nil {
				return errors.Wrapf(err, "field %d of %s key", i, kf.tag)
			}
		}
		offset += kind.size()
	}
	return nil
}

// Values decodes every field of raw into a slice of uint32, uint64 and
// hash.Hash256 values
func (kf *KeyFormat) Values(raw []byte) ([]interface{}, error) {
	dst := make([]interface{}, len(kf.fields))
	for i, kind := range kf.fields {
		switch kind {
		case kindUint32:
			dst[i] = new(uint32)
		case kindUint64:
			dst[i] = new(uint64)
		case kindHash:
			dst[i] = new(hash.Hash256)
		}
	}
	if err := kf.Decode(raw, dst...); err != nil {
		return nil, err
	}
	values := make([]interface{}, len(dst))
	for i, d := range dst {
		switch v := d.(type) {
		case *uint32:
			values[i] = *v
		case *uint64:
			values[i] = *v
		case *hash.Hash256:
			values[i] = *v
		}
	}
	return values, nil
}

// Lookup returns the key format declared for tag
func Lookup(tag Tag) (*KeyFormat, bool) {
	_registryMu.RLock()
	defer _registryMu.RUnlock()
	kf, ok := _registry[tag]
	return kf, ok
}

// Parse decodes any key into its tag and field values
func Parse(raw []byte) (Tag, []interface{}, error) {
	if len(raw) == 0 {
		return 0, nil, errors.Wrap(ErrMalformedKey, "empty key")
	}
	tag := Tag(raw[0])
	kf, ok := Lookup(tag)
	if !ok {
		return tag, nil, errors.Wrapf(ErrMalformedKey, "unknown tag 0x%02x", raw[0])
	}
	values, err := kf.Values(raw)
	if err != nil {
		return tag, nil, err
	}
	return tag, values, nil
}

func decodeField(kind fieldKind, b []byte, dst interface{}) error {
	switch kind {
	case kindUint32:
		p, ok := dst.(*uint32)
		if !ok {
			return errors.Errorf("expecting *uint32, got %T", dst)
		}
		*p = binary.BigEndian.Uint32(b)
	case kindUint64:
		p, ok := dst.(*uint64)
		if !ok {
			return errors.Errorf("expecting *uint64, got %T", dst)
		}
		*p = binary.BigEndian.Uint64(b)
	case kindHash:
		p, ok := dst.(*hash.Hash256)
		if !ok {
			return errors.Errorf("expecting *hash.Hash256, got %T", dst)
		}
		copy(p[:], b)
	}
	return nil
}

func mustUint32(tag Tag, v interface{}) uint32 {
	u, ok := v.(uint32)
	if !ok {
		panic(fmt.Sprintf("key format %s expects uint32, got %T", tag, v))
	}
	return u
}

func mustUint64(tag Tag, v interface{}) uint64 {
	u, ok := v.(uint64)
	if !ok {
		panic(fmt.Sprintf("key format %s expects uint64, got %T", tag, v))
	}
	return u
}

func mustHash(tag Tag, v interface{}) hash.Hash256 {
	switch h := v.(type) {
	case hash.Hash256:
		return h
	case *hash.Hash256:
		return *h
	default:
		panic(fmt.Sprintf("key format %s expects hash.Hash256, got %T", tag, v))
	}
}
