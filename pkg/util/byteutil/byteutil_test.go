// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package byteutil

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBigEndian(t *testing.T) {
	r := require.New(t)

	for _, v := range []uint32{0, 1, 255, 256, math.MaxUint32} {
		b := Uint32ToBytesBigEndian(v)
		r.Len(b, 4)
		r.Equal(v, BytesToUint32BigEndian(b))
	}
	for _, v := range []uint64{0, 1, 1 << 32, math.MaxUint64} {
		b := Uint64ToBytesBigEndian(v)
		r.Len(b, 8)
		r.Equal(v, BytesToUint64BigEndian(b))
	}
	r.Equal([]byte{0, 0, 1, 0}, Uint32ToBytesBigEndian(256))
	// numeric order matches byte order
	r.Equal(-1, bytes.Compare(Uint64ToBytesBigEndian(255), Uint64ToBytesBigEndian(256)))
}

func TestPrefixUpperBound(t *testing.T) {
	r := require.New(t)

	tests := []struct {
		prefix []byte
		limit  []byte
	}{
		{[]byte{'b'}, []byte{'c'}},
		{[]byte{'b', 0x01, 0xff}, []byte{'b', 0x02}},
		{[]byte{'b', 0xff, 0xff}, []byte{'c'}},
		{[]byte{0xff, 0xff}, nil},
		{nil, nil},
	}
	for _, test := range tests {
		r.Equal(test.limit, PrefixUpperBound(test.prefix))
	}
	prefix := []byte{'b', 0x01}
	_ = PrefixUpperBound(prefix)
	r.Equal([]byte{'b', 0x01}, prefix)
}

func TestCopyBytes(t *testing.T) {
	r := require.New(t)

	r.Nil(CopyBytes(nil))
	src := []byte("chain")
	dst := CopyBytes(src)
	dst[0] = 'C'
	r.Equal([]byte("chain"), src)
	r.Equal([]byte{}, CopyBytes([]byte{}))
}

func TestMust(t *testing.T) {
	r := require.New(t)

	r.Equal([]byte{1}, Must([]byte{1}, nil))
	r.Panics(func() { Must(nil, errors.New("failed")) })
}
