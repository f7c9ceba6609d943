// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// _rawBlockVersion leads every encoded raw block
const _rawBlockVersion byte = 0x01

// EncodeRawBlock serializes rb as
//
//	0x01 | uvarint(len(block)) | block | uvarint(n) | n * (uvarint(len(tx)) | tx)
func EncodeRawBlock(rb *RawBlock) []byte {
	size := 1 + binary.MaxVarintLen64*(2+len(rb.Transactions)) + len(rb.Block)
	for _, tx := range rb.Transactions {
		size += len(tx)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, _rawBlockVersion)
	buf = binary.AppendUvarint(buf, uint64(len(rb.Block)))
	buf = append(buf, rb.Block...)
	buf = binary.AppendUvarint(buf, uint64(len(rb.Transactions)))
	for _, tx := range rb.Transactions {
		buf = binary.AppendUvarint(buf, uint64(len(tx)))
		buf = append(buf, tx...)
	}
	return buf
}

// DecodeRawBlock is the inverse of EncodeRawBlock
func DecodeRawBlock(b []byte) (*RawBlock, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrDecode, "empty raw block")
	}
	if b[0] != _rawBlockVersion {
		return nil, errors.Wrapf(ErrDecode, "unknown raw block version %d", b[0])
	}
	d := rawBlockDecoder{buf: b[1:]}
	rb := &RawBlock{
		Block: d.bytes(),
	}
	n := d.uvarint()
	// every transaction takes at least one length byte
	if d.err == nil && n > uint64(len(d.buf)) {
		d.err = errors.Errorf("transaction count %d exceeds remaining %d bytes", n, len(d.buf))
	}
	if d.err == nil && n > 0 {
		rb.Transactions = make([][]byte, 0, n)
		for i := uint64(0); i < n && d.err == nil; i++ {
			rb.Transactions = append(rb.Transactions, d.bytes())
		}
	}
	if d.err == nil && len(d.buf) != 0 {
		d.err = errors.Errorf("%d trailing bytes", len(d.buf))
	}
	if d.err != nil {
		return nil, errors.Wrapf(ErrDecode, "raw block: %v", d.err)
	}
	return rb, nil
}

type rawBlockDecoder struct {
	buf []byte
	err error
}

func (d *rawBlockDecoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf)
	if n <= 0 {
		d.err = errors.New("truncated length")
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *rawBlockDecoder) bytes() []byte {
	size := d.uvarint()
	if d.err != nil {
		return nil
	}
	if size > uint64(len(d.buf)) {
		d.err = errors.Errorf("length %d exceeds remaining %d bytes", size, len(d.buf))
		return nil
	}
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	copy(out, d.buf[:size])
	d.buf = d.buf[size:]
	return out
}
