package ais

import "ais_relay/internal/sixbit"

// BinaryData is an opaque application payload carried by the binary
// message types. The exact bit count is kept so re-encoding reproduces the
// original total length; the content is not interpreted here.
type BinaryData struct {
	NumBits int    `json:"num_bits"`
	Data    []byte `json:"data"` // packed MSB-first
}

func decodeBinaryData(buf *sixbit.Buffer, bits int) (BinaryData, error) {
	data, err := buf.ReadBits(bits)
	if err != nil {
		return BinaryData{}, err
	}
	return BinaryData{NumBits: bits, Data: data}, nil
}

func (d BinaryData) encode(enc *sixbit.Encoder) {
	enc.WriteBits(d.Data, d.NumBits)
}

// AddressedBinaryMessage is message type 6, an addressed binary message
// with a 16-bit application identifier. 88 bits of fixed fields plus a
// variable payload.
type AddressedBinaryMessage struct {
	Header
	SeqNum     uint8      `json:"seq_num"` // 2 bits
	DestMMSI   uint32     `json:"dest_mmsi"`
	Retransmit bool       `json:"retransmit"`
	Spare      uint8      `json:"spare"` // 1 bit
	DAC        uint16     `json:"dac"`   // 10 bits, designated area code
	FI         uint8      `json:"fi"`    // 6 bits, function identifier
	Data       BinaryData `json:"data"`
}

func (m *AddressedBinaryMessage) decodeBody(buf *sixbit.Buffer) error {
	m.SeqNum = uint8(buf.Uint(2))
	m.DestMMSI = uint32(buf.Uint(30))
	m.Retransmit = flag(buf.Uint(1))
	m.Spare = uint8(buf.Uint(1))
	m.DAC = uint16(buf.Uint(10))
	m.FI = uint8(buf.Uint(6))
	if err := buf.Err(); err != nil {
		return nil // latched, reported by Decode
	}
	var err error
	m.Data, err = decodeBinaryData(buf, buf.Remaining())
	return err
}

func (m *AddressedBinaryMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.SeqNum), 2)
	enc.WriteUint(uint64(m.DestMMSI), 30)
	enc.WriteBool(m.Retransmit)
	enc.WriteUint(uint64(m.Spare), 1)
	enc.WriteUint(uint64(m.DAC), 10)
	enc.WriteUint(uint64(m.FI), 6)
	m.Data.encode(enc)
}

// BinaryBroadcastMessage is message type 8, a broadcast binary message.
// 56 bits of fixed fields plus a variable payload.
type BinaryBroadcastMessage struct {
	Header
	Spare uint8      `json:"spare"` // 2 bits
	DAC   uint16     `json:"dac"`   // 10 bits
	FI    uint8      `json:"fi"`    // 6 bits
	Data  BinaryData `json:"data"`
}

func (m *BinaryBroadcastMessage) decodeBody(buf *sixbit.Buffer) error {
	m.Spare = uint8(buf.Uint(2))
	m.DAC = uint16(buf.Uint(10))
	m.FI = uint8(buf.Uint(6))
	if err := buf.Err(); err != nil {
		return nil
	}
	var err error
	m.Data, err = decodeBinaryData(buf, buf.Remaining())
	return err
}

func (m *BinaryBroadcastMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare), 2)
	enc.WriteUint(uint64(m.DAC), 10)
	enc.WriteUint(uint64(m.FI), 6)
	m.Data.encode(enc)
}

// GNSSBroadcastMessage is message type 17, the GNSS differential
// correction broadcast. The correction data is carried opaque.
type GNSSBroadcastMessage struct {
	Header
	Spare1 uint8          `json:"spare1"` // 2 bits
	Pos    CoarsePosition `json:"pos"`    // 18 + 17 bits, 1/10 minute
	Spare2 uint8          `json:"spare2"` // 5 bits
	Data   BinaryData     `json:"data"`
}

func (m *GNSSBroadcastMessage) decodeBody(buf *sixbit.Buffer) error {
	m.Spare1 = uint8(buf.Uint(2))
	m.Pos = decodeCoarsePosition(buf)
	m.Spare2 = uint8(buf.Uint(5))
	if err := buf.Err(); err != nil {
		return nil
	}
	var err error
	m.Data, err = decodeBinaryData(buf, buf.Remaining())
	return err
}

func (m *GNSSBroadcastMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare1), 2)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.Spare2), 5)
	m.Data.encode(enc)
}
