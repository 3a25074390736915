package ais

import "ais_relay/internal/sixbit"

// AddressedSafetyMessage is message type 12, safety-related text addressed
// to one station. 72 bits of fixed fields plus up to 156 six-bit text
// characters.
type AddressedSafetyMessage struct {
	Header
	SeqNum     uint8  `json:"seq_num"` // 2 bits
	DestMMSI   uint32 `json:"dest_mmsi"`
	Retransmit bool   `json:"retransmit"`
	Spare      uint8  `json:"spare"` // 1 bit
	Text       string `json:"text"`  // variable, six-bit chars
}

func (m *AddressedSafetyMessage) decodeBody(buf *sixbit.Buffer) error {
	m.SeqNum = uint8(buf.Uint(2))
	m.DestMMSI = uint32(buf.Uint(30))
	m.Retransmit = flag(buf.Uint(1))
	m.Spare = uint8(buf.Uint(1))
	m.Text = buf.Text(buf.Remaining() / 6)
	return nil
}

func (m *AddressedSafetyMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.SeqNum), 2)
	enc.WriteUint(uint64(m.DestMMSI), 30)
	enc.WriteBool(m.Retransmit)
	enc.WriteUint(uint64(m.Spare), 1)
	enc.WriteString(m.Text)
}

// SafetyBroadcastMessage is message type 14, broadcast safety-related
// text. 40 bits of fixed fields plus up to 161 six-bit text characters.
type SafetyBroadcastMessage struct {
	Header
	Spare uint8  `json:"spare"` // 2 bits
	Text  string `json:"text"`
}

func (m *SafetyBroadcastMessage) decodeBody(buf *sixbit.Buffer) error {
	m.Spare = uint8(buf.Uint(2))
	m.Text = buf.Text(buf.Remaining() / 6)
	return nil
}

func (m *SafetyBroadcastMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare), 2)
	enc.WriteString(m.Text)
}
