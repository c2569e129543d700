package mark

import (
	"math/rand"

	"github.com/yyyoichi/audiomark/internal/bitconv"
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

var _ codec = plain{}

// plain embeds the message bytes unchanged.
type plain struct{}

func (plain) encode(message []byte) []byte {
	return append([]byte{}, message...)
}

func (plain) decode(payload []byte, messageLen int) []byte {
	return append([]byte{}, payload[:messageLen]...)
}

func (plain) payloadLen(messageLen int) int {
	return messageLen
}

func (plain) name() string {
	return NameNone
}

var _ codec = golayCodec(0)

// golayCodec protects the message with an extended Golay(24,12) code and
// scatters the code bits over the payload, so a run of damaged windows is
// spread across many code words. The value is the scatter seed.
type golayCodec int64

func (g golayCodec) encode(message []byte) []byte {
	size := len(message) * 8
	if size == 0 {
		return []byte{}
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(packWords(bitconv.BytesToBools(message)), size)
	bits := unpackWords(encoded, enc.Bits())

	order := g.order(len(bits))
	scattered := make([]bool, len(bits))
	for i, j := range order {
		scattered[i] = bits[j]
	}
	return bitconv.BoolsToBytes(scattered)
}

func (g golayCodec) decode(payload []byte, messageLen int) []byte {
	size := messageLen * 8
	n := golay.EncodedBits(size)
	bits := bitconv.BytesToBools(payload)[:n]

	order := g.order(n)
	gathered := make([]bool, n)
	for i, j := range order {
		gathered[j] = bits[i]
	}

	var decoded []uint64
	dec := golay.NewDecoder(packWords(gathered), n)
	_ = dec.Decode(&decoded)
	return bitconv.BoolsToWholeBytes(unpackWords(decoded, size))
}

func (golayCodec) payloadLen(messageLen int) int {
	return (golay.EncodedBits(messageLen*8) + 7) / 8
}

func (golayCodec) name() string {
	return NameGolay
}

// order returns the seeded permutation of [0, n): payload bit i carries code bit order[i].
func (g golayCodec) order(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rd := rand.New(rand.NewSource(int64(g)))
	rd.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// packWords lays bits out in the word format the golay coder reads.
func packWords(bits []bool) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range bits {
		w.WriteBool(v)
	}
	return w.Data()
}

func unpackWords(data []uint64, size int) []bool {
	r := bitstream.NewBitReader(data, 0, 0)
	bits := make([]bool, size)
	for i := range bits {
		bits[i], _ = r.ReadBitAt(i)
	}
	return bits
}
