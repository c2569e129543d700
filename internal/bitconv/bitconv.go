// Package bitconv converts between bytes and MSB-first bit slices, the order in
// which message bits are spread over the audio windows.
package bitconv

// BytesToBools expands b into its bits, most significant bit first.
func BytesToBools(b []byte) []bool {
	bits := make([]bool, len(b)*8)
	for i := range bits {
		bits[i] = b[i/8]&(0x80>>uint(i%8)) != 0
	}
	return bits
}

// BoolsToBytes packs bits MSB-first. A trailing partial byte is padded with
// zero bits.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	pack(out, bits)
	return out
}

// BoolsToWholeBytes packs bits MSB-first and drops a trailing partial byte.
func BoolsToWholeBytes(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	pack(out, bits[:len(out)*8])
	return out
}

func pack(out []byte, bits []bool) {
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
}
