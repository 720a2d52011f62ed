package tuid

// alphabet is the 32-character set of the text form. Lowercase only; decoding
// is case-sensitive.
const alphabet = "0123456789abcdefghijklmnopqrstuv"

// dec maps input bytes to their 5-bit values, with 0xFF marking bytes outside
// the alphabet. Built once at package init, read-only afterwards.
var dec [256]byte

func init() {
	for i := range dec {
		dec[i] = 0xFF
	}
	for i := 0; i < len(alphabet); i++ {
		dec[alphabet[i]] = byte(i)
	}
}

// encode packs the 12 raw bytes into twenty 5-bit groups. 96 bits do not fill
// 100, so the final character carries only the low bit of the last byte; its
// remaining bits are always zero.
func encode(dst *[encodedLen]byte, id *ID) {
	dst[0] = alphabet[id[0]>>3]
	dst[1] = alphabet[(id[1]>>6)&0x1F|(id[0]<<2)&0x1F]
	dst[2] = alphabet[(id[1]>>1)&0x1F]
	dst[3] = alphabet[(id[2]>>4)&0x1F|(id[1]<<4)&0x1F]
	dst[4] = alphabet[id[3]>>7|(id[2]<<1)&0x1F]
	dst[5] = alphabet[(id[3]>>2)&0x1F]
	dst[6] = alphabet[id[4]>>5|(id[3]<<3)&0x1F]
	dst[7] = alphabet[id[4]&0x1F]
	dst[8] = alphabet[id[5]>>3]
	dst[9] = alphabet[(id[6]>>6)&0x1F|(id[5]<<2)&0x1F]
	dst[10] = alphabet[(id[6]>>1)&0x1F]
	dst[11] = alphabet[(id[7]>>4)&0x1F|(id[6]<<4)&0x1F]
	dst[12] = alphabet[id[8]>>7|(id[7]<<1)&0x1F]
	dst[13] = alphabet[(id[8]>>2)&0x1F]
	dst[14] = alphabet[id[9]>>5|(id[8]<<3)&0x1F]
	dst[15] = alphabet[id[9]&0x1F]
	dst[16] = alphabet[id[10]>>3]
	dst[17] = alphabet[(id[11]>>6)&0x1F|(id[10]<<2)&0x1F]
	dst[18] = alphabet[(id[11]>>1)&0x1F]
	dst[19] = alphabet[(id[11]<<4)&0x1F]
}

// decodeString is the single validation and decode path for the text form.
// It reports false on wrong length or any byte outside the alphabet, leaving
// id untouched in that case.
func decodeString(id *ID, s string) bool {
	if len(s) != encodedLen {
		return false
	}
	for i := 0; i < encodedLen; i++ {
		if dec[s[i]] == 0xFF {
			return false
		}
	}
	id[0] = dec[s[0]]<<3 | dec[s[1]]>>2
	id[1] = dec[s[1]]<<6 | dec[s[2]]<<1 | dec[s[3]]>>4
	id[2] = dec[s[3]]<<4 | dec[s[4]]>>1
	id[3] = dec[s[4]]<<7 | dec[s[5]]<<2 | dec[s[6]]>>3
	id[4] = dec[s[6]]<<5 | dec[s[7]]
	id[5] = dec[s[8]]<<3 | dec[s[9]]>>2
	id[6] = dec[s[9]]<<6 | dec[s[10]]<<1 | dec[s[11]]>>4
	id[7] = dec[s[11]]<<4 | dec[s[12]]>>1
	id[8] = dec[s[12]]<<7 | dec[s[13]]<<2 | dec[s[14]]>>3
	id[9] = dec[s[14]]<<5 | dec[s[15]]
	id[10] = dec[s[16]]<<3 | dec[s[17]]>>2
	id[11] = dec[s[17]]<<6 | dec[s[18]]<<1 | dec[s[19]]>>4
	return true
}
