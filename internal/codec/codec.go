package codec

import (
	"bytes"
	"encoding/hex"
)

// Signature is the 4-byte header that marks a BRD file as encoded.
var Signature = [4]byte{0x23, 0xE2, 0x63, 0x28}

// decodeTable caches DecodeByte for every possible input byte.
var decodeTable = func() (t [256]byte) {
	for i := range t {
		t[i] = DecodeByte(byte(i))
	}
	return t
}()

// IsEncoded reports whether buf starts with [Signature]. Buffers shorter
// than the signature are never encoded.
func IsEncoded(buf []byte) bool {
	return len(buf) >= len(Signature) && bytes.Equal(buf[:len(Signature)], Signature[:])
}

// DecodeByte maps one encoded byte back to its plain value. CR, LF and NUL
// are never obfuscated and pass through unchanged.
func DecodeByte(b byte) byte {
	switch b {
	case '\r', '\n', 0x00:
		return b
	}
	high := (b >> 6) & 0x03
	shifted := b << 2 // byte arithmetic truncates; no carry into bit 0
	return ^(high | shifted)
}

// DecodeBuffer returns the decoded form of buf. When buf is not encoded it
// is returned as-is (same slice). Otherwise a new slice of the same length
// is returned in which every byte, including the four signature bytes, has
// been passed through [DecodeByte].
func DecodeBuffer(buf []byte) []byte {
	if !IsEncoded(buf) {
		return buf
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = decodeTable[b]
	}
	return out
}

// SignatureHex formats the first four bytes of buf as lowercase hex, or
// "N/A" when buf is too short to carry a signature.
func SignatureHex(buf []byte) string {
	if len(buf) < len(Signature) {
		return "N/A"
	}
	return hex.EncodeToString(buf[:len(Signature)])
}

// Encode produces a buffer that [DecodeBuffer] turns back into plain. It
// prepends nothing: callers that want a recognisable file must start plain
// with the decoded form of [Signature] (see [SignaturePlain]).
//
// Plain bytes 0xFF, 0xD7 and 0xCB cannot round-trip because their encoded
// form collides with NUL, LF and CR, which the decoder passes through.
func Encode(plain []byte) []byte {
	out := make([]byte, len(plain))
	for i, p := range plain {
		switch p {
		case '\r', '\n', 0x00:
			out[i] = p
			continue
		}
		n := ^p
		out[i] = n>>2 | n<<6
	}
	return out
}

// SignaturePlain is what the four signature bytes decode to. Prefixing
// plain text with it and running [Encode] yields a buffer that is
// recognised by [IsEncoded].
var SignaturePlain = func() (p [4]byte) {
	for i, b := range Signature {
		p[i] = DecodeByte(b)
	}
	return p
}()
