package fingerprint

import (
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/arikiri/imagedup/pkg/api"
)

const orbDescriptorRecordSize = 4 + 4 + 4 + 32 // x, y, angle, data

// EncodeORB serializes up to orbMaxEncoded descriptors as a length-prefixed
// binary payload (u32 count, then per descriptor: x, y as u32 little-endian,
// angle as f32 little-endian, 32 bytes of descriptor data), Base64-encoded.
func EncodeORB(descriptors []Descriptor) (string, error) {
	count := len(descriptors)
	if count > orbMaxEncoded {
		count = orbMaxEncoded
	}

	buf := make([]byte, 4+count*orbDescriptorRecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(count))

	off := 4
	for i := 0; i < count; i++ {
		d := descriptors[i]
		binary.LittleEndian.PutUint32(buf[off:off+4], d.X)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], d.Y)
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(d.Angle))
		copy(buf[off+12:off+44], d.Data[:])
		off += orbDescriptorRecordSize
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecodeORB parses a payload produced by EncodeORB, validating that the
// declared count fits within the available data.
func DecodeORB(encoded string) ([]Descriptor, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, api.Wrap(api.CodecError, "decode ORB base64 payload", err)
	}
	if len(data) < 4 {
		return nil, api.NewError(api.CodecError, "ORB payload missing count header")
	}

	count := int(binary.LittleEndian.Uint32(data[0:4]))
	needed := 4 + count*orbDescriptorRecordSize
	if needed > len(data) {
		return nil, api.NewError(api.CodecError, "ORB feature data truncated")
	}

	descriptors := make([]Descriptor, count)
	off := 4
	for i := 0; i < count; i++ {
		d := Descriptor{}
		d.X = binary.LittleEndian.Uint32(data[off : off+4])
		d.Y = binary.LittleEndian.Uint32(data[off+4 : off+8])
		d.Angle = math.Float32frombits(binary.LittleEndian.Uint32(data[off+8 : off+12]))
		copy(d.Data[:], data[off+12:off+44])
		descriptors[i] = d
		off += orbDescriptorRecordSize
	}
	return descriptors, nil
}
