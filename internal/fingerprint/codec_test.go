package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeORBRoundTrip(t *testing.T) {
	descriptors := []Descriptor{
		{X: 3, Y: 9, Angle: 1.25, Data: [32]byte{1, 2, 3}},
		{X: 100, Y: 200, Angle: -0.5, Data: [32]byte{0xff, 0xee}},
	}

	encoded, err := EncodeORB(descriptors)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)

	decoded, err := DecodeORB(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(descriptors))
	for i := range descriptors {
		assert.Equal(t, descriptors[i].X, decoded[i].X)
		assert.Equal(t, descriptors[i].Y, decoded[i].Y)
		assert.InDelta(t, descriptors[i].Angle, decoded[i].Angle, 1e-6)
		assert.Equal(t, descriptors[i].Data, decoded[i].Data)
	}
}

func TestEncodeORBCapsAtMaxEncoded(t *testing.T) {
	descriptors := make([]Descriptor, orbMaxEncoded+10)
	for i := range descriptors {
		descriptors[i] = Descriptor{X: uint32(i)}
	}

	encoded, err := EncodeORB(descriptors)
	require.NoError(t, err)

	decoded, err := DecodeORB(encoded)
	require.NoError(t, err)
	assert.Len(t, decoded, orbMaxEncoded)
}

func TestDecodeORBRejectsTruncatedPayload(t *testing.T) {
	_, err := DecodeORB("AAAAZA==")
	assert.Error(t, err)
}

func TestDecodeORBRejectsInvalidBase64(t *testing.T) {
	_, err := DecodeORB("not-valid-base64!!")
	assert.Error(t, err)
}
