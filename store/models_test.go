package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		subPlan string
		want    Tier
	}{
		{"Prime", TierPrime},
		{"1000", TierOne},
		{"2000", TierTwo},
		{"3000", TierThree},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.subPlan)
		require.NoError(t, err, tt.subPlan)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "prime", "4000", "500", "tier1"} {
		_, err := ParseTier(bad)
		assert.Error(t, err, "sub plan %q", bad)
	}
}

func TestMsgTypeValid(t *testing.T) {
	for _, mt := range []MsgType{MsgTypeMessage, MsgTypeAction, MsgTypeBits, MsgTypeSub} {
		assert.True(t, mt.Valid())
	}
	assert.False(t, MsgType("whisper").Valid())
	assert.False(t, MsgType("").Valid())
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "prime", TierPrime.String())
	assert.Equal(t, "tier3", TierThree.String())
	assert.Equal(t, "tier(9)", Tier(9).String())
}
