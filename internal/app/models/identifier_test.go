package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRegistrantID(t *testing.T) {
	assert.Equal(t, "P-0001", FormatRegistrantID(1))
	assert.Equal(t, "P-0042", FormatRegistrantID(42))
	assert.Equal(t, "P-9999", FormatRegistrantID(9999))
	// sequence can outgrow the zero padding
	assert.Equal(t, "P-10000", FormatRegistrantID(10000))
}

func TestFormatTeamID(t *testing.T) {
	assert.Equal(t, "T-0001", FormatTeamID(1))
	assert.Equal(t, "T-0317", FormatTeamID(317))
}

func TestIdentifierSequence(t *testing.T) {
	seq, err := IdentifierSequence("P-0007")
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	seq, err = IdentifierSequence("T-10001")
	require.NoError(t, err)
	assert.Equal(t, 10001, seq)
}

func TestIdentifierSequenceMalformed(t *testing.T) {
	for _, id := range []string{"", "P0001", "X-0001", "P-", "P-abc", "P--1"} {
		_, err := IdentifierSequence(id)
		assert.Error(t, err, "expected error for %q", id)
	}
}
