package raffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutSplit_UnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    PayoutSplit
		wantErr bool
	}{
		{"classic_split", "50,30,20", PayoutSplit{50, 30, 20}, false},
		{"spaces_tolerated", " 60, 25, 15 ", PayoutSplit{60, 25, 15}, false},
		{"winner_takes_all", "100", PayoutSplit{100}, false},
		{"empty", "", nil, true},
		{"does_not_sum_to_100", "50,30,10", nil, true},
		{"zero_share", "100,0", nil, true},
		{"negative_share", "120,-20", nil, true},
		{"garbage", "fifty,thirty,twenty", nil, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p PayoutSplit

			err := p.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{
		SeedFund:         1_500_000,
		WinnerCount:      3,
		PayoutSplit:      PayoutSplit{50, 30, 20},
		PointsPerTicket:  1,
		PointsForSelling: 10,
	}

	assert.NoError(t, valid.Validate())

	noSeed := valid
	noSeed.SeedFund = 0
	assert.Error(t, noSeed.Validate())

	noWinners := valid
	noWinners.WinnerCount = 0
	assert.Error(t, noWinners.Validate())

	mismatch := valid
	mismatch.WinnerCount = 2
	assert.Error(t, mismatch.Validate())
}
