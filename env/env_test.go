// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package env

import (
	"strings"
	"testing"
	"time"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/stretchr/testify/require"
)

func TestEnv_NewCopiesFunds(t *testing.T) {
	require := require.New(t)
	funds := common.Coins{common.NewCoin(10, "u")}
	block := Block{Height: 5, Time: time.Unix(100, 0), ChainID: "test"}

	env := New(block, "contract", "sender", funds)
	funds[0] = common.NewCoin(99, "x")

	require.Equal(block, env.Block)
	require.Equal(common.Address("contract"), env.Contract)
	require.Equal(common.Address("sender"), env.Sender)
	require.Equal(common.Coins{common.NewCoin(10, "u")}, env.Funds)
}

func TestClock_AdvanceMovesHeightAndTime(t *testing.T) {
	require := require.New(t)
	genesis := Block{Height: 1, Time: time.Unix(1000, 0), ChainID: "test"}
	clock := NewClock(genesis, 5*time.Second)

	clock.Advance(3)
	require.Equal(uint64(4), clock.Block().Height)
	require.Equal(time.Unix(1015, 0), clock.Block().Time)
	require.Equal("test", clock.Block().ChainID)

	require.NoError(clock.AdvanceTime(time.Minute))
	require.Equal(uint64(4), clock.Block().Height)
	require.Equal(time.Unix(1075, 0), clock.Block().Time)
}

func TestClock_CanNotMoveBackwards(t *testing.T) {
	require := require.New(t)
	clock := NewClock(Block{Height: 10, Time: time.Unix(1000, 0)}, time.Second)

	require.ErrorIs(clock.AdvanceTime(-time.Second), ErrClockMonotonic)
	require.ErrorIs(clock.Set(9, time.Unix(2000, 0)), ErrClockMonotonic)
	require.ErrorIs(clock.Set(11, time.Unix(999, 0)), ErrClockMonotonic)
	require.Equal(Block{Height: 10, Time: time.Unix(1000, 0)}, clock.Block())

	require.NoError(clock.Set(20, time.Unix(3000, 0)))
	require.Equal(uint64(20), clock.Block().Height)
}

func TestMockApi_RoundTrip(t *testing.T) {
	require := require.New(t)
	api := MockApi{}

	for _, address := range []common.Address{"alice", common.ContractAddress("counter", 1)} {
		canonical, err := api.CanonicalizeAddress(address)
		require.NoError(err)
		human, err := api.HumanizeAddress(canonical)
		require.NoError(err)
		require.Equal(address, human)
	}
}

func TestMockApi_RejectsInvalidAddresses(t *testing.T) {
	api := MockApi{}
	for _, address := range []common.Address{"", "ab", "with space", common.Address(strings.Repeat("a", 65))} {
		_, err := api.CanonicalizeAddress(address)
		require.ErrorIs(t, err, common.ErrInvalidAddress, "address %q", address)
	}
	_, err := api.HumanizeAddress(CanonicalAddress{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, common.ErrInvalidAddress)
}

// strictApi fails every conversion, so tests can check it is not consulted.
type strictApi struct{}

func (strictApi) CanonicalizeAddress(common.Address) (CanonicalAddress, error) {
	return nil, common.ErrInvalidAddress
}

func (strictApi) HumanizeAddress(CanonicalAddress) (common.Address, error) {
	return "", common.ErrInvalidAddress
}

func TestMaybeEmpty_EmptyAddressesSkipConversion(t *testing.T) {
	require := require.New(t)

	canonical, err := CanonicalizeMaybeEmpty(strictApi{}, "")
	require.NoError(err)
	require.Empty(canonical)

	human, err := HumanizeMaybeEmpty(strictApi{}, nil)
	require.NoError(err)
	require.True(human.IsEmpty())

	human, err = HumanizeMaybeEmpty(strictApi{}, CanonicalAddress{})
	require.NoError(err)
	require.True(human.IsEmpty())
}

func TestMaybeEmpty_NonEmptyAddressesAreConverted(t *testing.T) {
	require := require.New(t)

	_, err := CanonicalizeMaybeEmpty(strictApi{}, "alice")
	require.ErrorIs(err, common.ErrInvalidAddress)
	_, err = HumanizeMaybeEmpty(strictApi{}, CanonicalAddress("alice"))
	require.ErrorIs(err, common.ErrInvalidAddress)

	canonical, err := CanonicalizeMaybeEmpty(MockApi{}, "alice")
	require.NoError(err)
	require.Equal(CanonicalAddress("alice"), canonical)
}
