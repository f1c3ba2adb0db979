// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/amount"
	"github.com/0xsoniclabs/ensemble/contracts"
	"github.com/0xsoniclabs/ensemble/ensemble"
	"github.com/stretchr/testify/require"
)

const spawnScenario = `
chain_id: scenario-1
balances:
  alice: 100u
steps:
  - instantiate:
      code: counter
      sender: alice
      funds: 100u
      msg: {count: 1}
      as: a
  - execute:
      contract: $a
      sender: alice
      msg:
        increment: true
        set: {key: k, value: v1}
        spawn: {code: counter, msg: {count: 7}, funds: 30u}
  - expect_balance: {address: $a, coins: 70u}
  - query:
      contract: $a
      msg: {get: k}
      expect: {value: v1}
  - query:
      contract: $a
      msg: {count: true}
      expect: {count: 2}
  - execute:
      contract: $a
      sender: alice
      msg:
        spawn: {code: counter, msg: {fail: refused}, funds: 30u}
    expect_error: refused
  - expect_balance: {address: $a, coins: 70u}
  - advance: {blocks: 2, time: 10s}
  - query:
      contract: missing
      msg: {count: true}
    expect_error: unknown contract
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadScenario_ParsesSteps(t *testing.T) {
	require := require.New(t)
	scenario, err := LoadScenario(writeScenario(t, spawnScenario))
	require.NoError(err)
	require.Equal("scenario-1", scenario.ChainID)
	require.Equal(map[string]string{"alice": "100u"}, scenario.Balances)
	require.Len(scenario.Steps, 9)
	require.Equal("a", scenario.Steps[0].Instantiate.As)
	require.Equal("refused", scenario.Steps[5].ExpectError)
	require.Equal(uint64(2), scenario.Steps[7].Advance.Blocks)
	require.Equal(10*time.Second, scenario.Steps[7].Advance.Time)
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "steps:\n  - destroy: {}\n"))
	require.Error(t, err)
}

func TestLoadScenario_MissingFileFails(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunScenario_RunsAllSteps(t *testing.T) {
	require := require.New(t)
	scenario, err := LoadScenario(writeScenario(t, spawnScenario))
	require.NoError(err)

	out := &bytes.Buffer{}
	e, err := RunScenario(scenario, ensemble.DefaultConfig(), out)
	require.NoError(err, out.String())

	a := common.ContractAddress(contracts.CounterCode, 1)
	b := common.ContractAddress(contracts.CounterCode, 2)
	require.ElementsMatch([]common.Address{a, b}, e.Contracts())
	require.Equal(amount.New(70), e.Balance(a, "u"))
	require.Equal(amount.New(30), e.Balance(b, "u"))
	require.Equal(uint64(3), e.Block().Height)
	require.Contains(out.String(), "a = "+a.String())
	require.NotContains(out.String(), "FAILED")
}

func TestRunScenario_ReportsFailedStepsAndContinues(t *testing.T) {
	require := require.New(t)
	scenario, err := LoadScenario(writeScenario(t, `
balances:
  alice: 10u
steps:
  - expect_balance: {address: alice, coins: 11u}
  - execute: {contract: $unknown, sender: alice}
  - instantiate: {code: counter, sender: alice}
    expect_error: something
  - {}
  - expect_balance: {address: alice, coins: 10u}
`))
	require.NoError(err)

	out := &bytes.Buffer{}
	_, err = RunScenario(scenario, ensemble.DefaultConfig(), out)
	require.ErrorContains(err, "step 1 (expect_balance)")
	require.ErrorContains(err, `unknown alias "unknown"`)
	require.ErrorContains(err, "but step succeeded")
	require.ErrorContains(err, "exactly one action")
	require.NotContains(err.Error(), "step 5")
	require.Contains(out.String(), "  5 expect_balance ok     10u")
}

func TestRunScenario_RejectsInvalidBalances(t *testing.T) {
	scenario := &Scenario{Balances: map[string]string{"alice": "lots"}}
	_, err := RunScenario(scenario, ensemble.DefaultConfig(), &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrInvalidCoins)
}
