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
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/result"
	"github.com/0xsoniclabs/ensemble/contracts"
	"github.com/0xsoniclabs/ensemble/ensemble"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scenario is a sequence of steps run against a fresh ensemble with the
// reference contracts registered. Addresses in steps may refer to
// instantiated contracts by the alias given at their instantiation,
// written as "$alias". Aliases are also resolved in string values of
// messages.
type Scenario struct {
	ChainID  string            `yaml:"chain_id"`
	Balances map[string]string `yaml:"balances"`
	Steps    []Step            `yaml:"steps"`
}

// Step holds exactly one action. Unless ExpectError is set the action has
// to succeed; otherwise it has to fail with an error containing the text.
type Step struct {
	Instantiate   *InstantiateStep   `yaml:"instantiate"`
	Execute       *ExecuteStep       `yaml:"execute"`
	Query         *QueryStep         `yaml:"query"`
	Advance       *AdvanceStep       `yaml:"advance"`
	ExpectBalance *ExpectBalanceStep `yaml:"expect_balance"`

	ExpectError string `yaml:"expect_error"`
}

type InstantiateStep struct {
	Code   string `yaml:"code"`
	Sender string `yaml:"sender"`
	Funds  string `yaml:"funds"`
	Msg    any    `yaml:"msg"`
	As     string `yaml:"as"`
}

type ExecuteStep struct {
	Contract string `yaml:"contract"`
	Sender   string `yaml:"sender"`
	Funds    string `yaml:"funds"`
	Msg      any    `yaml:"msg"`
}

type QueryStep struct {
	Contract string `yaml:"contract"`
	Msg      any    `yaml:"msg"`
	// Expect, if set, is compared to the JSON result of the query.
	Expect any `yaml:"expect"`
}

type AdvanceStep struct {
	Blocks uint64        `yaml:"blocks"`
	Time   time.Duration `yaml:"time"`
}

type ExpectBalanceStep struct {
	Address string `yaml:"address"`
	Coins   string `yaml:"coins"`
}

// LoadScenario parses a YAML scenario file. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	res := &Scenario{}
	if err := decoder.Decode(res); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return res, nil
}

// RunScenario runs all steps of the given scenario on a new ensemble and
// reports the outcome of each step to the given writer. All steps are run
// even if some of them fail; the returned error lists all failed steps. The
// ensemble is returned for inspection.
func RunScenario(scenario *Scenario, config ensemble.Config, out io.Writer) (*ensemble.Ensemble, error) {
	e := ensemble.New(config)
	if err := e.Register(contracts.CounterCode, contracts.Counter{}); err != nil {
		return nil, err
	}
	accounts := maps.Keys(scenario.Balances)
	slices.Sort(accounts)
	for _, account := range accounts {
		coins, err := common.ParseCoins(scenario.Balances[account])
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", account, err)
		}
		if err := e.Mint(common.Address(account), coins); err != nil {
			return nil, err
		}
	}

	r := &runner{ensemble: e, aliases: map[string]common.Address{}}
	var errs []error
	for i, step := range scenario.Steps {
		name, res := r.run(step)
		if err := checkOutcome(step, res); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, name, err))
			fmt.Fprintf(out, "%3d %-14s FAILED %v\n", i+1, name, err)
			continue
		}
		value, err := res.Get()
		if err != nil {
			value = "expected error: " + err.Error()
		}
		fmt.Fprintf(out, "%3d %-14s ok     %s\n", i+1, name, value)
	}
	return e, errors.Join(errs...)
}

func checkOutcome(step Step, res result.Result[string]) error {
	if step.ExpectError == "" {
		return res.Error
	}
	if res.IsOk() {
		return fmt.Errorf("expected error containing %q, but step succeeded", step.ExpectError)
	}
	if !strings.Contains(res.Error.Error(), step.ExpectError) {
		return fmt.Errorf("expected error containing %q, got: %w", step.ExpectError, res.Error)
	}
	return nil
}

type runner struct {
	ensemble *ensemble.Ensemble
	aliases  map[string]common.Address
}

// run performs the action of a step and returns the name of the action
// together with a printable outcome.
func (r *runner) run(step Step) (string, result.Result[string]) {
	actions := 0
	for _, set := range []bool{
		step.Instantiate != nil,
		step.Execute != nil,
		step.Query != nil,
		step.Advance != nil,
		step.ExpectBalance != nil,
	} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return "invalid", result.Err[string](fmt.Errorf("step must have exactly one action, has %d", actions))
	}

	switch {
	case step.Instantiate != nil:
		return "instantiate", r.instantiate(step.Instantiate)
	case step.Execute != nil:
		return "execute", r.execute(step.Execute)
	case step.Query != nil:
		return "query", r.query(step.Query)
	case step.Advance != nil:
		return "advance", r.advance(step.Advance)
	default:
		return "expect_balance", r.expectBalance(step.ExpectBalance)
	}
}

func (r *runner) instantiate(step *InstantiateStep) result.Result[string] {
	sender, funds, msg, err := r.callArgs(step.Sender, step.Funds, step.Msg)
	if err != nil {
		return result.Err[string](err)
	}
	if step.As != "" {
		if _, found := r.aliases[step.As]; found {
			return result.Err[string](fmt.Errorf("alias %q already in use", step.As))
		}
	}
	address, err := r.ensemble.Instantiate(step.Code, msg, sender, funds)
	if err != nil {
		return result.Err[string](err)
	}
	if step.As != "" {
		r.aliases[step.As] = address
		return result.Ok(fmt.Sprintf("%s = %s", step.As, address))
	}
	return result.Ok(address.String())
}

func (r *runner) execute(step *ExecuteStep) result.Result[string] {
	contract, err := r.resolve(step.Contract)
	if err != nil {
		return result.Err[string](err)
	}
	sender, funds, msg, err := r.callArgs(step.Sender, step.Funds, step.Msg)
	if err != nil {
		return result.Err[string](err)
	}
	res, err := r.ensemble.Execute(contract, msg, sender, funds)
	if err != nil {
		return result.Err[string](err)
	}
	parts := make([]string, 0, len(res.Attributes))
	for _, attr := range res.Attributes {
		parts = append(parts, attr.Key+"="+attr.Value)
	}
	return result.Ok(strings.Join(parts, " "))
}

func (r *runner) query(step *QueryStep) result.Result[string] {
	contract, err := r.resolve(step.Contract)
	if err != nil {
		return result.Err[string](err)
	}
	msg, err := r.encode(step.Msg)
	if err != nil {
		return result.Err[string](err)
	}
	data, err := r.ensemble.Query(contract, msg)
	if err != nil {
		return result.Err[string](err)
	}
	if step.Expect != nil {
		want, err := r.encode(step.Expect)
		if err != nil {
			return result.Err[string](err)
		}
		equal, err := jsonEqual(want, data)
		if err != nil {
			return result.Err[string](err)
		}
		if !equal {
			return result.Err[string](fmt.Errorf("query result %s, expected %s", data, want))
		}
	}
	return result.Ok(string(data))
}

func (r *runner) advance(step *AdvanceStep) result.Result[string] {
	r.ensemble.AdvanceBlocks(step.Blocks)
	if err := r.ensemble.AdvanceTime(step.Time); err != nil {
		return result.Err[string](err)
	}
	block := r.ensemble.Block()
	return result.Ok(fmt.Sprintf("height %d, time %s", block.Height, block.Time.Format(time.RFC3339)))
}

func (r *runner) expectBalance(step *ExpectBalanceStep) result.Result[string] {
	address, err := r.resolve(step.Address)
	if err != nil {
		return result.Err[string](err)
	}
	want, err := common.ParseCoins(step.Coins)
	if err != nil {
		return result.Err[string](err)
	}
	got := r.ensemble.AllBalances(address)
	if !slices.Equal(want, got) {
		return result.Err[string](fmt.Errorf("balance of %s is %q, expected %q", address, got, want))
	}
	return result.Ok(got.String())
}

func (r *runner) callArgs(sender, funds string, msg any) (common.Address, common.Coins, []byte, error) {
	address, err := r.resolve(sender)
	if err != nil {
		return "", nil, nil, err
	}
	coins, err := common.ParseCoins(funds)
	if err != nil {
		return "", nil, nil, err
	}
	data, err := r.encode(msg)
	if err != nil {
		return "", nil, nil, err
	}
	return address, coins, data, nil
}

func (r *runner) resolve(name string) (common.Address, error) {
	alias, found := strings.CutPrefix(name, "$")
	if !found {
		return common.Address(name), nil
	}
	address, found := r.aliases[alias]
	if !found {
		return "", fmt.Errorf("unknown alias %q", alias)
	}
	return address, nil
}

// encode converts a message given in YAML into JSON, resolving aliases in
// string values on the way. A missing message is encoded as an empty
// object.
func (r *runner) encode(msg any) ([]byte, error) {
	if msg == nil {
		return []byte("{}"), nil
	}
	resolved, err := r.resolveAll(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resolved)
}

func (r *runner) resolveAll(value any) (any, error) {
	switch value := value.(type) {
	case string:
		address, err := r.resolve(value)
		return string(address), err
	case []any:
		res := make([]any, len(value))
		for i, element := range value {
			resolved, err := r.resolveAll(element)
			if err != nil {
				return nil, err
			}
			res[i] = resolved
		}
		return res, nil
	case map[string]any:
		res := make(map[string]any, len(value))
		for key, element := range value {
			resolved, err := r.resolveAll(element)
			if err != nil {
				return nil, err
			}
			res[key] = resolved
		}
		return res, nil
	}
	return value, nil
}

func jsonEqual(a, b []byte) (bool, error) {
	var x, y any
	if err := json.Unmarshal(a, &x); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, &y); err != nil {
		return false, fmt.Errorf("query result is not JSON: %w", err)
	}
	return reflect.DeepEqual(x, y), nil
}
