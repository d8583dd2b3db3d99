// Package scenario loads simulation scripts written in Lua.
//
// A script builds a Scenario value from step calls and returns it:
//
//	local s = Scenario.new("epidemic winter")
//	s:trigger({kind = "crisis", type = "epidemic", magnitude = 2.0, duration = 5})
//	s:progress(5)
//	return s
//
// The runner executes the recorded steps against a live engine and graph.
package scenario

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	apperrors "github.com/louisbranch/ashfall.world/internal/platform/errors"
)

const scenarioTypeName = "scenario"

// Scenario is a named sequence of simulation steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one recorded simulation action.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadFile loads and runs a Lua scenario script from disk.
func LoadFile(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioLoadFailed, "load lua script", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadString loads and runs a Lua scenario script from source text.
func LoadString(source string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadString(state, source); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioLoadFailed, "load lua script", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = "scenario"
	}
	return scenario, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerScenarioType(state)
	registerScenarioConstructor(state)
	return state
}

func runScript(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioLoadFailed, "run lua script", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, apperrors.New(apperrors.CodeScenarioLoadFailed, "scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, apperrors.New(apperrors.CodeScenarioLoadFailed, "scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "trigger", Function: scenarioTrigger},
	{Name: "progress", Function: scenarioProgress},
	{Name: "resolve", Function: scenarioResolve},
	{Name: "decay", Function: scenarioDecay},
	{Name: "relearn", Function: scenarioRelearn},
	{Name: "memory", Function: scenarioMemory},
}

func scenarioTrigger(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "trigger", tableToMap(state, 2))
	return 0
}

func scenarioProgress(state *lua.State) int {
	scenario := checkScenario(state)
	elapsed := lua.CheckNumber(state, 2)
	appendStep(scenario, "progress", map[string]any{"elapsed": elapsed})
	return 0
}

func scenarioResolve(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "resolve", tableToMap(state, 2))
	return 0
}

func scenarioDecay(state *lua.State) int {
	scenario := checkScenario(state)
	node := lua.CheckString(state, 2)
	steps := int(lua.OptNumber(state, 3, 1))
	appendStep(scenario, "decay", map[string]any{"node": node, "steps": steps})
	return 0
}

func scenarioRelearn(state *lua.State) int {
	scenario := checkScenario(state)
	node := lua.CheckString(state, 2)
	steps := int(lua.OptNumber(state, 3, 1))
	appendStep(scenario, "relearn", map[string]any{"node": node, "steps": steps})
	return 0
}

func scenarioMemory(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "memory", tableToMap(state, 2))
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
