package member_test

import (
	"fmt"
	"reflect"

	"graphstate/member"
)

type sample struct{}

func (sample) Name() string              { return "" }
func (*sample) SetName(string)           { panic("not implemented") }
func (*sample) SetChecked(string) error  { panic("not implemented") }
func (sample) Cell(row, col int) float64 { return 0 }
func (sample) String() string            { return "" }
func (sample) Reset()                    {}
func (sample) Pair() (int, int)          { return 0, 0 }
func (sample) Validate() error           { return nil }

func describe(name string) {
	m, _ := reflect.TypeFor[*sample]().MethodByName(name)
	acc, err := member.ParseAccessor(m)
	if err != nil {
		fmt.Println(name, err)
		return
	}

	fmt.Println(name, acc.Property, acc.Role == member.RoleSetter, acc.Value, acc.IsIndexed(), acc.HasErr)
}

func ExampleParseAccessor() {
	describe("Name")
	describe("SetName")
	describe("SetChecked")
	describe("Cell")
	describe("String")
	describe("Reset")
	describe("Pair")
	describe("Validate")

	// Output:
	// Name Name false string false false
	// SetName Name true string false false
	// SetChecked Checked true string false true
	// Cell Cell false float64 true false
	// String method is excluded from properties
	// Reset method is not a recognizable accessor
	// Pair method is not a recognizable accessor
	// Validate method is not a recognizable accessor
}
