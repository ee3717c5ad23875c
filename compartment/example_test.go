package compartment_test

import (
	"fmt"

	"github.com/nathangeffen/epiagents/compartment"
)

func ExampleTotalPopulation() {
	s := compartment.Snapshot{"S": 900, "I": 100, "R": 0, "D": 12}
	fmt.Println(compartment.TotalPopulation(s))
	fmt.Println(compartment.TotalPopulation(s, "D"))
	// Output:
	// 1012
	// 1000
}
