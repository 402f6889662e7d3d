// SPDX-License-Identifier: EPL-2.0

package gain_test

import (
	"fmt"

	"github.com/ik5/audmix/gain"
)

func ExampleToInternal() {
	fmt.Println(gain.ToInternal(100))
	fmt.Println(gain.ToInternal(50))
	fmt.Println(gain.ToInternal(0))
	// Output:
	// 0
	// -1000
	// -10000
}

func ExamplePanPosition() {
	x, y, z := gain.PanPosition(gain.MaxPan)
	fmt.Println(x, y, z)
	// Output: 1 0 1
}
