//go:build gjson

package benchmarks_test

import (
	"github.com/reoring/modelcheck"
	drv "github.com/reoring/modelcheck/source/gjson"
)

func init() {
	modelcheck.SetJSONDriver(drv.Driver())
}
