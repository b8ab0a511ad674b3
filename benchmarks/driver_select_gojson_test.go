//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/modelcheck"
	drv "github.com/reoring/modelcheck/source/gojson"
)

func init() {
	modelcheck.SetJSONDriver(drv.Driver())
}
