package timeutc_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/rezkam/todo/tools/linters/timeutc"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), timeutc.Analyzer, "a")
}
