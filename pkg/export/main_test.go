package export

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// report rendering fans out goroutines; none may outlive a test
	goleak.VerifyTestMain(m)
}
