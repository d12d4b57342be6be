package events

import (
	"time"

	"github.com/atomicstack/nvim-switcher/internal/logging"
)

type BridgeTracer struct{}

var Bridge = BridgeTracer{}

func (BridgeTracer) Complete(op string, elapsed time.Duration, err error) {
	payload := map[string]interface{}{"op": op, "elapsed": elapsed.String()}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("bridge.complete", payload)
}

func (BridgeTracer) Timeout(op string, after time.Duration) {
	logging.Trace("bridge.timeout", map[string]interface{}{"op": op, "after": after.String()})
}

// Late records a completion that arrived after its caller gave up waiting.
func (BridgeTracer) Late(op string, elapsed time.Duration, err error) {
	if err != nil {
		logging.Warn("bridge: late completion of %s after %s: %v", op, elapsed, err)
	} else {
		logging.Warn("bridge: late completion of %s after %s", op, elapsed)
	}
	logging.Trace("bridge.late", map[string]interface{}{"op": op, "elapsed": elapsed.String()})
}
