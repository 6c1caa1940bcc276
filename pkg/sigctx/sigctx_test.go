package sigctx_test

import (
	"syscall"
	"testing"

	"github.com/niksmo/visionframe/pkg/sigctx"
	"github.com/stretchr/testify/assert"
)

func TestNotifyContext(t *testing.T) {
	assert.Contains(t, sigctx.Signals, syscall.SIGTERM)

	ctx, stop := sigctx.NotifyContext()
	assert.NoError(t, ctx.Err())

	stop()
	<-ctx.Done()
	assert.Error(t, ctx.Err())
}
