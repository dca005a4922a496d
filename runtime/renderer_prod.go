//go:build !dev

package runtime

import (
	"fmt"

	"github.com/vcrobe/counter/console"
)

// In production mode, lifecycle panics are recovered and logged so one
// misbehaving component does not take the whole page down.

func recoverLifecycle(hook, key string) {
	if rec := recover(); rec != nil {
		console.Error(fmt.Sprintf("%s panic in component %s: %v", hook, key, rec))
	}
}

func (r *RendererImpl) callOnMount(mounter Mounter, key string) {
	defer recoverLifecycle("OnMount", key)
	mounter.OnMount()
}

func (r *RendererImpl) callOnParametersSet(receiver ParameterReceiver, key string) {
	defer recoverLifecycle("OnParametersSet", key)
	receiver.OnParametersSet()
}

func (r *RendererImpl) callOnUnmount(unmounter Unmounter, key string) {
	defer recoverLifecycle("OnUnmount", key)
	unmounter.OnUnmount()
}
