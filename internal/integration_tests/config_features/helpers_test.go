package integration_tests

import (
	"reflect"
	"sync"

	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/testutil"
)

// recorder registers an "echo" component that remembers the message each
// named instance was built with.
type recorder struct {
	mu       sync.Mutex
	messages map[string]string
}

func newRecorder() (*recorder, *testutil.SimpleModule) {
	rec := &recorder{messages: make(map[string]string)}
	mod := &testutil.SimpleModule{Descriptors: []*plugin.Descriptor{{
		Name:    "echo",
		Aliases: []string{"say"},
		Type:    reflect.TypeFor[string](),
		Factory: &plugin.Factory{
			Params: []plugin.InputSpec{
				plugin.Param[string](plugin.Attr("name")),
				plugin.Param[string](plugin.Attr("message").WithAliases("msg", "text").WithDefault("${props.default_message}")),
			},
			Fn: func(args []any) (any, error) {
				name, msg := plugin.Arg[string](args, 0), plugin.Arg[string](args, 1)
				rec.mu.Lock()
				rec.messages[name] = msg
				rec.mu.Unlock()
				return msg, nil
			},
		},
	}}}
	return rec, mod
}

func (r *recorder) get(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[name]
}
