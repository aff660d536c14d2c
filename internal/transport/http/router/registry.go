package router

import (
	"sort"
	"sync"

	"e-course-api/internal/transport/http/ez"
)

// 模块可选择实现其中一个或多个接口
type PublicModule interface{ MountPublic(ez.EZ) }
type APIModule interface{ MountAPI(ez.EZ) }
type AdminModule interface{ MountAdmin(ez.EZ) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

type Registry struct {
	mu   sync.RWMutex
	mods []any
}

func NewRegistry(mods ...any) *Registry {
	r := &Registry{}
	for _, m := range mods {
		r.Register(m)
	}
	return r
}

// Register 统一注册入口；挂载时按类型断言分发
func (r *Registry) Register(mod any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mods = append(r.mods, mod)
}

func (r *Registry) sorted() []any {
	r.mu.RLock()
	mods := append([]any(nil), r.mods...)
	r.mu.RUnlock()
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	return mods
}

// MountPublic 挂载无需登录的接口
func (r *Registry) MountPublic(e ez.EZ) {
	for _, m := range r.sorted() {
		if pm, ok := m.(PublicModule); ok {
			pm.MountPublic(e)
		}
	}
}

// MountAPI 在 /api 鉴权分组上挂载
func (r *Registry) MountAPI(e ez.EZ) {
	for _, m := range r.sorted() {
		if am, ok := m.(APIModule); ok {
			am.MountAPI(e)
		}
	}
}

// MountAdmin 在 /admin/v1 上挂载
func (r *Registry) MountAdmin(e ez.EZ) {
	for _, m := range r.sorted() {
		if am, ok := m.(AdminModule); ok {
			am.MountAdmin(e)
		}
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
