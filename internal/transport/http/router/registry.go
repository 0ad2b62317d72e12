package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// A module implements any of these. APIModule routes sit behind authentication,
// PublicModule routes do not, AdminModule routes go to the ops listener.
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type PublicModule interface{ MountPublic(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// Lower priority mounts first; modules without Priority get 100.
type prioritizer interface{ Priority() int }

// Registry collects modules for one engine.
type Registry struct {
	api    []APIModule
	public []PublicModule
	admin  []AdminModule
}

// Register sorts mod into every list whose interface it implements.
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.api = append(r.api, m)
		}
		if m, ok := mod.(PublicModule); ok {
			r.public = append(r.public, m)
		}
		if m, ok := mod.(AdminModule); ok {
			r.admin = append(r.admin, m)
		}
	}
}

func (r *Registry) MountAllAPI(g *gin.RouterGroup) {
	for _, m := range byPriority(r.api) {
		m.MountAPI(g)
	}
}

func (r *Registry) MountAllPublic(g *gin.RouterGroup) {
	for _, m := range byPriority(r.public) {
		m.MountPublic(g)
	}
}

func (r *Registry) MountAllAdmin(g *gin.RouterGroup) {
	for _, m := range byPriority(r.admin) {
		m.MountAdmin(g)
	}
}

func byPriority[M any](mods []M) []M {
	out := append([]M(nil), mods...)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOf(out[i]) < priorityOf(out[j])
	})
	return out
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
