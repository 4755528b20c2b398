// Package marker implements the per-tool marker registry and the
// idempotent restoration protocol. Every tool owns one Registry; the
// registry's id to node map is the single source of truth for "does this
// annotation currently have a live marker".
package marker

import (
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Registry tracks at most one marker node per annotation id. Replace,
// never duplicate.
type Registry struct {
	nodes map[string]driven.Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]driven.Node)}
}

// Get returns the registered marker for an annotation id.
func (r *Registry) Get(id string) (driven.Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Put registers a marker for an annotation id, detaching and discarding
// any previously registered node.
func (r *Registry) Put(id string, n driven.Node) {
	if old, ok := r.nodes[id]; ok && old != n {
		old.Detach()
	}
	r.nodes[id] = n
}

// Remove detaches and forgets the marker for an annotation id.
func (r *Registry) Remove(id string) {
	if n, ok := r.nodes[id]; ok {
		n.Detach()
		delete(r.nodes, id)
	}
}

// Len returns the number of registered markers.
func (r *Registry) Len() int { return len(r.nodes) }

// Clear detaches and forgets every marker.
func (r *Registry) Clear() {
	for id, n := range r.nodes {
		n.Detach()
		delete(r.nodes, id)
	}
}

// Builder constructs a detached marker node for an annotation. The
// restorer attaches it and stamps the annotation id attribute.
type Builder func(a domain.Annotation) driven.Node

// Restorer re-attaches one tool's markers after the rendering engine
// rebuilds page DOM.
type Restorer struct {
	typ      domain.AnnotationType
	registry *Registry
	surface  driven.RenderSurface
	query    driven.AnnotationQuerier
	log      driven.Logger
	build    Builder
}

// NewRestorer wires a restorer for one annotation type.
func NewRestorer(
	typ domain.AnnotationType,
	reg *Registry,
	surf driven.RenderSurface,
	query driven.AnnotationQuerier,
	log driven.Logger,
	build Builder,
) *Restorer {
	return &Restorer{
		typ:      typ,
		registry: reg,
		surface:  surf,
		query:    query,
		log:      log,
		build:    build,
	}
}

// RestorePage runs the restoration protocol for one page: for every
// annotation of the restorer's type on that page, a marker with a live
// parent is left alone; a missing or detached marker is rebuilt, attached
// to the fresh page container and re-registered. Safe to run redundantly.
// A missing page container skips that annotation and continues the batch.
func (r *Restorer) RestorePage(pageNumber int) {
	for _, a := range r.query.AnnotationsByPage(pageNumber) {
		if a.Type != r.typ {
			continue
		}
		r.Restore(a)
	}
}

// Restore ensures one annotation has a live, correctly parented marker.
// Restoring an already-attached marker is a no-op.
func (r *Restorer) Restore(a domain.Annotation) {
	if n, ok := r.registry.Get(a.ID); ok && n.Attached() {
		return
	}

	page, ok := r.surface.Page(a.PageNumber)
	if !ok {
		r.log.Warn("no page container for page %d, skipping marker %s: %v",
			a.PageNumber, a.ID, domain.ErrRenderTargetMissing)
		return
	}

	n := r.build(a)
	n.Set(driven.AttrAnnotationID, a.ID)
	page.Append(n)
	r.registry.Put(a.ID, n)
	r.log.Debug("restored %s marker %s on page %d", a.Type, a.ID, a.PageNumber)
}
