// Package canvas is an in-memory page and map engine. It stands in for the
// browser when sessions run inside this process, and renders the resulting
// map as GeoJSON.
package canvas

import (
	"github.com/lysyi3m/tumblr-postmap/app/mapview"
)

var (
	_ mapview.Document      = (*Page)(nil)
	_ mapview.EngineFactory = (*Page)(nil)
)

type Page struct {
	elements map[string]*Element
	maps     map[string]*Map
}

func NewPage() *Page {
	return &Page{
		elements: make(map[string]*Element),
		maps:     make(map[string]*Map),
	}
}

// AddContainer places an element whose parent is parentWidth pixels wide.
func (p *Page) AddContainer(id string, parentWidth int) *Element {
	el := &Element{page: p, id: id, parentWidth: parentWidth}
	p.elements[id] = el
	return el
}

func (p *Page) ElementByID(id string) (mapview.Element, bool) {
	el, ok := p.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

func (p *Page) NewEngine(el mapview.Element, opts mapview.MapOptions) mapview.Engine {
	m := newMap(el.ID(), opts)
	if element, ok := p.elements[el.ID()]; ok {
		m.size = element.Size
	}
	p.maps[el.ID()] = m
	return m
}

// Map returns the engine created for the element id.
func (p *Page) Map(id string) (*Map, bool) {
	m, ok := p.maps[id]
	return m, ok
}

type Element struct {
	page        *Page
	id          string
	parentWidth int
	Hidden      bool
	Size        mapview.Size
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) ParentWidth() int {
	return e.parentWidth
}

func (e *Element) Hide() {
	e.Hidden = true
}

func (e *Element) InsertAfter(id string, size mapview.Size) mapview.Element {
	el := &Element{page: e.page, id: id, parentWidth: e.parentWidth, Size: size}
	e.page.elements[id] = el
	return el
}
