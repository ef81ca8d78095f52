package views

import (
	"maps"
	"strings"

	"hnsearch/internal/config"
	"hnsearch/internal/domain"
)

// Props is everything a list renderer may read. Each renderer reads only
// the fields it needs.
type Props struct {
	Hits        []domain.Hit
	Page        *int
	IsLoading   bool
	IsError     bool
	Selected    int
	Offset      int
	Height      int
	Width       int
	ShowDetails bool
	Spinner     string // current spinner frame
}

// Slot is a fixed position below the list. Enhancers each own a slot, so
// the order they are applied in does not change the output.
type Slot int

const (
	SlotLoading Slot = iota
	SlotMore
	SlotError
	SlotHint
)

var slotOrder = []Slot{SlotLoading, SlotError, SlotMore, SlotHint}

// Frame is the rendered list and whatever the enhancers placed below it
type Frame struct {
	Body   string
	footer map[Slot]string
}

// With returns a copy of f with slot set to content
func (f Frame) With(slot Slot, content string) Frame {
	footer := make(map[Slot]string, len(f.footer)+1)
	maps.Copy(footer, f.footer)
	footer[slot] = content
	f.footer = footer
	return f
}

// Slot returns the content of slot
func (f Frame) Slot(slot Slot) (string, bool) {
	s, ok := f.footer[slot]
	return s, ok
}

// String lays the frame out. The error notice takes the place of the
// "more" control.
func (f Frame) String() string {
	parts := []string{f.Body}
	_, hasError := f.footer[SlotError]
	for _, slot := range slotOrder {
		content, ok := f.footer[slot]
		if !ok || content == "" {
			continue
		}
		if slot == SlotMore && hasError {
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n")
}

// Renderer turns props into a frame
type Renderer interface {
	Render(p Props) Frame
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(p Props) Frame

func (f RendererFunc) Render(p Props) Frame { return f(p) }

// Enhancer wraps a renderer with one optional behavior
type Enhancer func(next Renderer) Renderer

// Compose applies enhancers to base
func Compose(base Renderer, enhancers ...Enhancer) Renderer {
	r := base
	for _, enhance := range enhancers {
		r = enhance(r)
	}
	return r
}

// WithLoading shows an indicator while a request is in flight
func WithLoading(styles *Styles) Enhancer {
	return func(next Renderer) Renderer {
		return RendererFunc(func(p Props) Frame {
			f := next.Render(p)
			if !p.IsLoading {
				return f
			}
			return f.With(SlotLoading, styles.StatusLoad.Render(strings.TrimSpace(p.Spinner+" Loading...")))
		})
	}
}

// WithMore offers the manual "more" control once a page is loaded. After a
// failure it stays up unless an error notice takes its slot.
func WithMore(styles *Styles) Enhancer {
	return func(next Renderer) Renderer {
		return RendererFunc(func(p Props) Frame {
			f := next.Render(p)
			if p.Page == nil || p.IsLoading {
				return f
			}
			return f.With(SlotMore, styles.Button.Render("[m] More"))
		})
	}
}

// WithErrorRetry shows the failure notice with a retry control
func WithErrorRetry(styles *Styles) Enhancer {
	return func(next Renderer) Renderer {
		return RendererFunc(func(p Props) Frame {
			f := next.Render(p)
			if !p.IsError || p.IsLoading {
				return f
			}
			return f.With(SlotError,
				styles.StatusError.Render("Something went wrong.")+"  "+styles.Button.Render("[r] Try again"))
		})
	}
}

// WithInfiniteScroll tells the user that more results load on scroll
func WithInfiniteScroll(styles *Styles) Enhancer {
	return func(next Renderer) Renderer {
		return RendererFunc(func(p Props) Frame {
			f := next.Render(p)
			if p.Page == nil || len(p.Hits) == 0 || p.IsLoading || p.IsError {
				return f
			}
			return f.With(SlotHint, styles.Scroll.Render("↓ scroll down to load more"))
		})
	}
}

// EnhancersFor returns the enhancers a feature set switches on
func EnhancersFor(features config.Features, styles *Styles) []Enhancer {
	var enhancers []Enhancer
	if features.Loading {
		enhancers = append(enhancers, WithLoading(styles))
	}
	if features.More {
		enhancers = append(enhancers, WithMore(styles))
	}
	if features.ErrorRetry {
		enhancers = append(enhancers, WithErrorRetry(styles))
	}
	if features.InfiniteScroll {
		enhancers = append(enhancers, WithInfiniteScroll(styles))
	}
	return enhancers
}

// NewListRenderer builds the list pipeline for a feature set
func NewListRenderer(features config.Features, styles *Styles) Renderer {
	return Compose(NewHitList(styles), EnhancersFor(features, styles)...)
}
