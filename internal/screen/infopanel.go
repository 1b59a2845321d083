package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/table"
)

// InfoPanel is the landing view: entity counts pulled from the list
// endpoints. A size-1 page is enough, only totalElements matters.
type InfoPanel struct {
	env  Env
	view *tview.TextView
}

type entityCount struct {
	label string
	total int
}

func NewInfoPanel(env Env) *InfoPanel {
	p := &InfoPanel{env: env}
	p.view = tview.NewTextView().SetDynamicColors(true)
	p.view.SetBorder(true).SetTitle("Overview")
	p.view.SetText("\n  Loading...")
	p.view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'r' {
			p.Reload()
			return nil
		}
		return event
	})
	return p
}

func (p *InfoPanel) Root() tview.Primitive { return p.view }

func (p *InfoPanel) Focus() { p.env.SetFocus(p.view) }

func (p *InfoPanel) Title() string { return "Overview" }

// Reload fetches the three counts concurrently and joins all-or-nothing;
// a partial dashboard would be worse than an error.
func (p *InfoPanel) Reload() {
	entities := []struct {
		label  string
		entity api.Entity
	}{
		{"Customers", api.Customers},
		{"Offers", api.Offers},
		{"Orders", api.Orders},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.env.Timeout)
		defer cancel()

		var wg sync.WaitGroup
		var mu sync.Mutex
		counts := make([]entityCount, len(entities))
		var joinErr error

		for i, e := range entities {
			wg.Add(1)
			go func(i int, label string, entity api.Entity) {
				defer wg.Done()
				page, err := p.env.Client.List(ctx, entity, table.Query{Page: 0, Size: 1})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if joinErr == nil {
						joinErr = err
					}
					return
				}
				counts[i] = entityCount{label: label, total: page.TotalElements}
			}(i, e.label, e.entity)
		}
		wg.Wait()

		p.env.Post(func() {
			if joinErr != nil {
				p.env.Logger.Warn("overview fetch failed", zap.Error(joinErr))
				p.view.SetText("\n  [red]" + tview.Escape(api.AsAPIError(joinErr).Message) + "[-]\n\n  Press 'r' to try again")
				return
			}
			text := "\n"
			for _, c := range counts {
				text += fmt.Sprintf("  %-10s %d\n", c.label, c.total)
			}
			p.view.SetText(text)
		})
	}()
}
