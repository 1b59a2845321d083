package screen

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/table"
	"backoffice/internal/ui"
)

// orderStatuses in server enum order.
var orderStatuses = []string{"IN_PROGRESS", "COMPLETED", "CANCELLED"}

// orderDetail is the drill-down view for one order. Unlike the generic
// update form, order edits are individual server-side mutations: status,
// customer, and item changes each hit their own endpoint, and the view
// refetches after every one so the displayed total is always the server's
// truth recomputed from the items.
type orderDetail struct {
	screen *Screen
	id     int
	order  *api.Order

	info  *tview.TextView
	items *tview.Table
	hint  *tview.TextView
	flex  *tview.Flex
}

func (s *Screen) openOrderDetail(id int) {
	d := &orderDetail{screen: s, id: id}

	d.info = tview.NewTextView().SetDynamicColors(true)
	d.info.SetBorder(true).SetTitle(fmt.Sprintf("Order #%d", id))

	d.items = tview.NewTable()
	d.items.SetBorder(true).SetTitle("Items")
	d.items.SetSelectable(true, false)
	d.items.SetFixed(1, 0)
	d.items.SetInputCapture(d.handleKey)

	d.hint = tview.NewTextView().SetDynamicColors(true)
	d.hint.SetText(" s status | u customer | a add item | e quantity | d remove | Esc back")

	d.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.info, 8, 0, false).
		AddItem(d.items, 0, 1, true).
		AddItem(d.hint, 1, 0, false)

	s.pages.AddPage("detail", d.flex, true, true)
	s.env.SetFocus(d.items)
	d.refetch()
}

func (d *orderDetail) close() {
	d.screen.pages.RemovePage("detail")
	d.screen.env.SetFocus(d.screen.tableView)
	d.screen.Reload()
}

// refetch reloads the order and redraws. Every mutation funnels through
// here, so the derived total can never drift from the item list.
func (d *orderDetail) refetch() {
	s := d.screen
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		order, err := s.env.Client.GetOrder(ctx, d.id)

		s.env.Post(func() {
			if err != nil {
				s.env.Logger.Warn("order fetch failed",
					zap.Int("id", d.id),
					zap.Error(err))
				d.info.SetText("[red]" + tview.Escape(api.AsAPIError(err).Message) + "[-]")
				return
			}
			d.order = order
			d.render()
		})
	}()
}

func (d *orderDetail) render() {
	o := d.order
	d.info.SetText(fmt.Sprintf(
		" Status:   %s\n Customer: %s\n User:     %s\n Items:    %d\n Total:    %s\n Created:  %s",
		o.Status,
		o.Customer.DisplayName(),
		o.User.DisplayName(),
		len(o.Items),
		table.FormatCurrency(o.Total()),
		table.FormatDate(o.CreatedAt),
	))

	d.items.Clear()
	for col, label := range []string{"Offer", "Quantity", "Price", "Subtotal"} {
		d.items.SetCell(0, col, tview.NewTableCell(label).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}
	for row, item := range o.Items {
		d.items.SetCell(row+1, 0, tview.NewTableCell(item.OfferName))
		d.items.SetCell(row+1, 1, tview.NewTableCell(fmt.Sprintf("%d", item.Quantity)))
		d.items.SetCell(row+1, 2, tview.NewTableCell(table.FormatCurrency(item.PriceAtTimeOfOrder)))
		d.items.SetCell(row+1, 3, tview.NewTableCell(table.FormatCurrency(item.Subtotal())))
	}
}

func (d *orderDetail) selectedItem() (api.OrderItem, bool) {
	row, _ := d.items.GetSelection()
	idx := row - 1
	if d.order == nil || idx < 0 || idx >= len(d.order.Items) {
		return api.OrderItem{}, false
	}
	return d.order.Items[idx], true
}

func (d *orderDetail) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		d.close()
		return nil
	}
	switch event.Rune() {
	case 's':
		d.changeStatus()
		return nil
	case 'u':
		d.changeCustomer()
		return nil
	case 'a':
		d.addItem()
		return nil
	case 'e':
		d.editQuantity()
		return nil
	case 'd':
		d.removeItem()
		return nil
	}
	return event
}

// mutate runs one order mutation off the UI goroutine and refetches on
// success. Failures render inline in the info box; the view stays open.
func (d *orderDetail) mutate(name string, fn func(ctx context.Context) error) {
	s := d.screen
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		err := fn(ctx)

		s.env.Post(func() {
			if err != nil {
				s.env.Logger.Warn("order mutation failed",
					zap.String("mutation", name),
					zap.Int("id", d.id),
					zap.Error(err))
				d.info.SetText("[red]" + tview.Escape(api.AsAPIError(err).Message) + "[-]")
				return
			}
			d.refetch()
		})
	}()
}

func (d *orderDetail) changeStatus() {
	modal := tview.NewModal().
		SetText("Change order status").
		AddButtons(append(append([]string{}, orderStatuses...), "Cancel")).
		SetDoneFunc(func(index int, label string) {
			d.screen.pages.RemovePage("status")
			d.screen.env.SetFocus(d.items)
			if label == "Cancel" || label == "" {
				return
			}
			d.mutate("change-status", func(ctx context.Context) error {
				_, err := d.screen.env.Client.ChangeOrderStatus(ctx, d.id, label)
				return err
			})
		})
	d.screen.pages.AddPage("status", modal, true, true)
	d.screen.env.SetFocus(modal)
}

func (d *orderDetail) changeCustomer() {
	d.openPicker("Change Customer", "customerId", "Customer", map[string]optionSource{
		"customerId": {entity: api.Customers, label: personLabel},
	}, nil, func(values map[string]any) {
		id, _ := values["customerId"].(int)
		d.mutate("change-customer", func(ctx context.Context) error {
			_, err := d.screen.env.Client.ChangeOrderCustomer(ctx, d.id, id)
			return err
		})
	})
}

func (d *orderDetail) addItem() {
	extra := []ui.FormField{
		{Key: "quantity", Label: "Quantity", Kind: ui.FieldNumber, Required: true},
	}
	d.openPicker("Add Item", "offerId", "Offer", map[string]optionSource{
		"offerId": {entity: api.Offers, label: nameLabel},
	}, extra, func(values map[string]any) {
		offerID, _ := values["offerId"].(int)
		qty, _ := values["quantity"].(float64)
		d.mutate("add-item", func(ctx context.Context) error {
			_, err := d.screen.env.Client.AddOrderItem(ctx, d.id, offerID, int(qty))
			return err
		})
	})
}

func (d *orderDetail) editQuantity() {
	item, ok := d.selectedItem()
	if !ok {
		return
	}
	fields := []ui.FormField{
		{Key: "quantity", Label: "Quantity", Kind: ui.FieldNumber, Required: true},
	}
	initial := table.Record{"quantity": item.Quantity}

	var fv *ui.FormView
	fv = ui.BuildForm("Update Quantity: "+item.OfferName, fields, initial, "Save", func() {
		values, err := fv.Values()
		if err != nil {
			fv.SetError(err.Error())
			return
		}
		qty, _ := values["quantity"].(float64)
		d.screen.pages.RemovePage("detailform")
		d.screen.env.SetFocus(d.items)
		d.mutate("update-quantity", func(ctx context.Context) error {
			_, err := d.screen.env.Client.UpdateOrderItemQuantity(ctx, d.id, item.OfferID, int(qty))
			return err
		})
	}, func() {
		d.screen.pages.RemovePage("detailform")
		d.screen.env.SetFocus(d.items)
	})

	d.screen.pages.AddPage("detailform", ui.CenterPrimitive(fv, 60, 9), true, true)
	d.screen.env.SetFocus(fv.Form)
}

func (d *orderDetail) removeItem() {
	item, ok := d.selectedItem()
	if !ok {
		return
	}
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Remove %s from this order?", item.OfferName)).
		AddButtons([]string{"Remove", "Cancel"}).
		SetDoneFunc(func(index int, label string) {
			d.screen.pages.RemovePage("confirm")
			d.screen.env.SetFocus(d.items)
			if label != "Remove" {
				return
			}
			d.mutate("remove-item", func(ctx context.Context) error {
				_, err := d.screen.env.Client.RemoveOrderItem(ctx, d.id, item.OfferID)
				return err
			})
		})
	d.screen.pages.AddPage("confirm", modal, true, true)
	d.screen.env.SetFocus(modal)
}

// openPicker loads one foreign-key option list, then shows a small form
// with the select plus any extra fields. The load failure path mirrors the
// generic form flow: inline error, submit disabled.
func (d *orderDetail) openPicker(title, key, label string, sources map[string]optionSource, extra []ui.FormField, submit func(values map[string]any)) {
	s := d.screen
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		options, err := loadOptionLists(ctx, s.env.Client, sources)

		s.env.Post(func() {
			fields := []ui.FormField{
				{Key: key, Label: label, Kind: ui.FieldSelect, Required: true, Options: options[key]},
			}
			fields = append(fields, extra...)

			var fv *ui.FormView
			fv = ui.BuildForm(title, fields, nil, "Save", func() {
				if err != nil {
					return
				}
				values, verr := fv.Values()
				if verr != nil {
					fv.SetError(verr.Error())
					return
				}
				s.pages.RemovePage("detailform")
				s.env.SetFocus(d.items)
				submit(values)
			}, func() {
				s.pages.RemovePage("detailform")
				s.env.SetFocus(d.items)
			})

			if err != nil {
				fv.SetError(api.AsAPIError(err).Message)
			}

			s.pages.AddPage("detailform", ui.CenterPrimitive(fv, 60, 11), true, true)
			s.env.SetFocus(fv.Form)
		})
	}()
}
