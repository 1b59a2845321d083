package screen

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/table"
	"backoffice/internal/ui"
)

// openCreate switches the screen into create mode. Select-field options are
// fetched first when the entity references others; the join is
// all-or-nothing, so a half-loaded form can never be submitted.
func (s *Screen) openCreate() {
	s.state.BeginCreate()
	s.loadFormData(0, func(options map[string][]ui.Option, _ table.Record, err error) {
		if s.state.Mode != table.ModeCreating {
			return
		}
		s.showForm("New "+s.def.Singular, nil, options, err, "Create", s.submitCreate)
	})
}

// openUpdate switches into edit mode for one record, prefilling the form
// from a fresh fetch rather than the possibly stale table row.
func (s *Screen) openUpdate(id int) {
	if s.def.OnUpdate != nil && s.def.OnUpdate(s, id) {
		return
	}
	s.state.BeginUpdate(id)
	s.loadFormData(id, func(options map[string][]ui.Option, initial table.Record, err error) {
		if s.state.Mode != table.ModeEditing || s.state.SelectedItemID != id {
			return
		}
		title := fmt.Sprintf("Update %s #%d", s.def.Singular, id)
		s.showForm(title, initial, options, err, "Update", func(fv *ui.FormView) {
			s.submitUpdate(fv, id)
		})
	})
}

// loadFormData gathers everything a form needs in one concurrent
// all-or-nothing join: the option lists, plus the record itself when id is
// non-zero. Any failure fails the whole join.
func (s *Screen) loadFormData(id int, done func(options map[string][]ui.Option, initial table.Record, err error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()

		var wg sync.WaitGroup
		var mu sync.Mutex
		var options map[string][]ui.Option
		var initial table.Record
		var joinErr error

		fail := func(err error) {
			mu.Lock()
			if joinErr == nil {
				joinErr = err
			}
			mu.Unlock()
		}

		if s.def.OptionLoader != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				opts, err := s.def.OptionLoader(ctx, s.env.Client)
				if err != nil {
					fail(err)
					return
				}
				mu.Lock()
				options = opts
				mu.Unlock()
			}()
		}

		if id != 0 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec, err := s.env.Client.Get(ctx, s.def.Entity, id)
				if err != nil {
					fail(err)
					return
				}
				mu.Lock()
				initial = rec
				mu.Unlock()
			}()
		}

		wg.Wait()
		s.env.Post(func() {
			done(options, initial, joinErr)
		})
	}()
}

// normalizeReferences flattens nested reference objects onto the select keys
// the form expects: a fetched offer carries category/supplier objects while
// the form fields are categoryId/supplierId. The id is extracted as an int so
// it matches the option values regardless of the JSON number type.
func normalizeReferences(fields []ui.FormField, initial table.Record) table.Record {
	if initial == nil {
		return nil
	}
	out := make(table.Record, len(initial))
	for key, value := range initial {
		out[key] = value
	}
	for _, f := range fields {
		if f.Kind != ui.FieldSelect {
			continue
		}
		if _, ok := out[f.Key]; ok {
			continue
		}
		nested := strings.TrimSuffix(f.Key, "Id")
		if nested == f.Key {
			continue
		}
		if m, ok := out[nested].(map[string]any); ok {
			out[f.Key] = table.Record(m).ID()
		}
	}
	return out
}

// showForm builds and displays the form page. A join failure renders as an
// inline error on an otherwise disabled form so the user can back out.
func (s *Screen) showForm(title string, initial table.Record, options map[string][]ui.Option, loadErr error, submitLabel string, submit func(fv *ui.FormView)) {
	fields := make([]ui.FormField, len(s.def.FormFields))
	copy(fields, s.def.FormFields)
	for i := range fields {
		if fields[i].Kind == ui.FieldSelect && options != nil {
			if opts, ok := options[fields[i].Key]; ok {
				fields[i].Options = opts
			}
		}
	}
	initial = normalizeReferences(fields, initial)

	var fv *ui.FormView
	fv = ui.BuildForm(title, fields, initial, submitLabel, func() {
		if loadErr != nil {
			return
		}
		submit(fv)
	}, s.closeForm)

	if loadErr != nil {
		s.env.Logger.Warn("form data load failed",
			zap.String("entity", string(s.def.Entity)),
			zap.Error(loadErr))
		fv.SetError(api.AsAPIError(loadErr).Message)
	}

	s.pages.AddPage("form", fv, true, true)
	s.env.SetFocus(fv.Form)
}

// closeForm abandons create/edit and returns to the table.
func (s *Screen) closeForm() {
	switch s.state.Mode {
	case table.ModeCreating:
		s.state.CancelCreate()
	case table.ModeEditing:
		s.state.CancelUpdate()
	}
	s.pages.RemovePage("form")
	s.env.SetFocus(s.tableView)
}

func (s *Screen) submitCreate(fv *ui.FormView) {
	values, err := fv.Values()
	if err != nil {
		fv.SetError(err.Error())
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		var err error
		if s.def.OnCreate != nil {
			err = s.def.OnCreate(ctx, s.env.Client, values)
		} else {
			_, err = s.env.Client.Create(ctx, s.def.Entity, values)
		}

		s.env.Post(func() {
			if err != nil {
				// Inline, form stays open; no navigation on failure.
				fv.SetError(api.AsAPIError(err).Message)
				return
			}
			s.state.CreateSucceeded()
			s.pages.RemovePage("form")
			s.env.SetFocus(s.tableView)
			s.Reload()
		})
	}()
}

func (s *Screen) submitUpdate(fv *ui.FormView, id int) {
	values, err := fv.Values()
	if err != nil {
		fv.SetError(err.Error())
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		_, err := s.env.Client.Update(ctx, s.def.Entity, id, values)

		s.env.Post(func() {
			if err != nil {
				// A vanished record cannot be edited; drop the form and let
				// the refetch remove the row.
				if api.AsAPIError(err).IsNotFound() {
					s.state.CancelUpdate()
					s.pages.RemovePage("form")
					s.env.SetFocus(s.tableView)
					s.Reload()
					return
				}
				fv.SetError(api.AsAPIError(err).Message)
				return
			}
			s.state.UpdateSucceeded()
			s.pages.RemovePage("form")
			s.env.SetFocus(s.tableView)
			s.Reload()
		})
	}()
}
