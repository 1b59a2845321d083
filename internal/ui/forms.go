package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/tview"

	"backoffice/internal/table"
)

// FieldKind selects the widget and value conversion for a form field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldPassword
	FieldNumber
	FieldSelect
)

// Option is one choice of a select field. Value is what gets submitted,
// Label what gets shown.
type Option struct {
	Value any
	Label string
}

// FormField declares one input of a create/update form. Select options are
// resolved by the caller before the form is built (foreign-key lists come
// from their own endpoints).
type FormField struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option
}

// FormView is a form plus an inline error line. Submit failures render in
// place and keep the form open; nothing navigates away until the user
// cancels or the call succeeds.
type FormView struct {
	*tview.Flex
	Form      *tview.Form
	errorLine *tview.TextView
	fields    []FormField
}

// BuildForm assembles a FormView. initial pre-fills fields for update forms;
// pass nil for create forms.
func BuildForm(title string, fields []FormField, initial table.Record, submitLabel string, onSubmit func(), onCancel func()) *FormView {
	form := tview.NewForm()
	form.SetBorder(true).SetTitle(title)

	for _, f := range fields {
		value := ""
		if initial != nil {
			if v, ok := initial[f.Key]; ok && v != nil {
				value = fmt.Sprintf("%v", v)
			}
		}
		switch f.Kind {
		case FieldPassword:
			form.AddPasswordField(f.Label, value, 40, '*', nil)
		case FieldSelect:
			labels := make([]string, len(f.Options))
			selected := 0
			for i, opt := range f.Options {
				labels[i] = opt.Label
				if value != "" && fmt.Sprintf("%v", opt.Value) == value {
					selected = i
				}
			}
			form.AddDropDown(f.Label, labels, selected, nil)
		default:
			form.AddInputField(f.Label, value, 40, nil, nil)
		}
	}

	form.AddButton(submitLabel, onSubmit)
	form.AddButton("Cancel", onCancel)

	errorLine := tview.NewTextView().SetDynamicColors(true)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(errorLine, 1, 0, false).
		AddItem(form, 0, 1, true)

	return &FormView{Flex: flex, Form: form, errorLine: errorLine, fields: fields}
}

// SetError shows an inline error above the form; empty clears it.
func (fv *FormView) SetError(message string) {
	if message == "" {
		fv.errorLine.SetText("")
		return
	}
	fv.errorLine.SetText("[red]" + tview.Escape(message) + "[-]")
}

// Values collects the form into a request payload. Blank strings submit as
// null rather than empty strings; required fields must be present. Number
// fields must parse.
func (fv *FormView) Values() (map[string]any, error) {
	out := make(map[string]any, len(fv.fields))
	for i, f := range fv.fields {
		item := fv.Form.GetFormItem(i)
		switch f.Kind {
		case FieldSelect:
			dd, ok := item.(*tview.DropDown)
			if !ok {
				continue
			}
			index, _ := dd.GetCurrentOption()
			if index < 0 || index >= len(f.Options) {
				if f.Required {
					return nil, fmt.Errorf("%s is required", f.Label)
				}
				out[f.Key] = nil
				continue
			}
			out[f.Key] = f.Options[index].Value
		default:
			input, ok := item.(*tview.InputField)
			if !ok {
				continue
			}
			text := strings.TrimSpace(input.GetText())
			if text == "" {
				if f.Required {
					return nil, fmt.Errorf("%s is required", f.Label)
				}
				out[f.Key] = nil
				continue
			}
			if f.Kind == FieldNumber {
				n, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return nil, fmt.Errorf("%s must be a number", f.Label)
				}
				out[f.Key] = n
				continue
			}
			out[f.Key] = text
		}
	}
	return out, nil
}

// Sanitize maps blank strings to null, mirroring what the forms submit. Used
// for payloads assembled outside a FormView.
func Sanitize(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			out[key] = nil
			continue
		}
		out[key] = value
	}
	return out
}
