package ui

import "github.com/rivo/tview"

// BuildLoginForm builds the sign-in page shown while no valid session
// exists. onSubmit receives the entered credentials.
func BuildLoginForm(onSubmit func(email, password string), onQuit func()) *FormView {
	fields := []FormField{
		{Key: "email", Label: "Email", Kind: FieldText, Required: true},
		{Key: "password", Label: "Password", Kind: FieldPassword, Required: true},
	}

	var fv *FormView
	fv = BuildForm("Sign In", fields, nil, "Login", func() {
		values, err := fv.Values()
		if err != nil {
			fv.SetError(err.Error())
			return
		}
		email, _ := values["email"].(string)
		password, _ := values["password"].(string)
		onSubmit(email, password)
	}, onQuit)

	return fv
}

// CenterPrimitive wraps p so it floats centered at the given size.
func CenterPrimitive(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
