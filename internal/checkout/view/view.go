// Package view renders the checkout page.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/validation"
	"github.com/dwikikusuma/storefront/internal/normalize"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

//go:embed templates/*.html
var files embed.FS

var tmpl = template.Must(template.ParseFS(files, "templates/*.html"))

// CardTypes are the card type radio values.
var CardTypes = []string{"visa", "mastercard", "amex", "discover"}

// Page is the state of one checkout page render.
type Page struct {
	Summary *domain.Summary
	Form    validation.Form
	// Errors marks invalid inputs; the first one gets focus.
	Errors    *validation.ValidationError
	Order     *orderdomain.OrderResponse
	Cancelled bool
}

type input struct {
	Name, Label, Value string
	Invalid, Focus     bool
}

type model struct {
	Page
	EmptyMessage    string
	Inputs          []input
	Provincia       input
	Provinces       []string
	CardTypes       []string
	CardTypeMissing bool
	OrderTotal      string
}

func Checkout(w io.Writer, p Page) error {
	if p.Summary == nil {
		p.Summary = &domain.Summary{}
	}
	m := model{
		Page:         p,
		EmptyMessage: domain.EmptyMessage,
		Provinces:    validation.Provinces(),
		CardTypes:    CardTypes,
		Provincia:    p.field("provincia", "Provincia", p.Form.Provincia),
	}
	f := p.Form
	for _, in := range []struct{ name, label, value string }{
		{"nombre", "Nombre", f.Nombre},
		{"apellido", "Apellido", f.Apellido},
		{"dni", "DNI", validation.MaskDNI(f.DNI)},
		{"movil", "Móvil", validation.MaskPhone(f.Movil)},
		{"email1", "Email", f.Email1},
		{"email2", "Repetir email", f.Email2},
		{"viaNombre", "Calle", f.ViaNombre},
		{"viaNumero", "Número", f.ViaNumero},
		{"localidad", "Localidad", f.Localidad},
		{"codigoPostal", "Código postal", f.CodigoPostal},
		{"fechaNacimientoDia", "Día de nacimiento", f.Dia},
		{"fechaNacimientoMes", "Mes de nacimiento", f.Mes},
		{"fechaNacimientoAnio", "Año de nacimiento", f.Anio},
		{"titular", "Titular", f.Titular},
		{"numeroTarjeta", "Número de tarjeta", validation.FormatCardNumber(f.Numero)},
		{"cvcTarjeta", "Código de seguridad", ""},
		{"mesTarjeta", "Mes de vencimiento", f.MesTarjeta},
		{"anioTarjeta", "Año de vencimiento", f.AnioTarjeta},
	} {
		m.Inputs = append(m.Inputs, p.field(in.name, in.label, in.value))
	}
	if p.Errors != nil {
		m.CardTypeMissing = p.Errors.Has("tarjetas")
	}
	if p.Order != nil {
		m.OrderTotal = normalize.FormatCurrency(p.Order.TotalAmount)
	}
	return tmpl.ExecuteTemplate(w, "checkout", m)
}

func (p Page) field(name, label, value string) input {
	in := input{Name: name, Label: label, Value: value}
	if p.Errors != nil {
		in.Invalid = p.Errors.Has(name)
		in.Focus = p.Errors.First() == name
	}
	return in
}
