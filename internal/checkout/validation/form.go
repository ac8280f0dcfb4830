// Package validation checks the checkout form. Personal data and payment data
// are validated separately; Submit only looks at payment once personal data
// passes.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Form is the checkout form as posted. Field names follow the page inputs.
type Form struct {
	Nombre       string `form:"nombre" json:"nombre"`
	Apellido     string `form:"apellido" json:"apellido"`
	DNI          string `form:"dni" json:"dni"`
	Movil        string `form:"movil" json:"movil"`
	Email1       string `form:"email1" json:"email1"`
	Email2       string `form:"email2" json:"email2"`
	ViaNombre    string `form:"viaNombre" json:"viaNombre"`
	ViaNumero    string `form:"viaNumero" json:"viaNumero"`
	Localidad    string `form:"localidad" json:"localidad"`
	CodigoPostal string `form:"codigoPostal" json:"codigoPostal"`
	Provincia    string `form:"provincia" json:"provincia"`
	Dia          string `form:"fechaNacimientoDia" json:"fechaNacimientoDia"`
	Mes          string `form:"fechaNacimientoMes" json:"fechaNacimientoMes"`
	Anio         string `form:"fechaNacimientoAnio" json:"fechaNacimientoAnio"`

	Titular     string `form:"titular" json:"titular"`
	Tarjeta     string `form:"tarjetas" json:"tarjetas"`
	Numero      string `form:"numeroTarjeta" json:"numeroTarjeta"`
	CVC         string `form:"cvcTarjeta" json:"cvcTarjeta"`
	MesTarjeta  string `form:"mesTarjeta" json:"mesTarjeta"`
	AnioTarjeta string `form:"anioTarjeta" json:"anioTarjeta"`
}

// FieldError marks one invalid input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid input in form order.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

// First is the field that should receive focus.
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Field
}

// Has reports whether field is among the invalid ones.
func (e *ValidationError) Has(field string) bool {
	return slices.ContainsFunc(e.Fields, func(f FieldError) bool { return f.Field == field })
}

type collector []FieldError

func (c *collector) check(ok bool, field, msg string) {
	if !ok {
		*c = append(*c, FieldError{Field: field, Message: msg})
	}
}

func (c collector) err() error {
	if len(c) == 0 {
		return nil
	}
	return &ValidationError{Fields: c}
}

var (
	dniRe   = regexp.MustCompile(`^\d{7,8}[A-Za-z]?$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe = regexp.MustCompile(`^\d+$`)
	cpRe    = regexp.MustCompile(`^\d{4,5}$`)
	nonDig  = regexp.MustCompile(`\D`)
)

// ValidatePersonal checks the buyer and shipping fields.
func ValidatePersonal(f Form) error {
	var c collector
	c.check(isText(f.Nombre), "nombre", "Ingrese un nombre válido.")
	c.check(isText(f.Apellido), "apellido", "Ingrese un apellido válido.")
	c.check(dniRe.MatchString(f.DNI), "dni", "El DNI debe tener 7 u 8 dígitos.")
	movil := len(nonDig.ReplaceAllString(f.Movil, ""))
	c.check(movil >= 8 && movil <= 11, "movil", "El móvil debe tener entre 8 y 11 dígitos.")
	c.check(emailRe.MatchString(f.Email1), "email1", "Ingrese un email válido.")
	c.check(emailRe.MatchString(f.Email2) && f.Email1 == f.Email2, "email2", "Los emails no coinciden.")
	c.check(isText(f.ViaNombre), "viaNombre", "Ingrese el nombre de la calle.")
	c.check(digitRe.MatchString(f.ViaNumero), "viaNumero", "El número de calle debe ser numérico.")
	c.check(strings.TrimSpace(f.Localidad) != "", "localidad", "Ingrese la localidad.")
	c.check(cpRe.MatchString(f.CodigoPostal), "codigoPostal", "El código postal debe tener 4 o 5 dígitos.")
	c.check(IsProvince(f.Provincia), "provincia", "Seleccione una provincia.")
	if f.Dia == "" || f.Mes == "" || f.Anio == "" || !realDate(f.Dia, f.Mes, f.Anio) {
		c.check(false, "fechaNacimientoDia", "Ingrese una fecha de nacimiento válida.")
		c.check(false, "fechaNacimientoMes", "Ingrese una fecha de nacimiento válida.")
		c.check(false, "fechaNacimientoAnio", "Ingrese una fecha de nacimiento válida.")
	}
	return c.err()
}

// ValidatePayment checks the card fields.
func ValidatePayment(f Form) error {
	var c collector
	c.check(strings.TrimSpace(f.Titular) != "", "titular", "Ingrese el titular de la tarjeta.")
	c.check(f.Tarjeta != "", "tarjetas", "Seleccione un tipo de tarjeta.")

	number := strings.Join(strings.Fields(f.Numero), "")
	brand := CardBrand(number)
	c.check(brand.Accepts(number) && Luhn(number), "numeroTarjeta", "Número de tarjeta inválido.")
	cvcLen := 3
	if brand == Amex {
		cvcLen = 4
	}
	c.check(len(f.CVC) == cvcLen && digitRe.MatchString(f.CVC), "cvcTarjeta",
		fmt.Sprintf("El código de seguridad debe tener %d dígitos.", cvcLen))
	c.check(f.MesTarjeta != "", "mesTarjeta", "Seleccione el mes de vencimiento.")
	c.check(f.AnioTarjeta != "", "anioTarjeta", "Seleccione el año de vencimiento.")
	return c.err()
}

// isText is non-blank and does not read as a number.
func isText(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err != nil
}

func realDate(d, m, y string) bool {
	day, err1 := strconv.Atoi(d)
	month, err2 := strconv.Atoi(m)
	year, err3 := strconv.Atoi(y)
	if err1 != nil || err2 != nil || err3 != nil || year < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
