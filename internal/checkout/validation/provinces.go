package validation

import "slices"

var provinces = []string{
	"Ciudad Autónoma de Buenos Aires",
	"Buenos Aires",
	"Catamarca",
	"Chaco",
	"Chubut",
	"Córdoba",
	"Corrientes",
	"Entre Ríos",
	"Formosa",
	"Jujuy",
	"La Pampa",
	"La Rioja",
	"Mendoza",
	"Misiones",
	"Neuquén",
	"Río Negro",
	"Salta",
	"San Juan",
	"San Luis",
	"Santa Cruz",
	"Santa Fe",
	"Santiago del Estero",
	"Tierra del Fuego",
}

// Provinces returns the province options in display order.
func Provinces() []string {
	return slices.Clone(provinces)
}

func IsProvince(p string) bool {
	return slices.Contains(provinces, p)
}
